package directory

import "context"

type StoreAPI interface {
	GetUser(ctx context.Context, userID string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, string, error)
	UserRef(ctx context.Context, userID string) (UserRef, error)
	ManagerID(ctx context.Context, userID string) (string, error)
	Subordinates(ctx context.Context, userID string) ([]User, error)
	ListUsers(ctx context.Context, role string) ([]User, error)
	CreateUser(ctx context.Context, u User, passwordHash string) (string, error)
	SetManager(ctx context.Context, userID, managerID string) error
	ListDepartments(ctx context.Context) ([]Department, error)
	CreateDepartment(ctx context.Context, name, description string) (string, error)
}
