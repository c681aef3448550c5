package directory

import (
	"context"

	"appraise/internal/auth"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) GetUser(ctx context.Context, userID string) (User, error) {
	return s.store.GetUser(ctx, userID)
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (User, string, error) {
	return s.store.GetUserByUsername(ctx, username)
}

func (s *Service) UserRef(ctx context.Context, userID string) (UserRef, error) {
	return s.store.UserRef(ctx, userID)
}

func (s *Service) Subordinates(ctx context.Context, userID string) ([]User, error) {
	return s.store.Subordinates(ctx, userID)
}

func (s *Service) ListUsers(ctx context.Context, role string) ([]User, error) {
	return s.store.ListUsers(ctx, role)
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, name, description string) (string, error) {
	return s.store.CreateDepartment(ctx, name, description)
}

func (s *Service) CreateUser(ctx context.Context, u User, password string) (string, error) {
	if u.ManagerID != "" {
		if err := s.checkManagerAssignment(ctx, "", u.ManagerID); err != nil {
			return "", err
		}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	return s.store.CreateUser(ctx, u, hash)
}

func (s *Service) SetManager(ctx context.Context, userID, managerID string) error {
	if err := s.checkManagerAssignment(ctx, userID, managerID); err != nil {
		return err
	}
	return s.store.SetManager(ctx, userID, managerID)
}

// checkManagerAssignment refuses assignments that would make userID its own
// ancestor. The manager chain is resolved through the store; lookup failures
// terminate the walk rather than fail the write.
func (s *Service) checkManagerAssignment(ctx context.Context, userID, managerID string) error {
	if managerID == "" {
		return nil
	}
	if _, err := s.store.UserRef(ctx, managerID); err != nil {
		return err
	}
	parent := func(id string) string {
		managerID, err := s.store.ManagerID(ctx, id)
		if err != nil {
			return ""
		}
		return managerID
	}
	if CreatesCycle(userID, managerID, parent) {
		return ErrManagerCycle
	}
	return nil
}
