package ratings

import "context"

type StoreAPI interface {
	CreateRating(ctx context.Context, employeeID, managerID string, input RatingInput) (PerformanceRating, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]PerformanceRating, error)
}
