package ratings

import (
	"context"

	"appraise/internal/domain/directory"
)

type DirectoryAPI interface {
	UserRef(ctx context.Context, userID string) (directory.UserRef, error)
}

type Service struct {
	store     StoreAPI
	directory DirectoryAPI
}

func NewService(store StoreAPI, dir DirectoryAPI) *Service {
	return &Service{store: store, directory: dir}
}

// Rate records an appraisal-relevant rating. Ratings are append-only; there
// is deliberately no update or delete path.
func (s *Service) Rate(ctx context.Context, raterID, employeeID string, input RatingInput) (PerformanceRating, error) {
	if input.Overall < 0 || input.Overall > 100 {
		return PerformanceRating{}, ErrInvalidOverall
	}

	rater, err := s.directory.UserRef(ctx, raterID)
	if err != nil {
		return PerformanceRating{}, err
	}
	target, err := s.directory.UserRef(ctx, employeeID)
	if err != nil {
		return PerformanceRating{}, err
	}
	if !directory.CanManage(rater, target) {
		return PerformanceRating{}, ErrForbidden
	}

	return s.store.CreateRating(ctx, employeeID, raterID, input)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]PerformanceRating, error) {
	return s.store.ListForEmployee(ctx, employeeID)
}
