package service

import (
	"context"
	"fmt"

	"backend/internal/models"
	"backend/internal/repository"
)

// AccessService answers ownership questions: may this user touch this badan
// publik? Admins always may; everyone else needs an assignment row.
type AccessService interface {
	CanAccessBadanPublik(ctx context.Context, userID int64, role string, badanPublikID int64) (bool, error)
}

type accessService struct {
	assignments repository.AssignmentRepository
}

func NewAccessService(assignments repository.AssignmentRepository) AccessService {
	return &accessService{assignments: assignments}
}

func (s *accessService) CanAccessBadanPublik(ctx context.Context, userID int64, role string, badanPublikID int64) (bool, error) {
	if role == models.RoleAdmin {
		return true, nil
	}
	ok, err := s.assignments.AssignmentExists(ctx, userID, badanPublikID)
	if err != nil {
		return false, fmt.Errorf("assignment lookup: %w", err)
	}
	return ok, nil
}
