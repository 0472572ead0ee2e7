package services

import (
	"context"
	"errors"
	"time"

	"github.com/gigfin/gigfin/internal/models"
	pgrepo "github.com/gigfin/gigfin/internal/repositories/postgres"
	"github.com/gigfin/gigfin/internal/utils"
)

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.User, error)
	Upsert(ctx context.Context, u *models.User) error
}

type profileService struct {
	users pgrepo.UserRepository
}

func NewProfileService(users pgrepo.UserRepository) ProfileService {
	return &profileService{users: users}
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.User, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	u, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return u, nil
}

func (s *profileService) Upsert(ctx context.Context, u *models.User) error {
	const op = "ProfileService.Upsert"

	if u == nil || u.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Upsert(ctx, u); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to upsert profile", err)
	}
	return nil
}
