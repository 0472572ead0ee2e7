package postgres

import (
	"context"
	"errors"

	"github.com/gigfin/gigfin/internal/models"
	"github.com/gigfin/gigfin/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]models.User, error)
	Upsert(ctx context.Context, u *models.User) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}

func (r *userRepo) GetByUserIDs(ctx context.Context, userIDs []string) ([]models.User, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var out []models.User
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&out).Error
	return out, err
}

func (r *userRepo) Upsert(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "phone", "disabled_status", "bio", "company", "skills", "resume_url", "portfolio_url", "updated_at"}),
		}).
		Create(u).Error
}
