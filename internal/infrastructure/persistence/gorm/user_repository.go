package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/forkful/internal/domain/user"
	"github.com/forkful/forkful/internal/ports/outbound"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts or updates the local mirror row keyed by the identity
// provider's subject id. Profile fields follow the provider on every
// login; the stored role is never overwritten.
func (r *UserRepository) Upsert(ctx context.Context, profile user.Profile) (*user.User, error) {
	var model UserModel

	err := r.db.WithContext(ctx).
		First(&model, "external_id = ?", profile.ExternalID).Error
	switch {
	case err == nil:
		model.FirstName = profile.FirstName
		model.LastName = profile.LastName
		model.ProfileImage = profile.ProfileImage
		model.Email = emailPtr(profile.Email)
		if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		model = UserModel{
			ExternalID:   profile.ExternalID,
			Email:        emailPtr(profile.Email),
			FirstName:    profile.FirstName,
			LastName:     profile.LastName,
			ProfileImage: profile.ProfileImage,
			Role:         string(user.RoleUser),
		}
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	u := ModelToUser(&model)
	return &u, nil
}

// FindByID finds a user by ID, returning (nil, nil) when absent.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	u := ModelToUser(&model)
	return &u, nil
}

// FindByExternalID finds a user by the identity provider's subject id.
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "external_id = ?", externalID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	u := ModelToUser(&model)
	return &u, nil
}

// List returns one page of users, newest first, plus the total count.
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []UserModel
	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = ModelToUser(&models[i])
	}

	return users, total, nil
}

// UpdateRole sets the user's role, reporting whether the id resolved.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Update("role", string(role))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the user; recipes, reviews and saved-recipe rows
// cascade at the database level.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count returns the total user count.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&UserModel{}).Count(&total)
	return total, result.Error
}

func emailPtr(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}
