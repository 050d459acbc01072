package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/ports/outbound"
)

// ReviewRepository implements the review repository interface using GORM
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) outbound.ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create creates a new review
func (r *ReviewRepository) Create(ctx context.Context, rev *recipe.Review) error {
	model := ReviewToModel(rev)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	rev.ID = model.ID
	rev.CreatedAt = model.CreatedAt
	rev.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds a review by ID, returning (nil, nil) when absent.
func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Review, error) {
	var model ReviewModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	rev := ModelToReview(&model)
	return &rev, nil
}

// UpdateOwned updates the caller's own review. The WHERE clause binds
// both the review id and the user id, so another user's review is
// invisible here and reported as false rather than forbidden.
func (r *ReviewRepository) UpdateOwned(ctx context.Context, id, userID uuid.UUID, rating *int, comment *string) (bool, error) {
	updates := map[string]interface{}{}
	if rating != nil {
		updates["rating"] = *rating
	}
	if comment != nil {
		updates["comment"] = *comment
	}
	if len(updates) == 0 {
		// Nothing to write; report whether the owned row exists.
		var count int64
		result := r.db.WithContext(ctx).
			Model(&ReviewModel{}).
			Where("id = ? AND user_id = ?", id, userID).
			Count(&count)
		return count > 0, result.Error
	}

	result := r.db.WithContext(ctx).
		Model(&ReviewModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteOwned deletes the caller's own review, reporting whether a
// matching (id, user) row existed.
func (r *ReviewRepository) DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&ReviewModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count returns the total review count.
func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&ReviewModel{}).Count(&total)
	return total, result.Error
}
