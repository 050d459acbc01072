package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/ports/outbound"
)

// featuredLimit caps the homepage highlight list.
const featuredLimit = 10

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) outbound.RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	rec.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID finds a recipe by ID, joining its approved reviews (newest
// first, with reviewers) and computing the rating aggregate. Returns
// (nil, nil) when the id does not resolve.
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Detail, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Where("approved = ?", true).Order("created_at DESC")
		}).
		Preload("Reviews.User").
		First(&model, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	reviews := make([]recipe.Review, len(model.Reviews))
	for i := range model.Reviews {
		reviews[i] = ModelToReview(&model.Reviews[i])
	}

	return &recipe.Detail{
		Recipe:        ModelToRecipe(&model),
		Reviews:       reviews,
		AverageRating: recipe.AverageRating(reviews),
		ReviewCount:   len(reviews),
	}, nil
}

// List applies the AND-combined optional filters with pagination and
// returns one page plus the total match count. Unless the filter opts
// into unapproved rows (admin surface), only approved recipes are listed.
func (r *RecipeRepository) List(ctx context.Context, filter recipe.ListFilter) ([]recipe.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if !filter.IncludeUnapproved {
		query = query.Where("approved = ?", true)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Cuisine != "" {
		query = query.Where("cuisine = ?", filter.Cuisine)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", string(filter.Difficulty))
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 12
	}

	var models []RecipeModel
	result := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	recipes := make([]recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}

	return recipes, total, nil
}

// FindFeatured returns at most limit approved+featured recipes, newest first.
func (r *RecipeRepository) FindFeatured(ctx context.Context, limit int) ([]recipe.Recipe, error) {
	if limit < 1 || limit > featuredLimit {
		limit = featuredLimit
	}

	var models []RecipeModel
	result := r.db.WithContext(ctx).
		Where("approved = ? AND featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	recipes := make([]recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}

	return recipes, nil
}

// Update writes the mutable recipe columns, reporting whether the
// target row existed.
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) (bool, error) {
	model := RecipeToModel(rec)

	result := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("id = ?", model.ID).
		Select("name", "description", "ingredients", "instructions",
			"cooking_time_minutes", "difficulty", "cuisine", "image_url", "servings").
		Updates(model)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete hard-deletes a recipe, reporting whether a row was removed.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetFeatured toggles the admin-curated homepage flag.
func (r *RecipeRepository) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("id = ?", id).
		Update("featured", featured)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetApproved toggles the moderation flag gating public visibility.
func (r *RecipeRepository) SetApproved(ctx context.Context, id uuid.UUID, approved bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("id = ?", id).
		Update("approved", approved)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Count returns the total recipe count.
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&RecipeModel{}).Count(&total)
	return total, result.Error
}
