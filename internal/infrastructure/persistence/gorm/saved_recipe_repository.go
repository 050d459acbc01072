package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/ports/outbound"
)

// SavedRecipeRepository implements the bookmark join repository using GORM
type SavedRecipeRepository struct {
	db *gorm.DB
}

// NewSavedRecipeRepository creates a new saved-recipe repository
func NewSavedRecipeRepository(db *gorm.DB) outbound.SavedRecipeRepository {
	return &SavedRecipeRepository{db: db}
}

// Save bookmarks a recipe for a user. A duplicate (user, recipe) pair is
// silently ignored via ON CONFLICT DO NOTHING, never an error.
func (r *SavedRecipeRepository) Save(ctx context.Context, userID, recipeID uuid.UUID) error {
	model := &SavedRecipeModel{UserID: userID, RecipeID: recipeID}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	return result.Error
}

// Unsave removes the (user, recipe) pair, reporting whether it existed.
func (r *SavedRecipeRepository) Unsave(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&SavedRecipeModel{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IsSaved answers whether the given pair exists.
func (r *SavedRecipeRepository) IsSaved(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&SavedRecipeModel{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count)
	return count > 0, result.Error
}

// ListByUser returns the user's bookmarks with their recipes joined,
// newest bookmark first.
func (r *SavedRecipeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]recipe.SavedRecipe, error) {
	var models []SavedRecipeModel

	result := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	saved := make([]recipe.SavedRecipe, len(models))
	for i := range models {
		rec := ModelToRecipe(&models[i].Recipe)
		saved[i] = recipe.SavedRecipe{
			UserID:    models[i].UserID,
			RecipeID:  models[i].RecipeID,
			Recipe:    &rec,
			CreatedAt: models[i].CreatedAt,
		}
	}

	return saved, nil
}
