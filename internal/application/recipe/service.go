// Package recipe implements the recipe use cases: AI generation from
// ingredients, photo identification, CRUD with ownership checks, reviews
// and saved-recipe bookmarks.
package recipe

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/domain/user"
	"github.com/forkful/forkful/internal/ports/outbound"
	"github.com/forkful/forkful/pkg/errors"
	"github.com/forkful/forkful/pkg/validation"
)

// Service orchestrates recipe operations over the outbound ports.
type Service struct {
	recipes  outbound.RecipeRepository
	reviews  outbound.ReviewRepository
	saved    outbound.SavedRecipeRepository
	settings outbound.SettingsRepository
	ai       outbound.AIService
	validate *validation.Validator
	logger   *zap.Logger
}

// NewService creates the recipe service.
func NewService(
	recipes outbound.RecipeRepository,
	reviews outbound.ReviewRepository,
	saved outbound.SavedRecipeRepository,
	settings outbound.SettingsRepository,
	ai outbound.AIService,
	validate *validation.Validator,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipes:  recipes,
		reviews:  reviews,
		saved:    saved,
		settings: settings,
		ai:       ai,
		validate: validate,
		logger:   logger.Named("recipe-service"),
	}
}

// GenerateRequest is the body of the generate-from-ingredients endpoint.
type GenerateRequest struct {
	Ingredients    []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Cuisine        string   `json:"cuisine" validate:"omitempty,max=100"`
	Difficulty     string   `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	MaxCookingTime int      `json:"maxCookingTime" validate:"omitempty,gte=1,lte=1440"`
	Count          int      `json:"count" validate:"omitempty,gte=1"`
}

// GenerateFromIngredients asks the AI adapter for candidate recipes and
// persists each one for the caller. Candidates are handled in isolation:
// a failed image leaves that recipe without artwork, and a failed insert
// skips that candidate without aborting the batch.
func (s *Service) GenerateFromIngredients(ctx context.Context, caller user.Identity, req GenerateRequest) ([]recipe.Recipe, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, errors.NewDatabase("load site settings", err)
	}

	count := req.Count
	if count < 1 {
		count = 1
	}
	if count > cfg.MaxResults {
		count = cfg.MaxResults
	}

	candidates, err := s.ai.GenerateFromIngredients(ctx, req.Ingredients, outbound.GenerateOptions{
		Cuisine:        req.Cuisine,
		Difficulty:     recipe.Difficulty(req.Difficulty),
		MaxCookingTime: req.MaxCookingTime,
		Count:          count,
		Temperature:    cfg.AITemperature,
	})
	if err != nil {
		s.logger.Error("recipe generation failed", zap.Error(err))
		return nil, errors.NewUpstream("AI generation", err)
	}

	userID := caller.UserID
	saved := make([]recipe.Recipe, 0, len(candidates))
	for _, cand := range candidates {
		rec := recipe.Recipe{
			Name:         cand.Name,
			Description:  cand.Description,
			Ingredients:  cand.Ingredients,
			Instructions: cand.Instructions,
			CookingTime:  cand.CookingTime,
			Difficulty:   normalizeDifficulty(cand.Difficulty),
			Cuisine:      cand.Cuisine,
			Servings:     cand.Servings,
			UserID:       &userID,
			AIGenerated:  true,
			Approved:     true,
		}
		rec.ImageURL = s.ai.GenerateImage(ctx, rec.Name, rec.Description)

		if err := s.recipes.Create(ctx, &rec); err != nil {
			s.logger.Error("failed to persist generated recipe",
				zap.String("name", rec.Name),
				zap.Error(err),
			)
			continue
		}
		saved = append(saved, rec)
	}

	if len(saved) == 0 {
		return nil, errors.NewUpstream("AI generation", errors.New(errors.CodeInternal, "no recipes could be saved"))
	}

	s.logger.Info("generated recipes",
		zap.Int("requested", count),
		zap.Int("saved", len(saved)),
		zap.String("user_id", userID.String()),
	)
	return saved, nil
}

// IdentifyFromPhoto runs the vision model over the uploaded image. The
// result is returned to the caller, never persisted automatically.
func (s *Service) IdentifyFromPhoto(ctx context.Context, image []byte, mimeType string) (*outbound.DishIdentification, error) {
	dish, err := s.ai.IdentifyFromPhoto(ctx, image, mimeType)
	if err != nil {
		s.logger.Error("dish identification failed", zap.Error(err))
		return nil, errors.NewUpstream("AI identification", err)
	}
	return dish, nil
}

// CreateRequest is the body for manual recipe creation.
type CreateRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=200"`
	Description  string   `json:"description" validate:"required,max=2000"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
	CookingTime  int      `json:"cookingTime" validate:"required,gte=1,lte=1440"`
	Difficulty   string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Cuisine      string   `json:"cuisine" validate:"omitempty,max=100"`
	ImageURL     string   `json:"imageUrl" validate:"omitempty,url"`
	Servings     int      `json:"servings" validate:"omitempty,gte=1,lte=100"`
}

// Create persists a manually submitted recipe owned by the caller.
func (s *Service) Create(ctx context.Context, caller user.Identity, req CreateRequest) (*recipe.Recipe, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	userID := caller.UserID
	rec := recipe.Recipe{
		Name:         req.Name,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		CookingTime:  req.CookingTime,
		Difficulty:   recipe.Difficulty(req.Difficulty),
		Cuisine:      req.Cuisine,
		ImageURL:     req.ImageURL,
		Servings:     req.Servings,
		UserID:       &userID,
		Approved:     true,
	}
	if err := s.recipes.Create(ctx, &rec); err != nil {
		return nil, errors.NewDatabase("create recipe", err)
	}
	return &rec, nil
}

// Get returns the recipe with its approved reviews and rating aggregate.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*recipe.Detail, error) {
	detail, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabase("find recipe", err)
	}
	if detail == nil {
		return nil, errors.NewNotFound("Recipe")
	}
	return detail, nil
}

// List returns one page of approved recipes matching the filters.
func (s *Service) List(ctx context.Context, filter recipe.ListFilter) ([]recipe.Recipe, int64, error) {
	filter.IncludeUnapproved = false
	items, total, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewDatabase("list recipes", err)
	}
	return items, total, nil
}

// ListAll is the admin listing: unapproved recipes included.
func (s *Service) ListAll(ctx context.Context, filter recipe.ListFilter) ([]recipe.Recipe, int64, error) {
	filter.IncludeUnapproved = true
	items, total, err := s.recipes.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewDatabase("list recipes", err)
	}
	return items, total, nil
}

// Featured returns the approved featured recipes, newest first.
func (s *Service) Featured(ctx context.Context) ([]recipe.Recipe, error) {
	items, err := s.recipes.FindFeatured(ctx, 10)
	if err != nil {
		return nil, errors.NewDatabase("list featured recipes", err)
	}
	return items, nil
}

// UpdateRequest carries the optional fields of a partial recipe update.
// Nil pointers leave the stored value untouched.
type UpdateRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description  *string  `json:"description" validate:"omitempty,max=2000"`
	Ingredients  []string `json:"ingredients" validate:"omitempty,min=1,dive,required"`
	Instructions []string `json:"instructions" validate:"omitempty,min=1,dive,required"`
	CookingTime  *int     `json:"cookingTime" validate:"omitempty,gte=1,lte=1440"`
	Difficulty   *string  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Cuisine      *string  `json:"cuisine" validate:"omitempty,max=100"`
	ImageURL     *string  `json:"imageUrl" validate:"omitempty,url"`
	Servings     *int     `json:"servings" validate:"omitempty,gte=1,lte=100"`
}

// Update applies a partial update when the caller owns the recipe or
// holds the admin role.
func (s *Service) Update(ctx context.Context, caller user.Identity, id uuid.UUID, req UpdateRequest) (*recipe.Recipe, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	detail, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabase("find recipe", err)
	}
	if detail == nil {
		return nil, errors.NewNotFound("Recipe")
	}
	if !detail.OwnedBy(caller.UserID) && !caller.IsAdmin() {
		return nil, errors.NewForbidden("You can only modify your own recipes")
	}

	rec := detail.Recipe
	if req.Name != nil {
		rec.Name = *req.Name
	}
	if req.Description != nil {
		rec.Description = *req.Description
	}
	if req.Ingredients != nil {
		rec.Ingredients = req.Ingredients
	}
	if req.Instructions != nil {
		rec.Instructions = req.Instructions
	}
	if req.CookingTime != nil {
		rec.CookingTime = *req.CookingTime
	}
	if req.Difficulty != nil {
		rec.Difficulty = recipe.Difficulty(*req.Difficulty)
	}
	if req.Cuisine != nil {
		rec.Cuisine = *req.Cuisine
	}
	if req.ImageURL != nil {
		rec.ImageURL = *req.ImageURL
	}
	if req.Servings != nil {
		rec.Servings = *req.Servings
	}

	found, err := s.recipes.Update(ctx, &rec)
	if err != nil {
		return nil, errors.NewDatabase("update recipe", err)
	}
	if !found {
		return nil, errors.NewNotFound("Recipe")
	}
	return &rec, nil
}

// Delete removes the recipe when the caller owns it or is an admin.
func (s *Service) Delete(ctx context.Context, caller user.Identity, id uuid.UUID) error {
	detail, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return errors.NewDatabase("find recipe", err)
	}
	if detail == nil {
		return errors.NewNotFound("Recipe")
	}
	if !detail.OwnedBy(caller.UserID) && !caller.IsAdmin() {
		return errors.NewForbidden("You can only delete your own recipes")
	}

	if _, err := s.recipes.Delete(ctx, id); err != nil {
		return errors.NewDatabase("delete recipe", err)
	}
	return nil
}

// SetFeatured toggles the featured flag (admin surface).
func (s *Service) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	found, err := s.recipes.SetFeatured(ctx, id, featured)
	if err != nil {
		return errors.NewDatabase("update featured flag", err)
	}
	if !found {
		return errors.NewNotFound("Recipe")
	}
	return nil
}

// SetApproved toggles the approved flag (admin surface).
func (s *Service) SetApproved(ctx context.Context, id uuid.UUID, approved bool) error {
	found, err := s.recipes.SetApproved(ctx, id, approved)
	if err != nil {
		return errors.NewDatabase("update approved flag", err)
	}
	if !found {
		return errors.NewNotFound("Recipe")
	}
	return nil
}

// ReviewRequest is the body for creating a review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// CreateReview attaches a review by the caller to the recipe.
func (s *Service) CreateReview(ctx context.Context, caller user.Identity, recipeID uuid.UUID, req ReviewRequest) (*recipe.Review, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	detail, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabase("find recipe", err)
	}
	if detail == nil {
		return nil, errors.NewNotFound("Recipe")
	}

	rev := recipe.Review{
		RecipeID: recipeID,
		UserID:   caller.UserID,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Approved: true,
	}
	if err := s.reviews.Create(ctx, &rev); err != nil {
		return nil, errors.NewDatabase("create review", err)
	}
	return &rev, nil
}

// ReviewUpdateRequest carries the optional fields of a review update.
type ReviewUpdateRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// UpdateReview applies a partial update to a review. Only the review's
// author or an admin may change it; the repository write stays scoped to
// the author's id.
func (s *Service) UpdateReview(ctx context.Context, caller user.Identity, id uuid.UUID, req ReviewUpdateRequest) (*recipe.Review, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	rev, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabase("find review", err)
	}
	if rev == nil {
		return nil, errors.NewNotFound("Review")
	}
	if rev.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, errors.NewForbidden("You can only modify your own reviews")
	}

	found, err := s.reviews.UpdateOwned(ctx, id, rev.UserID, req.Rating, req.Comment)
	if err != nil {
		return nil, errors.NewDatabase("update review", err)
	}
	if !found {
		return nil, errors.NewNotFound("Review")
	}

	rev, err = s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabase("find review", err)
	}
	if rev == nil {
		return nil, errors.NewNotFound("Review")
	}
	return rev, nil
}

// DeleteReview removes a review. Only the author or an admin may delete it.
func (s *Service) DeleteReview(ctx context.Context, caller user.Identity, id uuid.UUID) error {
	rev, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return errors.NewDatabase("find review", err)
	}
	if rev == nil {
		return errors.NewNotFound("Review")
	}
	if rev.UserID != caller.UserID && !caller.IsAdmin() {
		return errors.NewForbidden("You can only delete your own reviews")
	}

	found, err := s.reviews.DeleteOwned(ctx, id, rev.UserID)
	if err != nil {
		return errors.NewDatabase("delete review", err)
	}
	if !found {
		return errors.NewNotFound("Review")
	}
	return nil
}

// SaveRecipe bookmarks the recipe for the caller. Saving twice is a no-op.
func (s *Service) SaveRecipe(ctx context.Context, caller user.Identity, recipeID uuid.UUID) error {
	detail, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return errors.NewDatabase("find recipe", err)
	}
	if detail == nil {
		return errors.NewNotFound("Recipe")
	}

	if err := s.saved.Save(ctx, caller.UserID, recipeID); err != nil {
		return errors.NewDatabase("save recipe", err)
	}
	return nil
}

// UnsaveRecipe removes the bookmark.
func (s *Service) UnsaveRecipe(ctx context.Context, caller user.Identity, recipeID uuid.UUID) error {
	found, err := s.saved.Unsave(ctx, caller.UserID, recipeID)
	if err != nil {
		return errors.NewDatabase("unsave recipe", err)
	}
	if !found {
		return errors.NewNotFound("Saved recipe")
	}
	return nil
}

// IsSaved reports whether the caller has bookmarked the recipe.
func (s *Service) IsSaved(ctx context.Context, caller user.Identity, recipeID uuid.UUID) (bool, error) {
	saved, err := s.saved.IsSaved(ctx, caller.UserID, recipeID)
	if err != nil {
		return false, errors.NewDatabase("check saved recipe", err)
	}
	return saved, nil
}

// ListSaved returns the caller's bookmarks with the joined recipes.
func (s *Service) ListSaved(ctx context.Context, caller user.Identity) ([]recipe.SavedRecipe, error) {
	items, err := s.saved.ListByUser(ctx, caller.UserID)
	if err != nil {
		return nil, errors.NewDatabase("list saved recipes", err)
	}
	return items, nil
}

// normalizeDifficulty maps free-form model output onto the enum,
// defaulting unknown values to medium.
func normalizeDifficulty(v string) recipe.Difficulty {
	d := recipe.Difficulty(v)
	if d.Valid() {
		return d
	}
	return recipe.DifficultyMedium
}
