// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters). The application layer depends on these, never on gorm directly.
//
// Repositories signal "not found" with nil or false returns; errors are
// reserved for genuine infrastructure failure.
package outbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/domain/site"
	"github.com/forkful/forkful/internal/domain/user"
)

// RecipeRepository defines the interface for recipe persistence.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error

	// FindByID joins the recipe's approved reviews (newest first, with
	// reviewer summaries) and computes the rating aggregate. Returns
	// (nil, nil) when the id does not resolve.
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Detail, error)

	// List applies the AND-combined filters and returns one page plus
	// the total match count.
	List(ctx context.Context, filter recipe.ListFilter) ([]recipe.Recipe, int64, error)

	// FindFeatured returns at most limit approved+featured recipes,
	// newest first.
	FindFeatured(ctx context.Context, limit int) ([]recipe.Recipe, error)

	// Update writes the mutable recipe columns, reporting whether the
	// target row existed.
	Update(ctx context.Context, r *recipe.Recipe) (bool, error)

	// Delete hard-deletes the recipe, reporting whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) (bool, error)
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// ReviewRepository defines the interface for review persistence.
type ReviewRepository interface {
	Create(ctx context.Context, rev *recipe.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Review, error)

	// UpdateOwned and DeleteOwned are scoped to (review id AND author id)
	// in the query itself. They report whether a matching row existed.
	UpdateOwned(ctx context.Context, id, userID uuid.UUID, rating *int, comment *string) (bool, error)
	DeleteOwned(ctx context.Context, id, userID uuid.UUID) (bool, error)

	Count(ctx context.Context) (int64, error)
}

// SavedRecipeRepository defines the interface for the user/recipe bookmark join.
type SavedRecipeRepository interface {
	// Save is idempotent: a duplicate (user, recipe) pair is silently
	// ignored, not an error.
	Save(ctx context.Context, userID, recipeID uuid.UUID) error
	Unsave(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	IsSaved(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]recipe.SavedRecipe, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	// Upsert inserts or updates the local mirror row keyed by the
	// identity provider's subject id, preserving the stored role.
	Upsert(ctx context.Context, profile user.Profile) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*user.User, error)
	List(ctx context.Context, offset, limit int) ([]user.User, int64, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role user.Role) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// ContactRepository defines the interface for contact-message persistence.
type ContactRepository interface {
	Create(ctx context.Context, msg *site.ContactMessage) error
	List(ctx context.Context, isRead *bool) ([]site.ContactMessage, error)
	// MarkRead is idempotent and reports whether the id resolved.
	MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
}

// SettingsRepository defines the interface for the settings singleton.
type SettingsRepository interface {
	// Get lazily creates the singleton row with defaults when absent.
	Get(ctx context.Context) (*site.Settings, error)
	Update(ctx context.Context, s *site.Settings) error
}
