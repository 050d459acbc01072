// Package recipe contains the recipe, review and saved-recipe domain types.
package recipe

import (
	"time"

	"github.com/google/uuid"

	"github.com/forkful/forkful/internal/domain/user"
)

// Difficulty enumerates recipe difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Recipe is a persisted recipe. UserID is nil for recipes whose owner
// account has been removed before the cascade ran, and for seeded rows.
type Recipe struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	CookingTime  int        `json:"cookingTime"`
	Difficulty   Difficulty `json:"difficulty"`
	Cuisine      string     `json:"cuisine"`
	ImageURL     string     `json:"imageUrl"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	AIGenerated  bool       `json:"aiGenerated"`
	Featured     bool       `json:"featured"`
	Approved     bool       `json:"approved"`
	Servings     int        `json:"servings"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// OwnedBy reports whether the recipe belongs to the given user.
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.UserID != nil && *r.UserID == userID
}

// Detail is a recipe joined with its approved reviews and the derived
// rating aggregate. The aggregate is recomputed on every read and never
// stored, so it cannot desync from the review rows.
type Detail struct {
	Recipe
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
}

// Review is a rating with an optional comment, owned by exactly one
// user and attached to exactly one recipe.
type Review struct {
	ID        uuid.UUID     `json:"id"`
	RecipeID  uuid.UUID     `json:"recipeId"`
	UserID    uuid.UUID     `json:"userId"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment,omitempty"`
	Approved  bool          `json:"approved"`
	Reviewer  *user.Summary `json:"reviewer,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// AverageRating computes the arithmetic mean over approved reviews,
// returning 0 when none are approved.
func AverageRating(reviews []Review) float64 {
	sum, n := 0, 0
	for _, rev := range reviews {
		if !rev.Approved {
			continue
		}
		sum += rev.Rating
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// SavedRecipe joins a user to a bookmarked recipe.
type SavedRecipe struct {
	UserID    uuid.UUID `json:"userId"`
	RecipeID  uuid.UUID `json:"recipeId"`
	Recipe    *Recipe   `json:"recipe,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListFilter holds the independent optional filters for recipe listing.
// Filters combine with logical AND; Search matches name OR description
// case-insensitively. Public listings always add Approved=true.
type ListFilter struct {
	Page       int
	Limit      int
	UserID     *uuid.UUID
	Cuisine    string
	Difficulty Difficulty
	Search     string

	// IncludeUnapproved is only set by the admin surface.
	IncludeUnapproved bool
}
