package outbound

import (
	"context"

	"github.com/forkful/forkful/internal/domain/recipe"
)

// AIService defines the interface for the external generative-AI calls.
// All three operations are single-shot: no retry, no backoff.
type AIService interface {
	// GenerateFromIngredients asks the text model for count recipe
	// candidates built from the given ingredients and optional filters.
	// Any transport or parse failure surfaces as an upstream error.
	GenerateFromIngredients(ctx context.Context, ingredients []string, opts GenerateOptions) ([]GeneratedRecipe, error)

	// IdentifyFromPhoto sends the image to the vision model and returns
	// the identified dish. Same failure mode as generation.
	IdentifyFromPhoto(ctx context.Context, image []byte, mimeType string) (*DishIdentification, error)

	// GenerateImage requests a single image for the recipe. On any
	// failure it degrades gracefully, returning "" and no error;
	// callers treat "" as "no image available", never as fatal.
	GenerateImage(ctx context.Context, name, description string) string
}

// GenerateOptions are the optional filters embedded in the generation prompt.
type GenerateOptions struct {
	Cuisine        string
	Difficulty     recipe.Difficulty
	MaxCookingTime int
	Count          int
	Temperature    float64
}

// GeneratedRecipe is one candidate parsed from the model's JSON array.
type GeneratedRecipe struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  int      `json:"cooking_time_minutes"`
	Difficulty   string   `json:"difficulty"`
	Cuisine      string   `json:"cuisine"`
	Servings     int      `json:"servings"`
}

// DishIdentification is the vision model's answer for a food photo.
type DishIdentification struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Cuisine      string   `json:"cuisine"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  int      `json:"cooking_time_minutes"`
	Difficulty   string   `json:"difficulty"`
	Servings     int      `json:"servings"`
	Confidence   float64  `json:"confidence"`
}
