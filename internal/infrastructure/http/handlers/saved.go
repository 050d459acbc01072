package handlers

import (
	"net/http"

	"go.uber.org/zap"

	recipeapp "github.com/forkful/forkful/internal/application/recipe"
	"github.com/forkful/forkful/internal/infrastructure/http/middleware"
	"github.com/forkful/forkful/pkg/errors"
)

// SavedRecipeHandler serves the bookmark endpoints.
type SavedRecipeHandler struct {
	recipes *recipeapp.Service
	logger  *zap.Logger
}

// NewSavedRecipeHandler creates the saved-recipe handler.
func NewSavedRecipeHandler(recipes *recipeapp.Service, logger *zap.Logger) *SavedRecipeHandler {
	return &SavedRecipeHandler{recipes: recipes, logger: logger.Named("saved-handler")}
}

// Save handles POST /api/saved-recipes/{recipeID}.
func (h *SavedRecipeHandler) Save(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	recipeID, err := pathUUID(r, "recipeID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.recipes.SaveRecipe(r.Context(), identity, recipeID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe saved"})
}

// Unsave handles DELETE /api/saved-recipes/{recipeID}.
func (h *SavedRecipeHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	recipeID, err := pathUUID(r, "recipeID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.recipes.UnsaveRecipe(r.Context(), identity, recipeID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe unsaved"})
}

// Status handles GET /api/saved-recipes/{recipeID}/status.
func (h *SavedRecipeHandler) Status(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	recipeID, err := pathUUID(r, "recipeID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	saved, err := h.recipes.IsSaved(r.Context(), identity, recipeID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// List handles GET /api/saved-recipes.
func (h *SavedRecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	items, err := h.recipes.ListSaved(r.Context(), identity)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
