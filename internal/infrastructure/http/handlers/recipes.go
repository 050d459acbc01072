package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	recipeapp "github.com/forkful/forkful/internal/application/recipe"
	"github.com/forkful/forkful/internal/domain/recipe"
	"github.com/forkful/forkful/internal/infrastructure/http/middleware"
	"github.com/forkful/forkful/pkg/errors"
)

// RecipeHandler serves the recipe CRUD and listing endpoints.
type RecipeHandler struct {
	recipes *recipeapp.Service
	logger  *zap.Logger
}

// NewRecipeHandler creates the recipe handler.
func NewRecipeHandler(recipes *recipeapp.Service, logger *zap.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, logger: logger.Named("recipe-handler")}
}

// List handles GET /api/recipes.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFrom(r)

	items, total, err := h.recipes.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// Featured handles GET /api/recipes/featured.
func (h *RecipeHandler) Featured(w http.ResponseWriter, r *http.Request) {
	items, err := h.recipes.Featured(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Get handles GET /api/recipes/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	detail, err := h.recipes.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	var req recipeapp.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.recipes.Create(r.Context(), identity, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// Update handles PUT /api/recipes/{id}.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req recipeapp.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.recipes.Update(r.Context(), identity, id, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/recipes/{id}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.recipes.Delete(r.Context(), identity, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Recipe deleted"})
}

// listFilterFrom parses the listing query parameters. Unparsable numbers
// fall back to defaults rather than erroring.
func listFilterFrom(r *http.Request) recipe.ListFilter {
	q := r.URL.Query()

	filter := recipe.ListFilter{
		Page:       1,
		Limit:      12,
		Cuisine:    q.Get("cuisine"),
		Difficulty: recipe.Difficulty(q.Get("difficulty")),
		Search:     q.Get("search"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 && limit <= 100 {
		filter.Limit = limit
	}
	if raw := q.Get("userId"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			filter.UserID = &id
		}
	}
	return filter
}
