package handlers

import (
	"net/http"

	"go.uber.org/zap"

	recipeapp "github.com/forkful/forkful/internal/application/recipe"
	"github.com/forkful/forkful/internal/infrastructure/http/middleware"
	"github.com/forkful/forkful/pkg/errors"
)

// ReviewHandler serves the review endpoints.
type ReviewHandler struct {
	recipes *recipeapp.Service
	logger  *zap.Logger
}

// NewReviewHandler creates the review handler.
func NewReviewHandler(recipes *recipeapp.Service, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{recipes: recipes, logger: logger.Named("review-handler")}
}

// Create handles POST /api/recipes/{id}/reviews.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	recipeID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req recipeapp.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	rev, err := h.recipes.CreateReview(r.Context(), identity, recipeID, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

// Update handles PUT /api/reviews/{id}.
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req recipeapp.ReviewUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	rev, err := h.recipes.UpdateReview(r.Context(), identity, id, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

// Delete handles DELETE /api/reviews/{id}.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.recipes.DeleteReview(r.Context(), identity, id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}
