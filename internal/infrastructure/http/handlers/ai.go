package handlers

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	recipeapp "github.com/forkful/forkful/internal/application/recipe"
	"github.com/forkful/forkful/internal/infrastructure/config"
	"github.com/forkful/forkful/internal/infrastructure/http/middleware"
	"github.com/forkful/forkful/pkg/errors"
)

// AIHandler serves the generation and photo-identification endpoints.
type AIHandler struct {
	recipes *recipeapp.Service
	upload  config.UploadConfig
	logger  *zap.Logger
}

// NewAIHandler creates the AI handler.
func NewAIHandler(recipes *recipeapp.Service, cfg *config.Config, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		recipes: recipes,
		upload:  cfg.Upload,
		logger:  logger.Named("ai-handler"),
	}
}

// Generate handles POST /api/recipes/generate-from-ingredients.
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	var req recipeapp.GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	recipes, err := h.recipes.GenerateFromIngredients(r.Context(), identity, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, recipes)
}

// Identify handles POST /api/recipes/identify-from-photo. The photo
// arrives as the "image" part of a multipart form, capped at the
// configured upload size and restricted to image MIME types.
func (h *AIHandler) Identify(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.IdentityFrom(r.Context()); !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.upload.MaxBytes)
	if err := r.ParseMultipartForm(h.upload.MaxBytes); err != nil {
		writeError(w, h.logger, errors.NewBadRequest("Upload exceeds the size limit or is not valid multipart data"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, h.logger, errors.NewBadRequest("Missing image file"))
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !h.allowedType(mimeType) {
		writeError(w, h.logger, errors.NewBadRequest("Unsupported image type"))
		return
	}

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, h.logger, errors.NewBadRequest("Could not read uploaded image"))
		return
	}

	dish, err := h.recipes.IdentifyFromPhoto(r.Context(), image, mimeType)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *AIHandler) allowedType(mimeType string) bool {
	for _, allowed := range h.upload.AllowedTypes {
		if mimeType == allowed {
			return true
		}
	}
	return len(h.upload.AllowedTypes) == 0 && strings.HasPrefix(mimeType, "image/")
}
