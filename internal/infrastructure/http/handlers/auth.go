package handlers

import (
	"net/http"

	"go.uber.org/zap"

	userapp "github.com/forkful/forkful/internal/application/user"
	"github.com/forkful/forkful/internal/infrastructure/http/middleware"
	"github.com/forkful/forkful/pkg/errors"
)

// AuthHandler serves the session endpoints.
type AuthHandler struct {
	users  *userapp.Service
	logger *zap.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(users *userapp.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger.Named("auth-handler")}
}

// CurrentUser handles GET /api/auth/user. The authentication middleware
// has already mirrored the token claims into the local store, so this
// only reads back the stored account.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		writeError(w, h.logger, errors.NewUnauthorized(""))
		return
	}

	u, err := h.users.Get(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
