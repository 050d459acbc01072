package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	recipeapp "github.com/forkful/forkful/internal/application/recipe"
	siteapp "github.com/forkful/forkful/internal/application/site"
	userapp "github.com/forkful/forkful/internal/application/user"
	"github.com/forkful/forkful/internal/domain/user"
)

// AdminHandler serves the admin dashboard endpoints. Route guards
// (Authenticate + RequireAdmin) run before any of these.
type AdminHandler struct {
	recipes *recipeapp.Service
	users   *userapp.Service
	site    *siteapp.Service
	logger  *zap.Logger
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(recipes *recipeapp.Service, users *userapp.Service, site *siteapp.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		recipes: recipes,
		users:   users,
		site:    site,
		logger:  logger.Named("admin-handler"),
	}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.site.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := h.users.List(r.Context(), page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Items: users, Total: total, Page: page, Limit: limit})
}

// ChangeRole handles PUT /api/admin/users/{id}/role.
func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	u, err := h.users.ChangeRole(r.Context(), id, user.Role(req.Role))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// ListRecipes handles GET /api/admin/recipes, unapproved rows included.
func (h *AdminHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	filter := listFilterFrom(r)

	items, total, err := h.recipes.ListAll(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listBody{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// SetFeatured handles PUT /api/admin/recipes/{id}/feature.
func (h *AdminHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	h.setRecipeFlag(w, r, "featured", h.recipes.SetFeatured)
}

// SetApproved handles PUT /api/admin/recipes/{id}/approve.
func (h *AdminHandler) SetApproved(w http.ResponseWriter, r *http.Request) {
	h.setRecipeFlag(w, r, "approved", h.recipes.SetApproved)
}

func (h *AdminHandler) setRecipeFlag(w http.ResponseWriter, r *http.Request, name string, set func(ctx context.Context, id uuid.UUID, v bool) error) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req map[string]bool
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	value, ok := req[name]
	if !ok {
		value = true
	}

	if err := set(r.Context(), id, value); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{name: value})
}

// ListContact handles GET /api/admin/contact-messages?isRead=.
func (h *AdminHandler) ListContact(w http.ResponseWriter, r *http.Request) {
	var isRead *bool
	if raw := r.URL.Query().Get("isRead"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			isRead = &v
		}
	}

	msgs, err := h.site.ListContact(r.Context(), isRead)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// MarkContactRead handles PUT /api/admin/contact-messages/{id}/read.
func (h *AdminHandler) MarkContactRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.site.MarkContactRead(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Message marked as read"})
}

// GetSettings handles GET /api/admin/settings.
func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.site.GetSettings(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/admin/settings.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req siteapp.SettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	settings, err := h.site.UpdateSettings(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
