package handlers

import (
	"net/http"

	"go.uber.org/zap"

	siteapp "github.com/forkful/forkful/internal/application/site"
)

// ContactHandler serves the public contact form.
type ContactHandler struct {
	site   *siteapp.Service
	logger *zap.Logger
}

// NewContactHandler creates the contact handler.
func NewContactHandler(site *siteapp.Service, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{site: site, logger: logger.Named("contact-handler")}
}

// Submit handles POST /api/contact. The endpoint is anonymous.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req siteapp.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	msg, err := h.site.SubmitContact(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
