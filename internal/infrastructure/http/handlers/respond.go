// Package handlers contains the REST handlers. Success responses are the
// bare entity or array JSON; failure responses are {"message": string,
// "errors"?: [field errors]} with the status derived from the error code.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/forkful/pkg/errors"
)

// errorBody is the wire shape of every failure response.
type errorBody struct {
	Message string                  `json:"message"`
	Errors  errors.ValidationErrors `json:"errors,omitempty"`
}

// listBody wraps paginated collections.
type listBody struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps an error onto the wire. Server-side detail (cause
// chains, remote bodies) is logged and never serialized.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "An unexpected error occurred")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("code", string(appErr.Code)),
			zap.Error(appErr),
		)
	}

	writeJSON(w, appErr.StatusCode(), errorBody{
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}

// decodeJSON parses the request body into dst. Unknown fields are
// ignored; malformed JSON maps to a 400.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequest("Request body is not valid JSON")
	}
	return nil
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errors.NewBadRequest("Invalid identifier in URL")
	}
	return id, nil
}
