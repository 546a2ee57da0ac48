package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/campuspulse/campuspulse-be/internal/auth"
	"github.com/campuspulse/campuspulse-be/internal/models"
	"github.com/campuspulse/campuspulse-be/internal/services"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy to HTTP statuses. Plain
// errors are treated as server faults and logged.
func writeError(w http.ResponseWriter, err error) {
	kind := models.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case models.KindNotFound:
		status = http.StatusNotFound
	case models.KindUnauthorized:
		status = http.StatusUnauthorized
	case models.KindForbidden:
		status = http.StatusForbidden
	case models.KindValidation:
		status = http.StatusBadRequest
	case models.KindConflict:
		status = http.StatusConflict
	default:
		kind = "server_error"
		log.Error().Err(err).Msg("Unhandled error")
	}
	writeJSON(w, status, map[string]string{
		"error":   string(kind),
		"message": err.Error(),
	})
}

// decodeAndValidate decodes a JSON body into v and runs the payload's
// validate tags.
func decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.ValidationError("invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return models.ValidationError("%s", err.Error())
	}
	return nil
}

// identityFrom resolves the caller's identity from the JWT claims set
// by the auth middleware, re-reading role facts from the store.
func identityFrom(r *http.Request, users services.UserServiceProvider) (*models.Identity, error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return nil, models.UnauthorizedError("not authenticated")
	}
	return users.Identity(claims.UserID)
}
