package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON object into dst. Unknown fields are an
// error so immutable fields cannot sneak into a patch.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON object")
	}
	return nil
}

// validationMessage flattens validator errors into "field: tag" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fmt.Sprintf("invalid %s: %s", fe.Field(), fe.Tag())
}

// statusFor maps repository errors onto HTTP statuses.
func statusFor(err error) int {
	var fetch *domain.FetchError
	if errors.As(err, &fetch) {
		if errors.Is(err, domain.ErrInvalidCategory) {
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	}

	var mut *domain.MutationError
	if errors.As(err, &mut) {
		switch {
		case errors.Is(err, domain.ErrNoSession):
			return http.StatusUnauthorized
		case errors.Is(err, domain.ErrNotFound):
			return http.StatusNotFound
		case errors.Is(err, domain.ErrInvalidCategory), errors.Is(err, domain.ErrEmptyPatch):
			return http.StatusBadRequest
		}
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// fail writes err with its mapped status, logging backend failures.
func fail(w http.ResponseWriter, log logger.Logger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Warn("request failed", logger.Int("status", status), logger.Error(err))
	}
	writeError(w, status, err.Error())
}
