package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/auth"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/mw"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Session *domain.Session `json:"session"`
}

// Signup registers an account and returns its first grant.
func Signup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in credentials
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		g, err := d.Sessions.Signup(r.Context(), in.Email, in.Password)
		if err != nil {
			writeAuthError(w, d.Logger, err, http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, g)
	}
}

// Login signs in with email and password.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in credentials
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		g, err := d.Sessions.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			writeAuthError(w, d.Logger, err, http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, g)
	}
}

// Logout revokes the bearer token. It answers 204 whatever happens
// remotely.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Sessions.Logout(r.Context(), mw.BearerToken(r))
		w.WriteHeader(http.StatusNoContent)
	}
}

// Session returns the caller's session, null when anonymous.
func Session(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionResponse{Session: mw.SessionFrom(r.Context())})
	}
}

// writeAuthError answers rejections with rejected and collaborator
// failures with 502.
func writeAuthError(w http.ResponseWriter, log logger.Logger, err error, rejected int) {
	if auth.IsRejection(err) {
		writeError(w, rejected, err.Error())
		return
	}
	log.Warn("auth backend failed", logger.Error(err))
	writeError(w, http.StatusBadGateway, err.Error())
}
