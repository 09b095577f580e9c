package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	// Sign-in, sign-up and sign-out work from credentials or the raw
	// token and must not depend on resolving a session first.
	public := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	public.Post("/api/auth/signup", handlers.Signup(d))
	public.Post("/api/auth/login", handlers.Login(d))
	public.Post("/api/auth/logout", handlers.Logout(d))

	api(r, d).Get("/api/auth/session", handlers.Session(d))
}
