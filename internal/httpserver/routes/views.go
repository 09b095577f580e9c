package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
)

func init() { Register(registerViews) }

func registerViews(r chi.Router, d deps.Deps) {
	a := api(r, d)
	a.Get("/api/dashboard", handlers.Dashboard(d))
	a.Get("/api/views/{category}", handlers.GetView(d))
	a.Put("/api/views/{category}", handlers.PutView(d))
	a.Post("/api/views/{category}/links", handlers.ViewCreateLink(d))
	a.Patch("/api/views/{category}/links/{id}", handlers.ViewUpdateLink(d))
	a.Delete("/api/views/{category}/links/{id}", handlers.ViewDeleteLink(d))
}
