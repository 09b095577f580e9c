package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	a := api(r, d)
	a.Get("/api/categories", handlers.Categories(d))
	a.Get("/api/links", handlers.ListLinks(d))
	a.Post("/api/links", handlers.CreateLink(d))
	a.Post("/api/links/import", handlers.ImportLinks(d))
	a.Patch("/api/links/{id}", handlers.UpdateLink(d))
	a.Delete("/api/links/{id}", handlers.DeleteLink(d))
}
