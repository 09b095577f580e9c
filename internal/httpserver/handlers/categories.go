package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
)

type categoriesResponse struct {
	Categories []domain.CategoryInfo `json:"categories"`
	Icons      []domain.IconInfo     `json:"icons"`
}

// Categories serves the static category and icon tables.
func Categories(_ deps.Deps) http.HandlerFunc {
	body := categoriesResponse{
		Categories: domain.Categories(),
		Icons:      domain.Icons(),
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, body)
	}
}
