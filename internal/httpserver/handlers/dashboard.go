package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/mw"
)

// Dashboard returns the cross-category summary, with ?q= applied to the
// result list.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := d.Dashboard.Load(r.Context(), mw.SessionFrom(r.Context()), r.URL.Query().Get("q"))
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}
