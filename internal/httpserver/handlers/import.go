package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/mw"
	"github.com/MrSnakeDoc/linkvault/internal/importer"
)

// ImportLinks creates links from a bookmarks.yaml body. Entries whose
// group names no category land in ?category=, or "others".
func ImportLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := mw.SessionFrom(r.Context())
		if s == nil {
			writeError(w, http.StatusUnauthorized, domain.ErrNoSession.Error())
			return
		}

		fallback := domain.CategoryOthers
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			c, ok := domain.ParseCategory(raw)
			if !ok {
				writeError(w, http.StatusBadRequest, domain.ErrInvalidCategory.Error())
				return
			}
			fallback = c
		}

		config, err := importer.Read(r.Body)
		switch {
		case errors.Is(err, importer.ErrTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := d.Importer.Import(r.Context(), s, config, fallback)
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}
