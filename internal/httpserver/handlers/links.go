package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/mw"
)

// filterParam reads ?category=, defaulting to every category.
func filterParam(r *http.Request) domain.CategoryFilter {
	v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	if v == "" {
		return domain.FilterAll
	}
	return domain.CategoryFilter(v)
}

// ListLinks lists the caller's links, newest first, narrowed by
// ?category= and ?q=. Anonymous callers get an empty list.
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := mw.SessionFrom(r.Context())

		got, err := d.Links.List(r.Context(), filterParam(r), s)
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Links.Search(got, r.URL.Query().Get("q")))
	}
}

// CreateLink stores a new link for the caller.
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in domain.LinkInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Validate.Struct(in); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}

		created, err := d.Links.Create(r.Context(), in, mw.SessionFrom(r.Context()))
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateLink applies a partial update to one of the caller's links.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, ok := readPatch(w, r, d)
		if !ok {
			return
		}

		updated, err := d.Links.Update(r.Context(), mw.SessionFrom(r.Context()), chi.URLParam(r, "id"), patch)
		if err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteLink removes one of the caller's links.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Links.Delete(r.Context(), mw.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
			fail(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// readPatch decodes and validates a LinkPatch body, answering 400 itself
// on failure.
func readPatch(w http.ResponseWriter, r *http.Request, d deps.Deps) (domain.LinkPatch, bool) {
	var patch domain.LinkPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return patch, false
	}
	if err := d.Validate.Struct(patch); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return patch, false
	}
	return patch, true
}
