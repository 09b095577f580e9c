package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/mw"
	"github.com/MrSnakeDoc/linkvault/internal/view"
)

type viewUpdate struct {
	Search  *string `json:"search"`
	Editing *string `json:"editing"`
}

// viewFor resolves the {category} param to the caller's CategoryView.
// Anonymous callers get a throwaway view.
func viewFor(w http.ResponseWriter, r *http.Request, d deps.Deps) (*view.CategoryView, bool) {
	filter := domain.CategoryFilter(strings.ToLower(chi.URLParam(r, "category")))
	if !filter.Valid() {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidCategory.Error())
		return nil, false
	}

	s := mw.SessionFrom(r.Context())
	if s == nil {
		return view.NewCategoryView(d.Links, filter), true
	}
	return d.Board.View(s.UserID, filter), true
}

// GetView reloads the caller's view of a category and returns its state.
// A failed load keeps the previous links and reports the error in the
// state.
func GetView(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := viewFor(w, r, d)
		if !ok {
			return
		}

		err := v.Load(r.Context(), mw.SessionFrom(r.Context()))
		switch {
		case err == nil, errors.Is(err, view.ErrSuperseded):
			writeJSON(w, http.StatusOK, v.State())
		default:
			writeJSON(w, statusFor(err), v.State())
		}
	}
}

// PutView sets the search term and the link being edited.
func PutView(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mw.SessionFrom(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, domain.ErrNoSession.Error())
			return
		}

		var in viewUpdate
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		v, ok := viewFor(w, r, d)
		if !ok {
			return
		}

		if in.Search != nil {
			v.SetSearch(*in.Search)
		}
		if in.Editing != nil {
			if *in.Editing == "" {
				v.CancelEdit()
			} else {
				v.StartEdit(*in.Editing)
			}
		}
		writeJSON(w, http.StatusOK, v.State())
	}
}

// ViewCreateLink creates a link through the caller's view so the view
// shows it without a reload.
func ViewCreateLink(d deps.Deps) http.HandlerFunc {
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

		v, ok := viewFor(w, r, d)
		if !ok {
			return
		}
		if _, err := v.Create(r.Context(), mw.SessionFrom(r.Context()), in); err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, v.State())
	}
}

// ViewUpdateLink updates a link through the caller's view.
func ViewUpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patch, ok := readPatch(w, r, d)
		if !ok {
			return
		}

		v, ok := viewFor(w, r, d)
		if !ok {
			return
		}
		if _, err := v.Update(r.Context(), mw.SessionFrom(r.Context()), chi.URLParam(r, "id"), patch); err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v.State())
	}
}

// ViewDeleteLink deletes a link through the caller's view.
func ViewDeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, ok := viewFor(w, r, d)
		if !ok {
			return
		}
		if err := v.Delete(r.Context(), mw.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
			fail(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, v.State())
	}
}
