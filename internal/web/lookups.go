package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mbenner/invtrack/internal/model"
	"github.com/mbenner/invtrack/internal/store"
)

// LookupsPage handles GET /lookups (admin only): management of the
// reference data the item forms pick from.
func (s *Server) LookupsPage(w http.ResponseWriter, r *http.Request) {
	s.renderLookups(w, r, "", "")
}

// LookupCreateSubmit handles POST /lookups (admin only). Areas additionally
// carry the location they belong to, which must already exist.
func (s *Server) LookupCreateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	kind := model.Kind(r.FormValue("kind"))
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		s.renderLookups(w, r, "", "A name is required.")
		return
	}

	if kind == model.KindArea {
		locationID, err := strconv.ParseInt(r.FormValue("location_id"), 10, 64)
		if err != nil {
			s.renderLookups(w, r, "", "Select a location for the area.")
			return
		}
		if _, err := store.CreateArea(r.Context(), s.DB, name, locationID); err != nil {
			slog.Error("failed to create area", "error", err)
			s.renderLookups(w, r, "", "Could not save the area.")
			return
		}
	} else {
		if _, err := store.CreateReference(r.Context(), s.DB, kind, name); err != nil {
			slog.Error("failed to create lookup", "kind", kind, "error", err)
			s.renderLookups(w, r, "", "Could not save the entry.")
			return
		}
	}

	slog.Info("lookup created", "admin", claims.Username, "kind", kind, "name", name)
	s.renderLookups(w, r, "Saved.", "")
}

func (s *Server) renderLookups(w http.ResponseWriter, r *http.Request, success, errMsg string) {
	claims := GetWebClaims(r.Context())
	if !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	lists, err := s.loadPickerLists(r)
	if err != nil {
		slog.Error("failed to load lookup lists", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "lookups.html", &struct {
		PageData
		Kinds []model.Kind
		Lists *pickerLists
	}{
		PageData: PageData{Title: "Reference Data", User: claims, Success: success, Error: errMsg},
		Kinds:    model.Kinds,
		Lists:    lists,
	})
}
