package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/mbenner/invtrack/internal/model"
	"github.com/mbenner/invtrack/internal/store"
)

// UsersPage handles GET /users (admin only).
func (s *Server) UsersPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	users, err := store.ListUsers(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "users.html", &struct {
		PageData
		Users []model.User
	}{
		PageData: PageData{Title: "Users", User: claims},
		Users:    users,
	})
}

// UserActivateSubmit handles POST /users/{id}/activate (admin only).
// Registration leaves accounts inactive; this is the activation step.
func (s *Server) UserActivateSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	active := r.FormValue("active") != "0"
	if err := store.SetUserActive(r.Context(), s.DB, id, active); err != nil {
		slog.Error("failed to update user active flag", "error", err)
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	slog.Info("user activation changed", "admin", claims.Username, "user_id", id, "active", active)
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// UserRoleSubmit handles POST /users/{id}/role (admin only).
func (s *Server) UserRoleSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	role := r.FormValue("role")
	switch role {
	case "", model.RoleAdmin, model.RoleLeader, model.RoleMember, model.RoleGuest:
	default:
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}

	if err := store.UpdateUserRole(r.Context(), s.DB, id, role); err != nil {
		slog.Error("failed to update user role", "error", err)
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// UserResetPasswordSubmit handles POST /users/{id}/password (admin only).
func (s *Server) UserResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	newPassword := r.FormValue("new_password")
	if newPassword == "" {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	if err := store.UpdateUserPassword(r.Context(), s.DB, id, string(hash)); err != nil {
		slog.Error("failed to reset user password", "error", err)
		http.Error(w, "failed to update", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
