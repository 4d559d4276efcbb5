package web

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mbenner/invtrack/internal/model"
	"github.com/mbenner/invtrack/internal/store"
)

// ProfilePage handles GET /profile.
func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request) {
	s.renderProfile(w, r, "", "")
}

// ProfileSubmit handles POST /profile (edit own name and email).
func (s *Server) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	email := strings.TrimSpace(r.FormValue("email"))

	if email == "" {
		s.renderProfile(w, r, "", "An email address is required.")
		return
	}

	if err := store.UpdateUserProfile(r.Context(), s.DB, claims.UserID, firstName, lastName, email); err != nil {
		slog.Error("failed to update profile", "error", err)
		s.renderProfile(w, r, "", "Could not update your profile.")
		return
	}

	s.renderProfile(w, r, "Your profile was updated successfully.", "")
}

func (s *Server) renderProfile(w http.ResponseWriter, r *http.Request, success, errMsg string) {
	claims := GetWebClaims(r.Context())

	user, err := store.GetUser(r.Context(), s.DB, claims.UserID)
	if err != nil || user == nil {
		slog.Error("failed to load profile user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "profile.html", &struct {
		PageData
		Profile *model.User
	}{
		PageData: PageData{Title: "Profile", User: claims, Success: success, Error: errMsg},
		Profile:  user,
	})
}

// PasswordPage handles GET /profile/password.
func (s *Server) PasswordPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "password.html", &PageData{Title: "Change Password", User: claims})
}

// PasswordSubmit handles POST /profile/password (change own password).
func (s *Server) PasswordSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	currentPassword := r.FormValue("current_password")
	newPassword := r.FormValue("new_password")

	renderError := func(msg string) {
		s.Templates.Render(w, "password.html", &PageData{
			Title: "Change Password",
			User:  claims,
			Error: msg,
		})
	}

	if currentPassword == "" || newPassword == "" {
		renderError("Enter your current and new password.")
		return
	}

	user, err := store.GetUser(r.Context(), s.DB, claims.UserID)
	if err != nil || user == nil {
		slog.Error("failed to load user for password change", "error", err)
		renderError("Could not change your password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		renderError("Your current password is incorrect.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		renderError("Could not change your password.")
		return
	}

	if err := store.UpdateUserPassword(r.Context(), s.DB, claims.UserID, string(hash)); err != nil {
		slog.Error("failed to update password", "error", err)
		renderError("Could not change your password.")
		return
	}

	s.Templates.Render(w, "password.html", &PageData{
		Title:   "Change Password",
		User:    claims,
		Success: "Your password was updated successfully.",
	})
}
