package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mbenner/invtrack/internal/auth"
	"github.com/mbenner/invtrack/internal/mail"
	"github.com/mbenner/invtrack/internal/store"
)

// IndexPage handles GET / (public landing page).
func (s *Server) IndexPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "index.html", &PageData{Title: "Inventory"})
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Enter a username and password.",
		})
		return
	}

	user, err := store.GetUserByUsername(r.Context(), s.DB, username)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Login failed, try again.",
		})
		return
	}
	if user == nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Invalid username or password.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Invalid username or password.",
		})
		return
	}

	// Registered but not yet activated by an admin.
	if !user.Active {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Info:  "Contact the administrator to activate your account!",
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, user.ID, user.Username, user.FullName(), user.Role)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Login failed, try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})

	http.Redirect(w, r, "/summary", http.StatusSeeOther)
}

// Logout handles POST /logout. The session's JTI is revoked so the cookie
// cannot be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
				slog.Error("failed to revoke session token", "error", err)
			}
		}
	}
	clearAuthCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RegisterPage handles GET /register.
func (s *Server) RegisterPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "register.html", &PageData{Title: "Register"})
}

// RegisterSubmit handles POST /register. New accounts are inactive until an
// admin activates them; an alert email goes out so the admin knows to look.
func (s *Server) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password1 := r.FormValue("password1")
	password2 := r.FormValue("password2")

	renderError := func(msg string) {
		s.Templates.Render(w, "register.html", &PageData{Title: "Register", Error: msg})
	}

	if firstName == "" || lastName == "" || username == "" || email == "" || password1 == "" {
		renderError("All fields are required.")
		return
	}
	if password1 != password2 {
		renderError("Passwords do not match.")
		return
	}

	existing, err := store.GetUserByUsername(r.Context(), s.DB, username)
	if err != nil {
		slog.Error("failed to check username", "error", err)
		renderError("Registration failed, try again.")
		return
	}
	if existing != nil {
		renderError("This username already exists!")
		return
	}

	existing, err = store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil {
		slog.Error("failed to check email", "error", err)
		renderError("Registration failed, try again.")
		return
	}
	if existing != nil {
		renderError("This email already exists!")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password1), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		renderError("Registration failed, try again.")
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, username, string(hash), firstName, lastName, email, "", false)
	if err != nil {
		slog.Error("failed to create user", "error", err)
		renderError("Registration failed, try again.")
		return
	}
	slog.Info("user registered", "user", user.Username)

	body := mail.RegistrationBody(firstName, lastName, username, email)
	if err := s.Mail.Send(r.Context(), mail.RegistrationSubject, body); err != nil {
		slog.Error("failed to send registration alert", "error", err)
	}

	s.Templates.Render(w, "index.html", &PageData{
		Title: "Inventory",
		Info:  "Email sent to Admin to activate your account.",
	})
}

// CheckUsername handles POST /register/check-username, returning an inline
// availability fragment for the registration form.
func (s *Server) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	user, err := store.GetUserByUsername(r.Context(), s.DB, username)
	if err != nil {
		slog.Error("failed to check username", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if user != nil {
		fmt.Fprint(w, `<div id="username-error" class="error">This username already exists!</div>`)
		return
	}
	fmt.Fprint(w, `<div id="username-error" class="success">This username is available.</div>`)
}

// CheckEmail handles POST /register/check-email.
func (s *Server) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	user, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil {
		slog.Error("failed to check email", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if user != nil {
		fmt.Fprint(w, `<div id="email-error" class="error">This email already exists!</div>`)
		return
	}
	fmt.Fprint(w, `<div id="email-error" class="success">This email is available.</div>`)
}
