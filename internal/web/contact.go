package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mbenner/invtrack/internal/mail"
	"github.com/mbenner/invtrack/internal/model"
	"github.com/mbenner/invtrack/internal/store"
)

// ContactPage handles GET /contact.
func (s *Server) ContactPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "contact.html", &PageData{Title: "Contact"})
}

// ContactSubmit handles POST /contact. The submission is saved and forwarded
// to the configured recipients by email.
func (s *Server) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	fullName := strings.TrimSpace(r.FormValue("fullname"))
	email := strings.TrimSpace(r.FormValue("contact_email"))
	subject := strings.TrimSpace(r.FormValue("contact_subject"))
	message := strings.TrimSpace(r.FormValue("contact_message"))

	if fullName == "" || email == "" || subject == "" || message == "" {
		s.Templates.Render(w, "contact.html", &PageData{
			Title: "Contact",
			Error: "All fields are required.",
		})
		return
	}

	if _, err := store.CreateContact(r.Context(), s.DB, fullName, email, subject, message); err != nil {
		slog.Error("failed to save contact submission", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := s.Mail.Send(r.Context(), subject, mail.ContactBody(fullName, email, message)); err != nil {
		slog.Error("failed to forward contact message", "error", err)
	}

	s.Templates.Render(w, "index.html", &PageData{
		Title:   "Inventory",
		Success: "Email sent!  Thank you for contacting us.",
	})
}

// MessagesPage handles GET /messages (admin only): the saved contact-form
// submissions, newest first.
func (s *Server) MessagesPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	if !model.RoleAtLeast(claims.Role, model.RoleAdmin) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	contacts, err := store.ListContacts(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list contact submissions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.Templates.Render(w, "messages.html", &struct {
		PageData
		Contacts []model.Contact
	}{
		PageData: PageData{Title: "Messages", User: claims},
		Contacts: contacts,
	})
}
