package web

import (
	"database/sql"
	"net/http"

	"github.com/mbenner/invtrack/internal/mail"
	webembed "github.com/mbenner/invtrack/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, jwtSecret string, mailer mail.Mailer) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Templates: templates,
		JWTSecret: jwtSecret,
		Mail:      mailer,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.IndexPage)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)
	mux.HandleFunc("GET /register", s.RegisterPage)
	mux.HandleFunc("POST /register", s.RegisterSubmit)
	mux.HandleFunc("POST /register/check-username", s.CheckUsername)
	mux.HandleFunc("POST /register/check-email", s.CheckEmail)
	mux.HandleFunc("GET /contact", s.ContactPage)
	mux.HandleFunc("POST /contact", s.ContactSubmit)

	// Authenticated routes.
	mux.Handle("GET /summary", cookieAuth(http.HandlerFunc(s.SummaryPage)))

	mux.Handle("GET /inventory", cookieAuth(http.HandlerFunc(s.InventoryPage)))
	mux.Handle("GET /inventory/export", cookieAuth(http.HandlerFunc(s.ExportCSV)))
	mux.Handle("GET /items/new", cookieAuth(http.HandlerFunc(s.ItemNewPage)))
	mux.Handle("POST /items/new", cookieAuth(http.HandlerFunc(s.ItemCreateSubmit)))
	mux.Handle("GET /items/areas", cookieAuth(http.HandlerFunc(s.AreaOptions)))
	mux.Handle("GET /items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemEditPage)))
	mux.Handle("POST /items/{id}/edit", cookieAuth(http.HandlerFunc(s.ItemUpdateSubmit)))
	mux.Handle("GET /items/{id}/notes", cookieAuth(http.HandlerFunc(s.NotesPage)))
	mux.Handle("POST /items/{id}/notes", cookieAuth(http.HandlerFunc(s.NoteSubmit)))

	mux.Handle("GET /profile", cookieAuth(http.HandlerFunc(s.ProfilePage)))
	mux.Handle("POST /profile", cookieAuth(http.HandlerFunc(s.ProfileSubmit)))
	mux.Handle("GET /profile/password", cookieAuth(http.HandlerFunc(s.PasswordPage)))
	mux.Handle("POST /profile/password", cookieAuth(http.HandlerFunc(s.PasswordSubmit)))

	// Admin routes; each handler checks the role itself.
	mux.Handle("GET /users", cookieAuth(http.HandlerFunc(s.UsersPage)))
	mux.Handle("POST /users/{id}/activate", cookieAuth(http.HandlerFunc(s.UserActivateSubmit)))
	mux.Handle("POST /users/{id}/role", cookieAuth(http.HandlerFunc(s.UserRoleSubmit)))
	mux.Handle("POST /users/{id}/password", cookieAuth(http.HandlerFunc(s.UserResetPasswordSubmit)))
	mux.Handle("GET /lookups", cookieAuth(http.HandlerFunc(s.LookupsPage)))
	mux.Handle("POST /lookups", cookieAuth(http.HandlerFunc(s.LookupCreateSubmit)))
	mux.Handle("GET /messages", cookieAuth(http.HandlerFunc(s.MessagesPage)))

	return mux, nil
}
