package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "invtrack.sqlite3", cfg.DBPath)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Empty(t, cfg.SMTPHost)
	assert.Empty(t, cfg.MailRecipients)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/tmp/test.sqlite3")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("MAIL_RECIPIENTS", "admin@example.com, ops@example.com ,")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.sqlite3", cfg.DBPath)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.MailRecipients)
}

func TestLoadInvalidPortFallsBack(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg := Load()
	assert.Equal(t, 587, cfg.SMTPPort)
}
