package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	ListenAddr     string
	DBPath         string
	LogFile        string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	MailFrom       string
	MailRecipients []string
}

// Load reads configuration from environment variables, falling back to
// defaults. SMTP settings are optional; with no SMTP_HOST set, outbound
// mail is disabled.
func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "invtrack.sqlite3"),
		LogFile:        getEnv("LOG_FILE", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		MailFrom:       getEnv("MAIL_FROM", ""),
		MailRecipients: splitList(getEnv("MAIL_RECIPIENTS", "")),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func splitList(val string) []string {
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
