package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSenderDisabledWithoutHost(t *testing.T) {
	s := &Sender{Recipients: []string{"admin@example.com"}}
	require.NoError(t, s.Send(context.Background(), "subject", "<p>body</p>"))
}

func TestSenderDisabledWithoutRecipients(t *testing.T) {
	s := &Sender{Host: "smtp.example.com", Port: 587}
	require.NoError(t, s.Send(context.Background(), "subject", "<p>body</p>"))
}

func TestRegistrationBody(t *testing.T) {
	body := RegistrationBody("Jane", "Doe", "jdoe", "jdoe@example.com")

	assert.Contains(t, body, "The following user registered")
	assert.Contains(t, body, "Jane")
	assert.Contains(t, body, "Doe")
	assert.Contains(t, body, "jdoe")
	assert.Contains(t, body, "jdoe@example.com")
}

func TestContactBody(t *testing.T) {
	body := ContactBody("Jane Doe", "jdoe@example.com", "The export is missing a column.")

	assert.Contains(t, body, "Contact Form")
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "jdoe@example.com")
	assert.Contains(t, body, "The export is missing a column.")
}
