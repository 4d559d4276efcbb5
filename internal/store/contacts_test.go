package store

import (
	"context"
	"testing"

	"github.com/mbenner/invtrack/internal/db"
)

func TestCreateAndListContacts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	c, err := CreateContact(ctx, database, "Jane Doe", "jdoe@example.com", "Question", "Where is the export button?")
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if c.FullName != "Jane Doe" || c.Subject != "Question" {
		t.Errorf("unexpected contact: %+v", c)
	}
	if c.InsertedDate.IsZero() {
		t.Error("expected an inserted date")
	}

	if _, err := CreateContact(ctx, database, "John Roe", "jroe@example.com", "Feedback", "Works great."); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	contacts, err := ListContacts(ctx, database)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].FullName != "John Roe" {
		t.Errorf("expected newest first, got %q", contacts[0].FullName)
	}
}
