package db

import "testing"

func TestMigrateIdempotent(t *testing.T) {
	database := NewTestDB(t)

	// Running migrations again must not fail.
	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(`INSERT INTO areas (name, location_id) VALUES ('Orphan', 999)`)
	if err == nil {
		t.Error("expected foreign key violation for orphan area")
	}
}
