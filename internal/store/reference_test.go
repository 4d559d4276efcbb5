package store

import (
	"context"
	"testing"

	"github.com/mbenner/invtrack/internal/db"
	"github.com/mbenner/invtrack/internal/model"
)

func TestCreateAndGetReference(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ref, err := CreateReference(ctx, database, model.KindStatus, "Deployed")
	if err != nil {
		t.Fatalf("CreateReference: %v", err)
	}
	if ref.Name != "Deployed" {
		t.Errorf("expected name 'Deployed', got %q", ref.Name)
	}

	got, err := GetReference(ctx, database, model.KindStatus, ref.ID)
	if err != nil {
		t.Fatalf("GetReference: %v", err)
	}
	if got == nil || got.Name != "Deployed" {
		t.Errorf("expected to read back 'Deployed', got %+v", got)
	}
}

func TestGetReferenceMissing(t *testing.T) {
	database := db.NewTestDB(t)

	got, err := GetReference(context.Background(), database, model.KindLocation, 42)
	if err != nil {
		t.Fatalf("GetReference: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing reference, got %+v", got)
	}
}

func TestCreateReferenceRejectsArea(t *testing.T) {
	database := db.NewTestDB(t)

	if _, err := CreateReference(context.Background(), database, model.KindArea, "Shelf"); err == nil {
		t.Error("expected error when creating an area without a location")
	}
}

func TestCreateReferenceUnknownKind(t *testing.T) {
	database := db.NewTestDB(t)

	if _, err := CreateReference(context.Background(), database, model.Kind("gadget"), "X"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestListReferenceSorted(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Zebra Corp", "Acme", "Midway"} {
		if _, err := CreateReference(ctx, database, model.KindManufacturer, name); err != nil {
			t.Fatalf("CreateReference(%q): %v", name, err)
		}
	}

	refs, err := ListReference(ctx, database, model.KindManufacturer)
	if err != nil {
		t.Fatalf("ListReference: %v", err)
	}
	want := []string{"Acme", "Midway", "Zebra Corp"}
	if len(refs) != len(want) {
		t.Fatalf("expected %d manufacturers, got %d", len(want), len(refs))
	}
	for i, name := range want {
		if refs[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, refs[i].Name)
		}
	}
}

func TestListReferenceExcluding(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, _ := CreateReference(ctx, database, model.KindStatus, "Active")
	CreateReference(ctx, database, model.KindStatus, "Retired")
	CreateReference(ctx, database, model.KindStatus, "Stored")

	refs, err := ListReferenceExcluding(ctx, database, model.KindStatus, a.ID)
	if err != nil {
		t.Fatalf("ListReferenceExcluding: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(refs))
	}
	for _, ref := range refs {
		if ref.ID == a.ID {
			t.Errorf("excluded id %d still present", a.ID)
		}
	}

	// Excluding an id that matches nothing filters nothing out.
	all, err := ListReferenceExcluding(ctx, database, model.KindStatus, 9999)
	if err != nil {
		t.Fatalf("ListReferenceExcluding: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 statuses, got %d", len(all))
	}
}

func TestCreateAreaRequiresLocation(t *testing.T) {
	database := db.NewTestDB(t)

	if _, err := CreateArea(context.Background(), database, "Orphan", 12345); err == nil {
		t.Error("expected foreign key error for area without location")
	}
}

func TestListAreasByLocation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hq, _ := CreateReference(ctx, database, model.KindLocation, "HQ")
	warehouse, _ := CreateReference(ctx, database, model.KindLocation, "Warehouse")

	CreateArea(ctx, database, "Server Room", hq.ID)
	CreateArea(ctx, database, "Basement", hq.ID)
	CreateArea(ctx, database, "Dock", warehouse.ID)

	areas, err := ListAreasByLocation(ctx, database, hq.ID)
	if err != nil {
		t.Fatalf("ListAreasByLocation: %v", err)
	}
	if len(areas) != 2 {
		t.Fatalf("expected 2 areas for HQ, got %d", len(areas))
	}
	if areas[0].Name != "Basement" || areas[1].Name != "Server Room" {
		t.Errorf("expected areas sorted by name, got %q, %q", areas[0].Name, areas[1].Name)
	}
	for _, a := range areas {
		if a.LocationID != hq.ID {
			t.Errorf("area %q belongs to location %d, expected %d", a.Name, a.LocationID, hq.ID)
		}
	}
}

func TestListAreasByLocationNoSelection(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hq, _ := CreateReference(ctx, database, model.KindLocation, "HQ")
	CreateArea(ctx, database, "Server Room", hq.ID)

	areas, err := ListAreasByLocation(ctx, database, 0)
	if err != nil {
		t.Fatalf("ListAreasByLocation: %v", err)
	}
	if len(areas) != 0 {
		t.Errorf("expected no areas without a location, got %d", len(areas))
	}
}

func TestListAreasDisplayName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hq, _ := CreateReference(ctx, database, model.KindLocation, "HQ")
	area, err := CreateArea(ctx, database, "Lab", hq.ID)
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	if area.LocationName != "HQ" {
		t.Errorf("expected resolved location name 'HQ', got %q", area.LocationName)
	}
	if area.DisplayName() != "HQ - Lab" {
		t.Errorf("expected display name 'HQ - Lab', got %q", area.DisplayName())
	}
}
