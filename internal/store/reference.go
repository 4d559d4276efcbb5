package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mbenner/invtrack/internal/model"
)

// referenceTables maps each reference kind to its table. Table names come
// from this map only, never from request input.
var referenceTables = map[model.Kind]string{
	model.KindLocation:     "locations",
	model.KindArea:         "areas",
	model.KindManufacturer: "manufacturers",
	model.KindStatus:       "statuses",
	model.KindAssignee:     "assignees",
	model.KindApprover:     "approvers",
}

func tableFor(kind model.Kind) (string, error) {
	table, ok := referenceTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown reference kind %q", kind)
	}
	return table, nil
}

// CreateReference creates a lookup row of the given kind. Areas carry a
// location and must be created with CreateArea instead.
func CreateReference(ctx context.Context, db *sql.DB, kind model.Kind, name string) (*model.Reference, error) {
	if kind == model.KindArea {
		return nil, fmt.Errorf("areas require a location, use CreateArea")
	}
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO `+table+` (name) VALUES (?)`, name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", kind, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting %s id: %w", kind, err)
	}

	return GetReference(ctx, db, kind, id)
}

// GetReference returns a lookup row by ID, or nil if absent.
func GetReference(ctx context.Context, db *sql.DB, kind model.Kind, id int64) (*model.Reference, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	ref := &model.Reference{}
	err = db.QueryRowContext(ctx,
		`SELECT id, name FROM `+table+` WHERE id = ?`, id,
	).Scan(&ref.ID, &ref.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", kind, err)
	}
	return ref, nil
}

// ListReference returns all rows of a kind, sorted ascending by name.
func ListReference(ctx context.Context, db *sql.DB, kind model.Kind) ([]model.Reference, error) {
	return ListReferenceExcluding(ctx, db, kind, 0)
}

// ListReferenceExcluding returns all rows of a kind except the one matching
// excludedID, sorted ascending by name. It backs the "choose a different
// value" pickers on the edit form, where the current selection is shown
// separately. An excludedID that matches no row filters nothing out.
func ListReferenceExcluding(ctx context.Context, db *sql.DB, kind model.Kind, excludedID int64) ([]model.Reference, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, name FROM `+table+` WHERE id != ? ORDER BY name`, excludedID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", kind, err)
	}
	defer rows.Close()

	var refs []model.Reference
	for rows.Next() {
		var ref model.Reference
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", kind, err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// CreateArea creates an area under a location. The location must exist;
// the foreign key rejects orphan areas.
func CreateArea(ctx context.Context, db *sql.DB, name string, locationID int64) (*model.Area, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO areas (name, location_id) VALUES (?, ?)`,
		name, locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating area: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting area id: %w", err)
	}

	return GetArea(ctx, db, id)
}

// GetArea returns an area with its location name resolved, or nil if absent.
func GetArea(ctx context.Context, db *sql.DB, id int64) (*model.Area, error) {
	a := &model.Area{}
	err := db.QueryRowContext(ctx,
		`SELECT a.id, a.name, a.location_id, l.name
		 FROM areas a
		 JOIN locations l ON l.id = a.location_id
		 WHERE a.id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.LocationID, &a.LocationName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting area: %w", err)
	}
	return a, nil
}

// ListAreas returns every area with its location name resolved, sorted by
// location name then area name.
func ListAreas(ctx context.Context, db *sql.DB) ([]model.Area, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT a.id, a.name, a.location_id, l.name
		 FROM areas a
		 JOIN locations l ON l.id = a.location_id
		 ORDER BY l.name, a.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing areas: %w", err)
	}
	defer rows.Close()

	return scanAreas(rows)
}

// ListAreasByLocation returns the areas belonging to a location, sorted
// ascending by area name. A zero or negative locationID means no location
// is selected yet: the result is empty, not an error.
func ListAreasByLocation(ctx context.Context, db *sql.DB, locationID int64) ([]model.Area, error) {
	if locationID <= 0 {
		return nil, nil
	}

	rows, err := db.QueryContext(ctx,
		`SELECT a.id, a.name, a.location_id, l.name
		 FROM areas a
		 JOIN locations l ON l.id = a.location_id
		 WHERE a.location_id = ?
		 ORDER BY a.name`, locationID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing areas for location: %w", err)
	}
	defer rows.Close()

	return scanAreas(rows)
}

func scanAreas(rows *sql.Rows) ([]model.Area, error) {
	var areas []model.Area
	for rows.Next() {
		var a model.Area
		if err := rows.Scan(&a.ID, &a.Name, &a.LocationID, &a.LocationName); err != nil {
			return nil, fmt.Errorf("scanning area: %w", err)
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}
