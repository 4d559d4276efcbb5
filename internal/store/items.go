package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mbenner/invtrack/internal/model"
)

// itemSelect is the joined item view. Every reference is resolved to its
// name; the assignee join is LEFT because items may be unassigned.
const itemSelect = `
	SELECT i.id, i.name, i.description,
	       i.status_id, i.location_id, i.area_id, i.manufacturer_id,
	       i.model_no, i.serial_no, i.qty, i.total_cost,
	       i.assigned_to, i.approved_by, i.approved_date, i.purchase_date,
	       i.inserted_by, i.inserted_date, i.modified_by, i.modified_date,
	       s.name, l.name, a.name, m.name, asg.name, ap.name,
	       u.first_name, u.last_name
	FROM items i
	JOIN statuses s      ON s.id = i.status_id
	JOIN locations l     ON l.id = i.location_id
	JOIN areas a         ON a.id = i.area_id
	JOIN manufacturers m ON m.id = i.manufacturer_id
	LEFT JOIN assignees asg ON asg.id = i.assigned_to
	JOIN approvers ap    ON ap.id = i.approved_by
	JOIN users u         ON u.id = i.inserted_by`

// CreateItem inserts a new inventory item and returns the stored record.
func CreateItem(ctx context.Context, db *sql.DB, item *model.Item) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (name, description, status_id, location_id, area_id,
		                    manufacturer_id, model_no, serial_no, qty, total_cost,
		                    assigned_to, approved_by, approved_date, purchase_date,
		                    inserted_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Name, item.Description, item.StatusID, item.LocationID, item.AreaID,
		item.ManufacturerID, item.ModelNo, item.SerialNo, item.Qty, costString(item.TotalCost),
		item.AssigneeID, item.ApproverID, item.ApprovedDate, item.PurchaseDate,
		item.InsertedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID with its references resolved, or nil if absent.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx, itemSelect+` WHERE i.id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns every item with its references resolved, in the store's
// natural (insertion) order.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx, itemSelect+` ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem overwrites an item's fields and stamps the modifier.
func UpdateItem(ctx context.Context, db *sql.DB, item *model.Item, modifiedBy string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, status_id = ?, location_id = ?,
		                  area_id = ?, manufacturer_id = ?, model_no = ?, serial_no = ?,
		                  qty = ?, total_cost = ?, assigned_to = ?, approved_by = ?,
		                  approved_date = ?, purchase_date = ?,
		                  modified_by = ?, modified_date = ?
		 WHERE id = ?`,
		item.Name, item.Description, item.StatusID, item.LocationID,
		item.AreaID, item.ManufacturerID, item.ModelNo, item.SerialNo,
		item.Qty, costString(item.TotalCost), item.AssigneeID, item.ApproverID,
		item.ApprovedDate, item.PurchaseDate,
		modifiedBy, time.Now().UTC(),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	return nil
}

// ItemCost is the projection the summary view aggregates over.
type ItemCost struct {
	LocationName string
	Qty          int
	TotalCost    decimal.Decimal
}

// ListItemCosts returns the location name, quantity and cost of every item.
// A NULL cost reads as zero.
func ListItemCosts(ctx context.Context, db *sql.DB) ([]ItemCost, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT l.name, i.qty, i.total_cost
		 FROM items i
		 JOIN locations l ON l.id = i.location_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing item costs: %w", err)
	}
	defer rows.Close()

	var costs []ItemCost
	for rows.Next() {
		var c ItemCost
		var cost sql.NullString
		if err := rows.Scan(&c.LocationName, &c.Qty, &cost); err != nil {
			return nil, fmt.Errorf("scanning item cost: %w", err)
		}
		if cost.Valid {
			d, err := decimal.NewFromString(cost.String)
			if err != nil {
				return nil, fmt.Errorf("parsing item cost %q: %w", cost.String, err)
			}
			c.TotalCost = d
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

// CreateNote attaches a comment to an item.
func CreateNote(ctx context.Context, db *sql.DB, itemID int64, comment, insertedBy string) (*model.Note, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO item_notes (item_id, comment, inserted_by) VALUES (?, ?, ?)`,
		itemID, comment, insertedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting note id: %w", err)
	}

	n := &model.Note{}
	err = db.QueryRowContext(ctx,
		`SELECT id, item_id, comment, inserted_by, inserted_date
		 FROM item_notes WHERE id = ?`, id,
	).Scan(&n.ID, &n.ItemID, &n.Comment, &n.InsertedBy, &n.InsertedDate)
	if err != nil {
		return nil, fmt.Errorf("getting note: %w", err)
	}
	return n, nil
}

// ListNotes returns an item's notes, newest first.
func ListNotes(ctx context.Context, db *sql.DB, itemID int64) ([]model.Note, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, comment, inserted_by, inserted_date
		 FROM item_notes WHERE item_id = ?
		 ORDER BY inserted_date DESC, id DESC`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.ItemID, &n.Comment, &n.InsertedBy, &n.InsertedDate); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanItem(row scannable) (*model.Item, error) {
	item := &model.Item{}
	var serialNo, costStr, modifiedBy sql.NullString
	var assigneeID sql.NullInt64
	var assigneeName sql.NullString
	var modifiedDate sql.NullTime

	err := row.Scan(
		&item.ID, &item.Name, &item.Description,
		&item.StatusID, &item.LocationID, &item.AreaID, &item.ManufacturerID,
		&item.ModelNo, &serialNo, &item.Qty, &costStr,
		&assigneeID, &item.ApproverID, &item.ApprovedDate, &item.PurchaseDate,
		&item.InsertedBy, &item.InsertedDate, &modifiedBy, &modifiedDate,
		&item.StatusName, &item.LocationName, &item.AreaName, &item.ManufacturerName,
		&assigneeName, &item.ApproverName,
		&item.InsertedByFirstName, &item.InsertedByLastName,
	)
	if err != nil {
		return nil, err
	}

	if serialNo.Valid {
		item.SerialNo = &serialNo.String
	}
	if costStr.Valid {
		d, err := decimal.NewFromString(costStr.String)
		if err != nil {
			return nil, fmt.Errorf("parsing item cost %q: %w", costStr.String, err)
		}
		item.TotalCost = &d
	}
	if assigneeID.Valid {
		item.AssigneeID = &assigneeID.Int64
	}
	if assigneeName.Valid {
		item.AssigneeName = &assigneeName.String
	}
	if modifiedBy.Valid {
		item.ModifiedBy = &modifiedBy.String
	}
	if modifiedDate.Valid {
		item.ModifiedDate = &modifiedDate.Time
	}
	return item, nil
}

// costString renders a cost as the canonical two-decimal form stored in the
// database, or NULL when absent.
func costString(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.StringFixed(2)
}
