// Package export flattens the inventory into a streamed CSV file.
package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Columns is the export header. The column set has shifted between revisions
// of the report (an older one also carried Asset ID, Purchased From and a
// separate Area column), so it is configuration paired with the row query
// below rather than a fixed contract.
var Columns = []string{
	"ID",
	"Status",
	"Item",
	"Description",
	"Model #",
	"Serial #",
	"Qty",
	"Total Cost",
	"Assigned To",
	"Approval Date",
	"Purchase Date",
	"Inserted By Last Name",
	"Inserted By First Name",
	"Inserted Date",
	"Modified By",
	"Modified Date",
	"Approved By",
	"Location",
	"Mfg",
}

// rowQuery resolves every reference to its name except assigned_to, which is
// exported as the raw value the record holds. That mismatch is inherited
// from the report this replaces and is kept until product says otherwise.
const rowQuery = `
	SELECT i.id, s.name, i.name, i.description, i.model_no, i.serial_no,
	       i.qty, i.total_cost, i.assigned_to, i.approved_date, i.purchase_date,
	       u.last_name, u.first_name, i.inserted_date, i.modified_by,
	       i.modified_date, ap.name, l.name, m.name
	FROM items i
	JOIN statuses s      ON s.id = i.status_id
	JOIN users u         ON u.id = i.inserted_by
	JOIN approvers ap    ON ap.id = i.approved_by
	JOIN locations l     ON l.id = i.location_id
	JOIN manufacturers m ON m.id = i.manufacturer_id
	ORDER BY i.id`

const timeLayout = "2006-01-02 15:04:05"

// WriteCSV streams the full inventory to w: one header row, then one row per
// item in store order. Each row is flushed as it is produced, so the export
// never buffers the whole file; any failure mid-stream aborts the export
// with an error rather than emitting a truncated file silently.
func WriteCSV(ctx context.Context, db *sql.DB, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing export header: %w", err)
	}

	rows, err := db.QueryContext(ctx, rowQuery)
	if err != nil {
		return fmt.Errorf("querying export rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("export cancelled: %w", err)
		}

		record, err := scanRecord(rows)
		if err != nil {
			return fmt.Errorf("export aborted: %w", err)
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("flushing export row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("export aborted: %w", err)
	}
	return nil
}

func scanRecord(rows *sql.Rows) ([]string, error) {
	var (
		id                            int64
		status, name, description     string
		modelNo                       string
		serialNo, totalCost           sql.NullString
		qty                           int64
		assignedTo                    sql.NullInt64
		approvedDate, purchaseDate    string
		lastName, firstName           string
		insertedDate                  time.Time
		modifiedBy                    sql.NullString
		modifiedDate                  sql.NullTime
		approver, location, mfg       string
	)

	err := rows.Scan(&id, &status, &name, &description, &modelNo, &serialNo,
		&qty, &totalCost, &assignedTo, &approvedDate, &purchaseDate,
		&lastName, &firstName, &insertedDate, &modifiedBy, &modifiedDate,
		&approver, &location, &mfg)
	if err != nil {
		return nil, err
	}

	return []string{
		strconv.FormatInt(id, 10),
		status,
		name,
		description,
		modelNo,
		serialNo.String,
		strconv.FormatInt(qty, 10),
		totalCost.String,
		nullableInt(assignedTo),
		approvedDate,
		purchaseDate,
		lastName,
		firstName,
		insertedDate.UTC().Format(timeLayout),
		modifiedBy.String,
		nullableTime(modifiedDate),
		approver,
		location,
		mfg,
	}, nil
}

func nullableInt(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

func nullableTime(v sql.NullTime) string {
	if !v.Valid {
		return ""
	}
	return v.Time.UTC().Format(timeLayout)
}
