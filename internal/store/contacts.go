package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mbenner/invtrack/internal/model"
)

// CreateContact saves a contact-form submission.
func CreateContact(ctx context.Context, db *sql.DB, fullName, email, subject, message string) (*model.Contact, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO contacts (fullname, email, subject, message) VALUES (?, ?, ?, ?)`,
		fullName, email, subject, message,
	)
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting contact id: %w", err)
	}

	c := &model.Contact{}
	err = db.QueryRowContext(ctx,
		`SELECT id, fullname, email, subject, message, inserted_date
		 FROM contacts WHERE id = ?`, id,
	).Scan(&c.ID, &c.FullName, &c.Email, &c.Subject, &c.Message, &c.InsertedDate)
	if err != nil {
		return nil, fmt.Errorf("getting contact: %w", err)
	}
	return c, nil
}

// ListContacts returns saved submissions, newest first.
func ListContacts(ctx context.Context, db *sql.DB) ([]model.Contact, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, fullname, email, subject, message, inserted_date
		 FROM contacts ORDER BY inserted_date DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Subject, &c.Message, &c.InsertedDate); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
