package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mbenner/invtrack/internal/model"
)

// CreateUser creates a new user. Accounts start inactive unless active is set
// (the bootstrap admin is created active).
func CreateUser(ctx context.Context, db *sql.DB, username, passwordHash, firstName, lastName, email, role string, active bool) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, first_name, last_name, email, role, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		username, passwordHash, firstName, lastName, email, nullIfEmpty(role), active,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	return getUserWhere(ctx, db, "id = ?", id)
}

// GetUserByUsername returns a user by username.
func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (*model.User, error) {
	return getUserWhere(ctx, db, "username = ?", username)
}

// GetUserByEmail returns a user by email address.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	return getUserWhere(ctx, db, "email = ?", email)
}

func getUserWhere(ctx context.Context, db *sql.DB, where string, arg any) (*model.User, error) {
	u := &model.User{}
	var role sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, first_name, last_name, email, role, active, created_at
		 FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &role, &u.Active, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.Role = role.String
	return u, nil
}

// ListUsers returns all users.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, password_hash, first_name, last_name, email, role, active, created_at
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		var role sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Email, &role, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Role = role.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetUserActive activates or deactivates an account.
func SetUserActive(ctx context.Context, db *sql.DB, id int64, active bool) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET active = ? WHERE id = ?`, active, id,
	)
	if err != nil {
		return fmt.Errorf("updating user active flag: %w", err)
	}
	return nil
}

// UpdateUserRole updates a user's role. An empty role clears it.
func UpdateUserRole(ctx context.Context, db *sql.DB, id int64, role string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE id = ?`, nullIfEmpty(role), id,
	)
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}
	return nil
}

// UpdateUserProfile updates a user's name and email.
func UpdateUserProfile(ctx context.Context, db *sql.DB, id int64, firstName, lastName, email string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, email = ? WHERE id = ?`,
		firstName, lastName, email, id,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
