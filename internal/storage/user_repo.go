package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_user_store.go -package=mocks github.com/MinesMe/ainotea/internal/storage UserStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// UserStore defines the interface for user storage operations.
type UserStore interface {
	// GetOrCreateByDeviceID returns the user registered under the device ID,
	// creating it on first contact.
	GetOrCreateByDeviceID(ctx context.Context, deviceID string) (*User, error)
	// GetByID gets a user by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id int64) (*User, error)
}

// UserRepo provides methods for user operations.
// It implements the UserStore interface.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetOrCreateByDeviceID returns the user registered under the device ID,
// creating it on first contact.
func (r *UserRepo) GetOrCreateByDeviceID(ctx context.Context, deviceID string) (*User, error) {
	user, err := r.getByDeviceID(ctx, deviceID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// Upsert so concurrent first-contact registrations for the same device
	// resolve to a single row.
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (device_id) VALUES (?) ON CONFLICT (device_id) DO NOTHING",
		deviceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return r.getByDeviceID(ctx, deviceID)
}

// GetByID gets a user by ID. Returns ErrNotFound if not found.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	var user User
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, device_id, created_at FROM users WHERE id = ?",
		id,
	).Scan(&user.ID, &user.DeviceID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.CreatedAt, err = parseSQLiteTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) getByDeviceID(ctx context.Context, deviceID string) (*User, error) {
	var user User
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, device_id, created_at FROM users WHERE device_id = ?",
		deviceID,
	).Scan(&user.ID, &user.DeviceID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.CreatedAt, err = parseSQLiteTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
