package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_folder_store.go -package=mocks github.com/MinesMe/ainotea/internal/storage FolderStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ErrDuplicateFolder is returned when a user already has a folder with the name.
var ErrDuplicateFolder = fmt.Errorf("folder name already exists")

// FolderStore defines the interface for folder storage operations.
// Every operation is scoped to the owning user.
type FolderStore interface {
	// Create creates a folder for the user. Returns ErrDuplicateFolder when the
	// user already has a folder with that name.
	Create(ctx context.Context, userID int64, name string) (*Folder, error)
	// ListByUser returns all folders of the user ordered by name.
	ListByUser(ctx context.Context, userID int64) ([]Folder, error)
	// Rename renames a folder. Returns ErrNotFound if the folder does not exist
	// or belongs to another user.
	Rename(ctx context.Context, userID, folderID int64, name string) error
	// Delete deletes a folder. Notes in it are detached, not deleted.
	// Returns ErrNotFound if the folder does not exist or belongs to another user.
	Delete(ctx context.Context, userID, folderID int64) error
}

// FolderRepo provides methods for folder operations.
// It implements the FolderStore interface.
type FolderRepo struct {
	db *sql.DB
}

// NewFolderRepo creates a new FolderRepo.
func NewFolderRepo(db *sql.DB) *FolderRepo {
	return &FolderRepo{db: db}
}

// Create creates a folder for the user.
func (r *FolderRepo) Create(ctx context.Context, userID int64, name string) (*Folder, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO folders (user_id, name) VALUES (?, ?)",
		userID, name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateFolder
		}
		return nil, fmt.Errorf("failed to insert folder: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get folder id: %w", err)
	}

	var folder Folder
	var createdAt string
	err = r.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at FROM folders WHERE id = ?",
		id,
	).Scan(&folder.ID, &folder.UserID, &folder.Name, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to query created folder: %w", err)
	}
	folder.CreatedAt, err = parseSQLiteTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListByUser returns all folders of the user ordered by name.
func (r *FolderRepo) ListByUser(ctx context.Context, userID int64) ([]Folder, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM folders WHERE user_id = ? ORDER BY name",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query folders: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var folders []Folder
	for rows.Next() {
		var folder Folder
		var createdAt string
		if err := rows.Scan(&folder.ID, &folder.UserID, &folder.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folder.CreatedAt, err = parseSQLiteTime(createdAt)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return folders, nil
}

// Rename renames a folder owned by the user.
func (r *FolderRepo) Rename(ctx context.Context, userID, folderID int64, name string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE folders SET name = ? WHERE id = ? AND user_id = ?",
		name, folderID, userID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateFolder
		}
		return fmt.Errorf("failed to rename folder: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a folder owned by the user. Notes referencing it get a NULL
// folder_id via the schema's ON DELETE SET NULL.
func (r *FolderRepo) Delete(ctx context.Context, userID, folderID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM folders WHERE id = ? AND user_id = ?",
		folderID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
