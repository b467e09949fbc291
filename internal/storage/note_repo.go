package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks github.com/MinesMe/ainotea/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// NoteStore defines the interface for note storage operations.
// Every operation is scoped to the owning user.
type NoteStore interface {
	// Create inserts a new note and fills in its generated ID and timestamps.
	Create(ctx context.Context, note *Note) error
	// GetByID gets a note by ID. Returns ErrNotFound if it does not exist or
	// belongs to another user.
	GetByID(ctx context.Context, userID, noteID int64) (*Note, error)
	// ListByUser returns all notes of the user, newest first.
	ListByUser(ctx context.Context, userID int64) ([]Note, error)
	// ListByIDs returns the user's notes with the given IDs, preserving the
	// order of ids. IDs with no matching note are silently skipped.
	ListByIDs(ctx context.Context, userID int64, ids []int64) ([]Note, error)
	// AppendBlock appends a content block to a note and returns the updated note.
	AppendBlock(ctx context.Context, userID, noteID int64, block Block) (*Note, error)
	// MoveToFolder re-parents a note. A nil folderID detaches it.
	MoveToFolder(ctx context.Context, userID, noteID int64, folderID *int64) error
	// Delete deletes a note. Returns ErrNotFound if it does not exist or
	// belongs to another user.
	Delete(ctx context.Context, userID, noteID int64) error
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db *sql.DB
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db}
}

const noteColumns = "id, user_id, folder_id, title, type, content, source_uri, created_at, updated_at"

// Create inserts a new note and fills in its generated ID and timestamps.
func (r *NoteRepo) Create(ctx context.Context, note *Note) error {
	content, err := marshalBlocks(note.Content)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		"INSERT INTO notes (user_id, folder_id, title, type, content, source_uri) VALUES (?, ?, ?, ?, ?, ?)",
		note.UserID, note.FolderID, note.Title, string(note.Type), content, nullable(note.SourceURI),
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get note id: %w", err)
	}

	created, err := r.getByID(ctx, id)
	if err != nil {
		return err
	}
	*note = *created
	return nil
}

// GetByID gets a note by ID, scoped to the owning user.
func (r *NoteRepo) GetByID(ctx context.Context, userID, noteID int64) (*Note, error) {
	note, err := r.getByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, ErrNotFound
	}
	return note, nil
}

// ListByUser returns all notes of the user, newest first.
func (r *NoteRepo) ListByUser(ctx context.Context, userID int64) ([]Note, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id = ? ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanNotes(rows)
}

// ListByIDs returns the user's notes with the given IDs, preserving the order
// of ids. IDs with no matching note are silently skipped; search result
// hydration relies on this to drop notes deleted after they were indexed.
func (r *NoteRepo) ListByIDs(ctx context.Context, userID int64, ids []int64) ([]Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id = ? AND id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes by ids: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	notes, err := scanNotes(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]Note, len(notes))
	for _, note := range notes {
		byID[note.ID] = note
	}

	ordered := make([]Note, 0, len(ids))
	for _, id := range ids {
		if note, ok := byID[id]; ok {
			ordered = append(ordered, note)
		}
	}
	return ordered, nil
}

// AppendBlock appends a content block to a note and returns the updated note.
func (r *NoteRepo) AppendBlock(ctx context.Context, userID, noteID int64, block Block) (*Note, error) {
	note, err := r.GetByID(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	note.Content = append(note.Content, block)
	content, err := marshalBlocks(note.Content)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		"UPDATE notes SET content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?",
		content, noteID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update note content: %w", err)
	}

	return r.GetByID(ctx, userID, noteID)
}

// MoveToFolder re-parents a note. A nil folderID detaches it.
func (r *NoteRepo) MoveToFolder(ctx context.Context, userID, noteID int64, folderID *int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notes SET folder_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?",
		folderID, noteID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to move note: %w", err)
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

// Delete deletes a note owned by the user.
func (r *NoteRepo) Delete(ctx context.Context, userID, noteID int64) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM notes WHERE id = ? AND user_id = ?",
		noteID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
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

func (r *NoteRepo) getByID(ctx context.Context, noteID int64) (*Note, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id = ?",
		noteID,
	)
	note, err := scanNote(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}
	return note, nil
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	var notes []Note
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return notes, nil
}

func scanNote(scan func(...any) error) (*Note, error) {
	var note Note
	var noteType, content string
	var sourceURI sql.NullString
	var createdAt, updatedAt string

	err := scan(&note.ID, &note.UserID, &note.FolderID, &note.Title, &noteType,
		&content, &sourceURI, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	note.Type = NoteType(noteType)
	note.SourceURI = sourceURI.String
	if err := json.Unmarshal([]byte(content), &note.Content); err != nil {
		return nil, fmt.Errorf("failed to decode note content: %w", err)
	}
	note.CreatedAt, err = parseSQLiteTime(createdAt)
	if err != nil {
		return nil, err
	}
	note.UpdatedAt, err = parseSQLiteTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func marshalBlocks(blocks []Block) (string, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return "", fmt.Errorf("failed to encode note content: %w", err)
	}
	return string(data), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
