package storage

import "time"

// User represents an account registered by device identifier.
type User struct {
	ID        int64
	DeviceID  string
	CreatedAt time.Time
}

// Folder groups notes for one user. Folder names are unique per user.
type Folder struct {
	ID        int64
	UserID    int64
	Name      string
	CreatedAt time.Time
}

// NoteType identifies the source a note was created from.
type NoteType string

const (
	NoteTypeText  NoteType = "text"
	NoteTypePhoto NoteType = "photo"
	NoteTypeAudio NoteType = "audio"
	NoteTypeLink  NoteType = "link"
)

// Valid reports whether t is one of the known note types.
func (t NoteType) Valid() bool {
	switch t {
	case NoteTypeText, NoteTypePhoto, NoteTypeAudio, NoteTypeLink:
		return true
	}
	return false
}

// Block is one unit of note content. Notes hold an ordered sequence of blocks;
// the note's full text is the concatenation of its blocks' text.
type Block struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Note represents a note row. Content is stored as a JSON array of blocks.
type Note struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FolderID  *int64    `json:"folder_id,omitempty"`
	Title     string    `json:"title"`
	Type      NoteType  `json:"type"`
	Content   []Block   `json:"content"`
	SourceURI string    `json:"source_uri,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
