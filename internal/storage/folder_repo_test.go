package storage

import (
	"context"
	"errors"
	"testing"
)

func testUser(t *testing.T, repo *UserRepo, deviceID string) *User {
	t.Helper()
	user, err := repo.GetOrCreateByDeviceID(context.Background(), deviceID)
	if err != nil {
		t.Fatalf("GetOrCreateByDeviceID() error = %v", err)
	}
	return user
}

func TestFolderRepo_Create(t *testing.T) {
	db := testDB(t)
	users := NewUserRepo(db)
	repo := NewFolderRepo(db)
	ctx := context.Background()

	user := testUser(t, users, "device-a")
	other := testUser(t, users, "device-b")

	folder, err := repo.Create(ctx, user.ID, "Work")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if folder.Name != "Work" || folder.UserID != user.ID {
		t.Errorf("Create() = %+v, want name Work owned by user %d", folder, user.ID)
	}

	// Same name for the same user is rejected.
	_, err = repo.Create(ctx, user.ID, "Work")
	if !errors.Is(err, ErrDuplicateFolder) {
		t.Errorf("duplicate Create() error = %v, want ErrDuplicateFolder", err)
	}

	// Same name for another user is fine.
	if _, err := repo.Create(ctx, other.ID, "Work"); err != nil {
		t.Errorf("Create() for other user error = %v", err)
	}
}

func TestFolderRepo_ListByUser(t *testing.T) {
	db := testDB(t)
	users := NewUserRepo(db)
	repo := NewFolderRepo(db)
	ctx := context.Background()

	user := testUser(t, users, "device-a")
	other := testUser(t, users, "device-b")

	for _, name := range []string{"Zebra", "Alpha", "Middle"} {
		if _, err := repo.Create(ctx, user.ID, name); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}
	if _, err := repo.Create(ctx, other.ID, "Hidden"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	folders, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(folders) != 3 {
		t.Fatalf("ListByUser() returned %d folders, want 3", len(folders))
	}
	want := []string{"Alpha", "Middle", "Zebra"}
	for i, name := range want {
		if folders[i].Name != name {
			t.Errorf("folder %d = %q, want %q", i, folders[i].Name, name)
		}
	}
}

func TestFolderRepo_Rename(t *testing.T) {
	db := testDB(t)
	users := NewUserRepo(db)
	repo := NewFolderRepo(db)
	ctx := context.Background()

	user := testUser(t, users, "device-a")
	other := testUser(t, users, "device-b")

	folder, err := repo.Create(ctx, user.ID, "Old")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Rename(ctx, user.ID, folder.ID, "New"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	folders, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(folders) != 1 || folders[0].Name != "New" {
		t.Errorf("after rename folders = %+v, want single folder named New", folders)
	}

	// Another user cannot rename it.
	if err := repo.Rename(ctx, other.ID, folder.ID, "Stolen"); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-user Rename() error = %v, want ErrNotFound", err)
	}

	if err := repo.Rename(ctx, user.ID, 9999, "Ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Rename(9999) error = %v, want ErrNotFound", err)
	}
}

func TestFolderRepo_Delete_DetachesNotes(t *testing.T) {
	db := testDB(t)
	users := NewUserRepo(db)
	folders := NewFolderRepo(db)
	notes := NewNoteRepo(db)
	ctx := context.Background()

	user := testUser(t, users, "device-a")
	folder, err := folders.Create(ctx, user.ID, "Work")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	note := &Note{
		UserID:   user.ID,
		FolderID: &folder.ID,
		Title:    "In folder",
		Type:     NoteTypeText,
	}
	if err := notes.Create(ctx, note); err != nil {
		t.Fatalf("Create() note error = %v", err)
	}

	if err := folders.Delete(ctx, user.ID, folder.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// The note survives, detached from the deleted folder.
	got, err := notes.GetByID(ctx, user.ID, note.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.FolderID != nil {
		t.Errorf("note FolderID = %v, want nil after folder delete", *got.FolderID)
	}

	if err := folders.Delete(ctx, user.ID, folder.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
