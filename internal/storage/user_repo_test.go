package storage

import (
	"context"
	"errors"
	"testing"
)

func TestUserRepo_GetOrCreateByDeviceID(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.GetOrCreateByDeviceID(ctx, "device-abc")
	if err != nil {
		t.Fatalf("GetOrCreateByDeviceID() error = %v", err)
	}
	if created.ID == 0 {
		t.Error("GetOrCreateByDeviceID() returned zero ID")
	}
	if created.DeviceID != "device-abc" {
		t.Errorf("DeviceID = %q, want %q", created.DeviceID, "device-abc")
	}

	// Second call with the same device must return the same user.
	again, err := repo.GetOrCreateByDeviceID(ctx, "device-abc")
	if err != nil {
		t.Fatalf("GetOrCreateByDeviceID() second call error = %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("second call ID = %d, want %d", again.ID, created.ID)
	}

	other, err := repo.GetOrCreateByDeviceID(ctx, "device-xyz")
	if err != nil {
		t.Fatalf("GetOrCreateByDeviceID() error = %v", err)
	}
	if other.ID == created.ID {
		t.Error("different devices resolved to the same user")
	}
}

func TestUserRepo_GetByID(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	created, err := repo.GetOrCreateByDeviceID(ctx, "device-abc")
	if err != nil {
		t.Fatalf("GetOrCreateByDeviceID() error = %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.DeviceID != "device-abc" {
		t.Errorf("GetByID() DeviceID = %q, want %q", got.DeviceID, "device-abc")
	}

	_, err = repo.GetByID(ctx, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(9999) error = %v, want ErrNotFound", err)
	}
}
