package rooms

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rooms.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&Room{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createRoom(t *testing.T, db *gorm.DB, status string) int64 {
	t.Helper()
	room := &Room{RoomType: "General", Status: status, CostPerDay: 200}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return room.RoomID
}

func roomStatus(t *testing.T, db *gorm.DB, roomID int64) string {
	t.Helper()
	var room Room
	if err := db.First(&room, "room_id = ?", roomID).Error; err != nil {
		t.Fatalf("failed to load room: %v", err)
	}
	return room.Status
}

func TestClaimTransitionsAvailableToOccupied(t *testing.T) {
	db := openTestDB(t)
	alloc := NewAllocator(db, nil)
	roomID := createRoom(t, db, StatusAvailable)

	if err := alloc.Claim(context.Background(), roomID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := roomStatus(t, db, roomID); got != StatusOccupied {
		t.Fatalf("expected room Occupied, got %s", got)
	}
}

func TestClaimRejectsOccupiedRoom(t *testing.T) {
	db := openTestDB(t)
	alloc := NewAllocator(db, nil)
	roomID := createRoom(t, db, StatusAvailable)

	if err := alloc.Claim(context.Background(), roomID); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if err := alloc.Claim(context.Background(), roomID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on second claim, got %v", err)
	}
	if got := roomStatus(t, db, roomID); got != StatusOccupied {
		t.Fatalf("expected room to stay Occupied, got %s", got)
	}
}

func TestClaimRejectsMaintenanceRoom(t *testing.T) {
	db := openTestDB(t)
	alloc := NewAllocator(db, nil)
	roomID := createRoom(t, db, StatusMaintenance)

	if err := alloc.Claim(context.Background(), roomID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for maintenance room, got %v", err)
	}
	if got := roomStatus(t, db, roomID); got != StatusMaintenance {
		t.Fatalf("expected room to stay in Maintenance, got %s", got)
	}
}

func TestClaimUnknownRoom(t *testing.T) {
	db := openTestDB(t)
	alloc := NewAllocator(db, nil)

	if err := alloc.Claim(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	alloc := NewAllocator(db, nil)
	roomID := createRoom(t, db, StatusOccupied)

	if err := alloc.Release(context.Background(), roomID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := roomStatus(t, db, roomID); got != StatusAvailable {
		t.Fatalf("expected room Available, got %s", got)
	}

	// Releasing an already-Available room is a no-op success.
	if err := alloc.Release(context.Background(), roomID); err != nil {
		t.Fatalf("expected repeated release to succeed, got %v", err)
	}

	if err := alloc.Release(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown room, got %v", err)
	}
}

func TestReleaseLeavesMaintenanceUntouched(t *testing.T) {
	db := openTestDB(t)
	alloc := NewAllocator(db, nil)
	roomID := createRoom(t, db, StatusMaintenance)

	if err := alloc.Release(context.Background(), roomID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := roomStatus(t, db, roomID); got != StatusMaintenance {
		t.Fatalf("expected room to stay in Maintenance, got %s", got)
	}
}

func TestReleaseStaleFreesOrphanedRooms(t *testing.T) {
	db := openTestDB(t)
	if err := db.Exec(`CREATE TABLE inpatients (
		patient_id INTEGER PRIMARY KEY,
		room_id INTEGER,
		doctor_id INTEGER,
		admission_date DATETIME,
		discharge_date DATETIME)`).Error; err != nil {
		t.Fatalf("failed to create inpatients table: %v", err)
	}

	repo := NewRepository(db)
	staleRoom := createRoom(t, db, StatusOccupied)
	heldRoom := createRoom(t, db, StatusOccupied)
	if err := db.Exec(
		"INSERT INTO inpatients (patient_id, room_id, doctor_id) VALUES (?, ?, ?)",
		1, heldRoom, 1).Error; err != nil {
		t.Fatalf("failed to seed inpatient: %v", err)
	}

	released, err := repo.ReleaseStale(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if released != 1 {
		t.Fatalf("expected 1 released room, got %d", released)
	}
	if got := roomStatus(t, db, staleRoom); got != StatusAvailable {
		t.Fatalf("expected stale room Available, got %s", got)
	}
	if got := roomStatus(t, db, heldRoom); got != StatusOccupied {
		t.Fatalf("expected held room to stay Occupied, got %s", got)
	}
}
