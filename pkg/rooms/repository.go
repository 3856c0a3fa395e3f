package rooms

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid room status")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Room{})
}

func (r *Repository) Create(ctx context.Context, room *Room) error {
	if room.Status == "" {
		room.Status = StatusAvailable
	}
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *Repository) Get(ctx context.Context, roomID int64) (*Room, error) {
	var room Room
	result := r.db.WithContext(ctx).First(&room, "room_id = ?", roomID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &room, result.Error
}

func (r *Repository) ListByStatus(ctx context.Context, status string) ([]Room, error) {
	var rooms []Room
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("room_id").
		Find(&rooms).Error
	return rooms, err
}

func (r *Repository) ListBooked(ctx context.Context) ([]BookedRoom, error) {
	var booked []BookedRoom
	err := r.db.WithContext(ctx).Raw(`
		SELECT r.room_id, r.room_type, r.cost_per_day, r.status,
		       p.patient_id, p.name AS patient_name
		FROM rooms r
		JOIN inpatients i ON i.room_id = r.room_id AND i.discharge_date IS NULL
		JOIN patients p ON p.patient_id = i.patient_id
		WHERE r.status = ?
		ORDER BY r.room_id`, StatusOccupied).
		Scan(&booked).Error
	return booked, err
}

// SetStatus moves a room in or out of maintenance. Occupied rooms cannot be
// touched here, and Occupied itself is only ever set through the Allocator.
func (r *Repository) SetStatus(ctx context.Context, roomID int64, status string) error {
	if status != StatusAvailable && status != StatusMaintenance {
		return ErrInvalidStatus
	}
	res := r.db.WithContext(ctx).Model(&Room{}).
		Where("room_id = ? AND status <> ?", roomID, StatusOccupied).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&Room{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

// ReleaseStale frees rooms left Occupied with no active inpatient, which
// can happen if the process dies between stamping a discharge date and
// releasing the room.
func (r *Repository) ReleaseStale(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE rooms SET status = ?
		WHERE status = ?
		  AND room_id NOT IN (SELECT room_id FROM inpatients WHERE discharge_date IS NULL)`,
		StatusAvailable, StatusOccupied)
	return res.RowsAffected, res.Error
}
