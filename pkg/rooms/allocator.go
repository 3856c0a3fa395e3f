package rooms

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrConflict means the room was not Available at the instant of the
	// claim attempt. Safe to retry with another room.
	ErrConflict = errors.New("room is not available")
	ErrNotFound = errors.New("room not found")
)

// Allocator owns the Available/Occupied transition for rooms. Admission,
// discharge and deletion all go through it rather than writing room status
// directly, so the occupancy invariant is enforced in one place.
type Allocator struct {
	db    *gorm.DB
	cache *Cache
}

func NewAllocator(db *gorm.DB, cache *Cache) *Allocator {
	return &Allocator{db: db, cache: cache}
}

// Claim atomically transitions a room from Available to Occupied. The
// single conditional UPDATE is the only guard against two concurrent
// admissions claiming the same room; there is no read-then-write window.
func (a *Allocator) Claim(ctx context.Context, roomID int64) error {
	return a.ClaimTx(ctx, a.db.WithContext(ctx), roomID)
}

// ClaimTx runs the claim inside the caller's transaction so a failed
// admission rolls the claim back together with the patient insert.
func (a *Allocator) ClaimTx(ctx context.Context, tx *gorm.DB, roomID int64) error {
	res := tx.Model(&Room{}).
		Where("room_id = ? AND status = ?", roomID, StatusAvailable).
		Update("status", StatusOccupied)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&Room{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		// Occupied or under maintenance
		return ErrConflict
	}

	a.cache.Invalidate(ctx)
	return nil
}

// Release transitions Occupied back to Available. Releasing a room that is
// already Available is a no-op success: discharge and deletion paths may
// race or be retried. A Maintenance room is left untouched.
func (a *Allocator) Release(ctx context.Context, roomID int64) error {
	return a.ReleaseTx(ctx, a.db.WithContext(ctx), roomID)
}

func (a *Allocator) ReleaseTx(ctx context.Context, tx *gorm.DB, roomID int64) error {
	res := tx.Model(&Room{}).
		Where("room_id = ? AND status = ?", roomID, StatusOccupied).
		Update("status", StatusAvailable)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&Room{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return nil
	}

	a.cache.Invalidate(ctx)
	return nil
}
