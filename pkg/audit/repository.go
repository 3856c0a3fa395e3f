package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/caremesh/hospital/pkg/common/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Entry{})
}

// HandleEvent satisfies the consumer's handler signature and records one
// event per unique event ID.
func (r *Repository) HandleEvent(ctx context.Context, event models.Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("encoding event data: %w", err)
	}

	entry := &Entry{
		EventID:    event.ID,
		EventType:  event.Type,
		Source:     event.Source,
		Data:       data,
		OccurredAt: event.Timestamp,
		RecordedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry).Error
}

func (r *Repository) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []Entry
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
