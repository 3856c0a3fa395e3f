package audit

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is one recorded lifecycle event. EventID is unique so redelivered
// messages collapse into a single row.
type Entry struct {
	ID         int64          `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	EventID    string         `json:"event_id" gorm:"column:event_id;uniqueIndex"`
	EventType  string         `json:"event_type" gorm:"column:event_type"`
	Source     string         `json:"source" gorm:"column:source"`
	Data       datatypes.JSON `json:"data,omitempty" gorm:"column:data"`
	OccurredAt time.Time      `json:"occurred_at" gorm:"column:occurred_at"`
	RecordedAt time.Time      `json:"recorded_at" gorm:"column:recorded_at"`
}

func (Entry) TableName() string { return "audit_log" }
