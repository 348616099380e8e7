package models

import (
	"time"

	"github.com/google/uuid"
)

// Content kinds accepted for moderation.
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)

// Request lifecycle states. Completed and failed are terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ModerationRequest records one moderation attempt for a piece of content.
// The composite index backs the (owner, fingerprint, status) dedup lookup.
type ModerationRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail   string    `gorm:"not null;size:254;index:idx_requests_dedup,priority:1" json:"user_email"`
	ContentType string    `gorm:"not null;size:10" json:"content_type"`
	ContentHash string    `gorm:"not null;size:64;index:idx_requests_dedup,priority:2" json:"content_hash"`
	Status      string    `gorm:"not null;default:'pending';size:20;index:idx_requests_dedup,priority:3" json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	Results       []ModerationResult    `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications []NotificationAttempt `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"-"`
}
