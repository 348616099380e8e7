package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification channels and per-attempt outcomes.
const (
	ChannelEmail    = "email"
	ChannelOpsAlert = "ops-alert"

	OutcomeSent   = "sent"
	OutcomeFailed = "failed"
)

// NotificationAttempt is one row per delivery attempt, written immediately
// after the attempt resolves. Rows are append-only; retries produce new rows.
type NotificationAttempt struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID     uuid.UUID `gorm:"type:uuid;not null;index" json:"request_id"`
	Channel       string    `gorm:"not null;size:20" json:"channel"`
	Outcome       string    `gorm:"not null;size:10" json:"outcome"`
	AttemptNumber int       `gorm:"not null" json:"attempt_number"`
	Detail        string    `gorm:"size:500" json:"detail,omitempty"`
	SentAt        time.Time `json:"sent_at"`
}
