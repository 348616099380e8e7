package store

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttemptStore is the append-only audit log of notification delivery
// attempts. Rows are never updated or deleted by the dispatcher.
type AttemptStore struct {
	db *gorm.DB
}

func NewAttemptStore(db *gorm.DB) *AttemptStore {
	return &AttemptStore{db: db}
}

// Create appends one attempt row.
func (s *AttemptStore) Create(requestID uuid.UUID, channel, outcome string, attemptNumber int, detail string) error {
	attempt := models.NotificationAttempt{
		ID:            uuid.New(),
		RequestID:     requestID,
		Channel:       channel,
		Outcome:       outcome,
		AttemptNumber: attemptNumber,
		Detail:        detail,
		SentAt:        time.Now().UTC(),
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return fmt.Errorf("failed to record notification attempt: %w", err)
	}
	return nil
}

// ListByRequest returns all attempts for a request in the order they were
// made.
func (s *AttemptStore) ListByRequest(requestID uuid.UUID) ([]models.NotificationAttempt, error) {
	var attempts []models.NotificationAttempt
	err := s.db.
		Where("request_id = ?", requestID).
		Order("sent_at ASC, attempt_number ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
