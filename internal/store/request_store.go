// Package store holds the durable record-keeping for moderation requests,
// classification results and notification attempts. All mutation goes
// through the atomic create/update operations below; callers hold no locks
// across store calls.
package store

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRequestNotFound = errors.New("moderation request not found")

type RequestStore struct {
	db *gorm.DB
}

func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{db: db}
}

// Create inserts a new request in pending status.
func (s *RequestStore) Create(userEmail, contentType, contentHash string) (*models.ModerationRequest, error) {
	req := models.ModerationRequest{
		ID:          uuid.New(),
		UserEmail:   userEmail,
		ContentType: contentType,
		ContentHash: contentHash,
		Status:      models.StatusPending,
	}
	if err := s.db.Create(&req).Error; err != nil {
		return nil, fmt.Errorf("failed to create moderation request: %w", err)
	}
	return &req, nil
}

// FindCompleted returns the most recent completed request for the
// (owner, fingerprint) pair. Pending and failed rows never match, so a
// previously failed classification is re-attempted on resubmission.
func (s *RequestStore) FindCompleted(userEmail, contentHash string) (*models.ModerationRequest, error) {
	var req models.ModerationRequest
	err := s.db.
		Where("user_email = ? AND content_hash = ? AND status = ?", userEmail, contentHash, models.StatusCompleted).
		Order("created_at DESC").
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Complete persists the result and flips the request to completed in a
// single transaction. A result row only ever exists for completed requests.
func (s *RequestStore) Complete(requestID uuid.UUID, result *models.ModerationResult) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if result.ID == uuid.Nil {
			result.ID = uuid.New()
		}
		result.RequestID = requestID
		if err := tx.Create(result).Error; err != nil {
			return fmt.Errorf("failed to create moderation result: %w", err)
		}

		res := tx.Model(&models.ModerationRequest{}).
			Where("id = ? AND status = ?", requestID, models.StatusPending).
			Update("status", models.StatusCompleted)
		if res.Error != nil {
			return fmt.Errorf("failed to complete request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotFound
		}
		return nil
	})
}

// Fail marks a pending request as terminally failed. No result row is
// written for failed requests.
func (s *RequestStore) Fail(requestID uuid.UUID) error {
	res := s.db.Model(&models.ModerationRequest{}).
		Where("id = ? AND status = ?", requestID, models.StatusPending).
		Update("status", models.StatusFailed)
	if res.Error != nil {
		return fmt.Errorf("failed to mark request failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// CountByOwner returns the total number of requests an owner has submitted.
func (s *RequestStore) CountByOwner(userEmail string) (int64, error) {
	var total int64
	err := s.db.Model(&models.ModerationRequest{}).
		Where("user_email = ?", userEmail).
		Count(&total).Error
	return total, err
}
