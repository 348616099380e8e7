package store

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrResultNotFound = errors.New("moderation result not found")

type ResultStore struct {
	db *gorm.DB
}

func NewResultStore(db *gorm.DB) *ResultStore {
	return &ResultStore{db: db}
}

// FindByRequest returns the result for a completed request.
func (s *ResultStore) FindByRequest(requestID uuid.UUID) (*models.ModerationResult, error) {
	var result models.ModerationResult
	if err := s.db.Where("request_id = ?", requestID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return &result, nil
}

// BreakdownByOwner counts an owner's results per classification label.
func (s *ResultStore) BreakdownByOwner(userEmail string) (map[string]int64, error) {
	type row struct {
		Classification string
		Count          int64
	}
	var rows []row
	err := s.db.Model(&models.ModerationResult{}).
		Select("moderation_results.classification, COUNT(moderation_results.id) AS count").
		Joins("JOIN moderation_requests ON moderation_requests.id = moderation_results.request_id").
		Where("moderation_requests.user_email = ?", userEmail).
		Group("moderation_results.classification").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int64, len(rows))
	for _, r := range rows {
		breakdown[r.Classification] = r.Count
	}
	return breakdown, nil
}
