package services

import (
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/store"
)

// AnalyticsService summarizes moderation activity per owner.
type AnalyticsService struct {
	requests *store.RequestStore
	results  *store.ResultStore
}

func NewAnalyticsService(requests *store.RequestStore, results *store.ResultStore) *AnalyticsService {
	return &AnalyticsService{requests: requests, results: results}
}

func (s *AnalyticsService) UserSummary(email string) (*dto.AnalyticsSummary, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	total, err := s.requests.CountByOwner(email)
	if err != nil {
		return nil, apperr.Persistence("count requests", err)
	}
	breakdown, err := s.results.BreakdownByOwner(email)
	if err != nil {
		return nil, apperr.Persistence("classification breakdown", err)
	}

	return &dto.AnalyticsSummary{
		User:          email,
		TotalRequests: total,
		Breakdown:     breakdown,
	}, nil
}
