package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/dto"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/fingerprint"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/notify"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/store"
	"gorm.io/datatypes"
)

// ModerationService owns the request lifecycle: fingerprint, dedup,
// classify, persist, notify. Requests it creates are mutated only here.
type ModerationService struct {
	requests   *store.RequestStore
	results    *store.ResultStore
	gateway    classifier.Classifier
	dispatcher *notify.Dispatcher

	// Serializes the dedup check-then-create per (owner, fingerprint) so
	// concurrent duplicate submissions classify at most once.
	keys keyedMutex
}

func NewModerationService(requests *store.RequestStore, results *store.ResultStore, gateway classifier.Classifier, dispatcher *notify.Dispatcher) *ModerationService {
	return &ModerationService{
		requests:   requests,
		results:    results,
		gateway:    gateway,
		dispatcher: dispatcher,
	}
}

// ModerateText runs the full lifecycle for a text submission.
func (s *ModerationService) ModerateText(ctx context.Context, email, content string) (*dto.ModerationResponse, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateTextContent(content); err != nil {
		return nil, err
	}
	return s.moderate(ctx, email, models.ContentTypeText, content, fingerprint.Text(content))
}

// ModerateImage runs the full lifecycle for an image submission. The image
// is addressed by URL; the URL string is what gets fingerprinted and
// classified.
func (s *ModerationService) ModerateImage(ctx context.Context, email, imageURL string) (*dto.ModerationResponse, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateImageURL(imageURL); err != nil {
		return nil, err
	}
	return s.moderate(ctx, email, models.ContentTypeImage, imageURL, fingerprint.ImageURL(imageURL))
}

func (s *ModerationService) moderate(ctx context.Context, email, contentType, payload, hash string) (*dto.ModerationResponse, error) {
	unlock := s.keys.lock(email + ":" + hash)
	defer unlock()

	// Dedup: a prior completed classification for the same (owner, content)
	// is returned as-is, without touching the classifier again. Failed
	// requests never short-circuit.
	if prior, err := s.requests.FindCompleted(email, hash); err == nil {
		result, err := s.results.FindByRequest(prior.ID)
		if err == nil {
			slog.Info("moderation dedup hit", "request_id", prior.ID, "owner", email)
			return buildResponse(prior, result), nil
		}
		if !errors.Is(err, store.ErrResultNotFound) {
			return nil, apperr.Persistence("find result", err)
		}
	} else if !errors.Is(err, store.ErrRequestNotFound) {
		return nil, apperr.Persistence("dedup lookup", err)
	}

	// The pending row is written before classification so a record exists
	// even if the provider call dies with the process.
	req, err := s.requests.Create(email, contentType, hash)
	if err != nil {
		return nil, apperr.Persistence("create request", err)
	}

	// Exactly one classification attempt per request. Provider errors are
	// terminal for the request; there is no retry here, unlike dispatch.
	outcome, err := s.gateway.Classify(ctx, contentType, payload)
	if err != nil {
		if failErr := s.requests.Fail(req.ID); failErr != nil {
			slog.Error("failed to mark request failed", "request_id", req.ID, "error", failErr)
		}
		slog.Warn("classification failed", "request_id", req.ID, "error", err)
		return nil, apperr.Classification(err).WithDetail("request_id", req.ID.String())
	}

	result := &models.ModerationResult{
		Classification:   outcome.Label,
		Confidence:       outcome.Confidence,
		Reasoning:        outcome.Reasoning,
		ProviderResponse: datatypes.JSON(outcome.Raw),
	}
	if err := s.requests.Complete(req.ID, result); err != nil {
		return nil, apperr.Persistence("complete request", err)
	}
	req.Status = models.StatusCompleted

	if outcome.Label != models.LabelSafe {
		alert := notify.Alert{
			RequestID:      req.ID,
			UserEmail:      email,
			Classification: outcome.Label,
		}
		if outcome.Reasoning != nil {
			alert.Reasoning = *outcome.Reasoning
		}
		// Fire-and-forget: the response never waits on delivery.
		s.dispatcher.Dispatch(alert)
	}

	slog.Info("moderation completed",
		"request_id", req.ID, "owner", email, "classification", outcome.Label)
	return buildResponse(req, result), nil
}

func buildResponse(req *models.ModerationRequest, result *models.ModerationResult) *dto.ModerationResponse {
	return &dto.ModerationResponse{
		RequestID:        req.ID,
		Classification:   result.Classification,
		Confidence:       result.Confidence,
		Reasoning:        result.Reasoning,
		Status:           req.Status,
		ProviderResponse: []byte(result.ProviderResponse),
	}
}

// keyedMutex hands out one mutex per key, dropping entries once the last
// holder releases.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyedLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
