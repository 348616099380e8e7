package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/notify"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubClassifier struct {
	calls   atomic.Int64
	label   string
	err     error
	latency time.Duration
}

func (s *stubClassifier) Classify(context.Context, string, string) (*classifier.Outcome, error) {
	s.calls.Add(1)
	if s.latency > 0 {
		time.Sleep(s.latency)
	}
	if s.err != nil {
		return nil, s.err
	}
	confidence := 0.95
	reasoning := "stubbed verdict"
	return &classifier.Outcome{
		Label:      s.label,
		Confidence: &confidence,
		Reasoning:  &reasoning,
		Raw:        []byte(`{"mock":true}`),
	}, nil
}

type harness struct {
	db         *gorm.DB
	requests   *store.RequestStore
	results    *store.ResultStore
	attempts   *store.AttemptStore
	stub       *stubClassifier
	dispatcher *notify.Dispatcher
	svc        *ModerationService
}

func newHarness(t *testing.T, stub *stubClassifier, channels ...notify.Channel) *harness {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.ModerationRequest{},
		&models.ModerationResult{},
		&models.NotificationAttempt{},
	))

	h := &harness{
		db:       db,
		requests: store.NewRequestStore(db),
		results:  store.NewResultStore(db),
		attempts: store.NewAttemptStore(db),
		stub:     stub,
	}
	h.dispatcher = notify.NewDispatcher(h.attempts, time.Millisecond, time.Second, channels...)
	h.svc = NewModerationService(h.requests, h.results, stub, h.dispatcher)
	return h
}

func (h *harness) requestRows(t *testing.T) []models.ModerationRequest {
	t.Helper()
	var rows []models.ModerationRequest
	require.NoError(t, h.db.Order("created_at ASC").Find(&rows).Error)
	return rows
}

func TestModerateTextSafePath(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t, &stubClassifier{label: models.LabelSafe})

	resp, err := h.svc.ModerateText(context.Background(), "a@example.com", "Hello world")
	require.NoError(t, err)
	assert.Equal(models.StatusCompleted, resp.Status)
	assert.Equal(models.LabelSafe, resp.Classification)
	require.NotNil(t, resp.Confidence)
	assert.GreaterOrEqual(*resp.Confidence, 0.9)

	rows := h.requestRows(t)
	require.Len(t, rows, 1)
	assert.Equal(models.StatusCompleted, rows[0].Status)

	// safe content never reaches the dispatcher
	require.True(t, h.dispatcher.Wait(time.Second))
	attempts, err := h.attempts.ListByRequest(resp.RequestID)
	require.NoError(t, err)
	assert.Empty(attempts)
}

func TestModerateTextFlaggedNotifies(t *testing.T) {
	assert := assert.New(t)
	email := notify.NewNoopChannel(models.ChannelEmail)
	ops := notify.NewNoopChannel(models.ChannelOpsAlert)
	h := newHarness(t, &stubClassifier{label: models.LabelToxic}, email, ops)

	resp, err := h.svc.ModerateText(context.Background(), "a@example.com", "You are an idiot")
	require.NoError(t, err)
	assert.Equal(models.StatusCompleted, resp.Status)
	assert.Equal(models.LabelToxic, resp.Classification)

	require.True(t, h.dispatcher.Wait(5*time.Second))
	attempts, err := h.attempts.ListByRequest(resp.RequestID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	channels := map[string]string{}
	for _, a := range attempts {
		channels[a.Channel] = a.Outcome
	}
	assert.Equal(models.OutcomeSent, channels[models.ChannelEmail])
	assert.Equal(models.OutcomeSent, channels[models.ChannelOpsAlert])
}

func TestModerateTextIdempotent(t *testing.T) {
	assert := assert.New(t)
	stub := &stubClassifier{label: models.LabelSafe}
	h := newHarness(t, stub)
	ctx := context.Background()

	first, err := h.svc.ModerateText(ctx, "a@example.com", "Hello world")
	require.NoError(t, err)
	second, err := h.svc.ModerateText(ctx, "a@example.com", "Hello world")
	require.NoError(t, err)

	assert.Equal(first.RequestID, second.RequestID)
	assert.Equal(first.Classification, second.Classification)
	assert.Equal(int64(1), stub.calls.Load())

	// same content, different owner classifies independently
	_, err = h.svc.ModerateText(ctx, "b@example.com", "Hello world")
	require.NoError(t, err)
	assert.Equal(int64(2), stub.calls.Load())
}

func TestModerateTextClassificationFailure(t *testing.T) {
	assert := assert.New(t)
	stub := &stubClassifier{err: errors.New("provider exploded")}
	h := newHarness(t, stub)
	ctx := context.Background()

	_, err := h.svc.ModerateText(ctx, "a@example.com", "Hello world")
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(apperr.KindClassification, appErr.Kind)

	rows := h.requestRows(t)
	require.Len(t, rows, 1)
	assert.Equal(models.StatusFailed, rows[0].Status)

	var resultCount int64
	require.NoError(t, h.db.Model(&models.ModerationResult{}).Count(&resultCount).Error)
	assert.Zero(resultCount)

	// failed rows are not dedup hits: resubmission classifies again
	stub.err = nil
	stub.label = models.LabelSafe
	resp, err := h.svc.ModerateText(ctx, "a@example.com", "Hello world")
	require.NoError(t, err)
	assert.Equal(models.StatusCompleted, resp.Status)
	assert.Equal(int64(2), stub.calls.Load())
}

func TestModerateTextConcurrentDuplicates(t *testing.T) {
	stub := &stubClassifier{label: models.LabelSafe, latency: 20 * time.Millisecond}
	h := newHarness(t, stub)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.ModerateText(context.Background(), "a@example.com", "Hello world")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), stub.calls.Load())
	assert.Len(t, h.requestRows(t), 1)
}

func TestModerateTextValidation(t *testing.T) {
	h := newHarness(t, &stubClassifier{label: models.LabelSafe})
	ctx := context.Background()

	cases := []struct {
		name    string
		email   string
		content string
		kind    apperr.Kind
	}{
		{"bad email", "not-an-email", "Hello", apperr.KindValidation},
		{"empty content", "a@example.com", "   ", apperr.KindValidation},
		{"oversize content", "a@example.com", string(make([]byte, maxContentLength+1)), apperr.KindContentTooLarge},
		{"script injection", "a@example.com", "<script>alert(1)</script>", apperr.KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.svc.ModerateText(ctx, tc.email, tc.content)
			require.Error(t, err)
			appErr, ok := apperr.As(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, appErr.Kind)
		})
	}

	// nothing was persisted or classified
	assert.Empty(t, h.requestRows(t))
	assert.Zero(t, h.stub.calls.Load())
}

func TestModerateImage(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t, &stubClassifier{label: models.LabelSafe})
	ctx := context.Background()

	resp, err := h.svc.ModerateImage(ctx, "a@example.com", "https://example.com/cat.png")
	require.NoError(t, err)
	assert.Equal(models.StatusCompleted, resp.Status)

	_, err = h.svc.ModerateImage(ctx, "a@example.com", "https://example.com/cat.pdf")
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(apperr.KindValidation, appErr.Kind)
}

func TestAnalyticsSummary(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t, &stubClassifier{label: models.LabelToxic}, notify.NewNoopChannel(models.ChannelEmail))
	ctx := context.Background()

	_, err := h.svc.ModerateText(ctx, "a@example.com", "You are an idiot")
	require.NoError(t, err)
	h.stub.label = models.LabelSafe
	_, err = h.svc.ModerateText(ctx, "a@example.com", "Hello world")
	require.NoError(t, err)
	_, err = h.svc.ModerateText(ctx, "someone-else@example.com", "Other content")
	require.NoError(t, err)

	analytics := NewAnalyticsService(h.requests, h.results)
	summary, err := analytics.UserSummary("a@example.com")
	require.NoError(t, err)
	assert.Equal(int64(2), summary.TotalRequests)
	assert.Equal(int64(1), summary.Breakdown[models.LabelToxic])
	assert.Equal(int64(1), summary.Breakdown[models.LabelSafe])

	require.True(t, h.dispatcher.Wait(5*time.Second))
}
