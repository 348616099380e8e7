package store

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestRequestLifecycle(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	requests := NewRequestStore(db)
	results := NewResultStore(db)

	req, err := requests.Create("a@example.com", models.ContentTypeText, "deadbeef")
	require.NoError(t, err)
	assert.Equal(models.StatusPending, req.Status)

	// pending rows are not dedup hits
	_, err = requests.FindCompleted("a@example.com", "deadbeef")
	assert.ErrorIs(err, ErrRequestNotFound)

	confidence := 0.9
	require.NoError(t, requests.Complete(req.ID, &models.ModerationResult{
		Classification: models.LabelSafe,
		Confidence:     &confidence,
	}))

	found, err := requests.FindCompleted("a@example.com", "deadbeef")
	require.NoError(t, err)
	assert.Equal(req.ID, found.ID)

	result, err := results.FindByRequest(req.ID)
	require.NoError(t, err)
	assert.Equal(models.LabelSafe, result.Classification)

	// terminal states reject further transitions
	assert.ErrorIs(requests.Fail(req.ID), ErrRequestNotFound)
}

func TestFailedRequestsNeverMatchDedup(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestStore(db)

	req, err := requests.Create("a@example.com", models.ContentTypeText, "deadbeef")
	require.NoError(t, err)
	require.NoError(t, requests.Fail(req.ID))

	_, err = requests.FindCompleted("a@example.com", "deadbeef")
	assert.ErrorIs(t, err, ErrRequestNotFound)

	var resultCount int64
	require.NoError(t, db.Model(&models.ModerationResult{}).Count(&resultCount).Error)
	assert.Zero(t, resultCount)
}

func TestCompleteRequiresPendingRow(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestStore(db)

	req, err := requests.Create("a@example.com", models.ContentTypeText, "deadbeef")
	require.NoError(t, err)
	require.NoError(t, requests.Fail(req.ID))

	// completing a failed request rolls the whole transaction back
	err = requests.Complete(req.ID, &models.ModerationResult{Classification: models.LabelSafe})
	assert.ErrorIs(t, err, ErrRequestNotFound)

	var resultCount int64
	require.NoError(t, db.Model(&models.ModerationResult{}).Count(&resultCount).Error)
	assert.Zero(t, resultCount)
}

func TestDedupScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	requests := NewRequestStore(db)

	req, err := requests.Create("a@example.com", models.ContentTypeText, "deadbeef")
	require.NoError(t, err)
	require.NoError(t, requests.Complete(req.ID, &models.ModerationResult{Classification: models.LabelSafe}))

	_, err = requests.FindCompleted("b@example.com", "deadbeef")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestAttemptStoreAppendOnly(t *testing.T) {
	assert := assert.New(t)
	db := newTestDB(t)
	requests := NewRequestStore(db)
	attempts := NewAttemptStore(db)

	req, err := requests.Create("a@example.com", models.ContentTypeText, "deadbeef")
	require.NoError(t, err)

	require.NoError(t, attempts.Create(req.ID, models.ChannelEmail, models.OutcomeFailed, 1, "timeout"))
	require.NoError(t, attempts.Create(req.ID, models.ChannelEmail, models.OutcomeSent, 2, ""))

	rows, err := attempts.ListByRequest(req.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(1, rows[0].AttemptNumber)
	assert.Equal(models.OutcomeFailed, rows[0].Outcome)
	assert.Equal(2, rows[1].AttemptNumber)
	assert.Equal(models.OutcomeSent, rows[1].Outcome)
}
