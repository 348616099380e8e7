package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Classification labels returned by the classifier gateway.
const (
	LabelToxic      = "toxic"
	LabelSpam       = "spam"
	LabelHarassment = "harassment"
	LabelSafe       = "safe"
)

// ModerationResult stores the classification outcome for exactly one
// completed ModerationRequest. ProviderResponse keeps the raw provider
// payload for audit; it is never parsed again after ingestion.
type ModerationResult struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"request_id"`
	Classification   string         `gorm:"not null;size:20" json:"classification"`
	Confidence       *float64       `json:"confidence,omitempty"`
	Reasoning        *string        `gorm:"type:text" json:"reasoning,omitempty"`
	ProviderResponse datatypes.JSON `gorm:"type:jsonb" json:"provider_response,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}
