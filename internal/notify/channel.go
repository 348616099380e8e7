// Package notify delivers flagged-content alerts over independent channels
// and keeps an append-only audit log of every delivery attempt.
package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Alert is the flagged-content hand-off from the moderation lifecycle.
type Alert struct {
	RequestID      uuid.UUID
	UserEmail      string
	Classification string
	Reasoning      string
}

// Message renders the alert body shared by all channels.
func (a Alert) Message() string {
	reasoning := a.Reasoning
	if reasoning == "" {
		reasoning = "no reasoning provided"
	}
	return fmt.Sprintf("Content flagged as %s: %s", a.Classification, reasoning)
}

// Channel is one independent delivery path. Send failures on one channel
// never affect another.
type Channel interface {
	Name() string
	Send(ctx context.Context, alert Alert) error
}
