package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/models"
	"github.com/ahmetcoskunkizilkaya/content-moderator/internal/store"
	"github.com/cenkalti/backoff/v4"
)

// Dispatcher fans an alert out to every configured channel. Delivery is
// fire-and-forget relative to the caller: Dispatch returns immediately and
// channel failures are contained here, never surfaced.
type Dispatcher struct {
	channels       []Channel
	attempts       *store.AttemptStore
	baseDelay      time.Duration
	attemptTimeout time.Duration
	maxAttempts    int

	wg sync.WaitGroup
}

func NewDispatcher(attempts *store.AttemptStore, baseDelay, attemptTimeout time.Duration, channels ...Channel) *Dispatcher {
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if attemptTimeout <= 0 {
		attemptTimeout = 10 * time.Second
	}
	return &Dispatcher{
		channels:       channels,
		attempts:       attempts,
		baseDelay:      baseDelay,
		attemptTimeout: attemptTimeout,
		maxAttempts:    3,
	}
}

// Dispatch starts one independent delivery goroutine per channel and
// returns without waiting for any of them.
func (d *Dispatcher) Dispatch(alert Alert) {
	for _, ch := range d.channels {
		d.wg.Add(1)
		go func(ch Channel) {
			defer d.wg.Done()
			d.deliver(ch, alert)
		}(ch)
	}
}

// deliver runs one channel's attempt sequence with exponential backoff
// between attempts. Every attempt is recorded as its own audit row the
// moment it resolves.
func (d *Dispatcher) deliver(ch Channel, alert Alert) {
	bo := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(d.baseDelay),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0),
		backoff.WithMaxInterval(d.baseDelay*8),
	)

	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		err := d.attemptSend(ch, alert)

		outcome, detail := models.OutcomeSent, ""
		if err != nil {
			outcome, detail = models.OutcomeFailed, truncate(err.Error(), 500)
		}
		if recErr := d.attempts.Create(alert.RequestID, ch.Name(), outcome, attempt, detail); recErr != nil {
			slog.Error("failed to record notification attempt",
				"channel", ch.Name(), "request_id", alert.RequestID, "error", recErr)
		}

		if err == nil {
			return
		}
		slog.Warn("notification attempt failed",
			"channel", ch.Name(), "request_id", alert.RequestID, "attempt", attempt, "error", err)

		if attempt < d.maxAttempts {
			time.Sleep(bo.NextBackOff())
		}
	}

	slog.Error("notification delivery exhausted retries",
		"channel", ch.Name(), "request_id", alert.RequestID, "attempts", d.maxAttempts)
}

func (d *Dispatcher) attemptSend(ch Channel, alert Alert) error {
	ctx, cancel := context.WithTimeout(context.Background(), d.attemptTimeout)
	defer cancel()
	return ch.Send(ctx, alert)
}

// Wait blocks until all in-flight deliveries settle, or the timeout
// elapses. Used during graceful shutdown.
func (d *Dispatcher) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
