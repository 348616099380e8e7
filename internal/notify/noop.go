package notify

import "context"

// NoopChannel stands in for an unconfigured channel. Its Send always
// succeeds, so the audit trail still records one synthetic sent attempt
// instead of the channel disappearing silently.
type NoopChannel struct {
	name string
}

func NewNoopChannel(name string) *NoopChannel {
	return &NoopChannel{name: name}
}

func (c *NoopChannel) Name() string { return c.name }

func (c *NoopChannel) Send(context.Context, Alert) error { return nil }
