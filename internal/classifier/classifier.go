// Package classifier wraps external classification capability behind a
// narrow gateway. The gateway is constructed with an ordered list of
// candidate providers and commits to the first configured one for the
// process lifetime.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNoProvider = errors.New("no classification provider configured")

// Outcome is the normalized result of one classification call.
type Outcome struct {
	Label      string
	Confidence *float64
	Reasoning  *string
	Raw        json.RawMessage
}

// Classifier is the external classification capability.
type Classifier interface {
	Classify(ctx context.Context, contentType, payload string) (*Outcome, error)
}

// Provider is a classification backend candidate. Configured reports
// whether its credentials are present.
type Provider interface {
	Classifier
	Name() string
	Configured() bool
}

// Gateway selects one provider at construction time and delegates to it.
// A provider failure surfaces as a single classification error; the
// gateway never retries and never partially returns provider output.
type Gateway struct {
	provider Provider
}

// NewGateway picks the first configured provider from the ordered
// candidate list.
func NewGateway(candidates ...Provider) (*Gateway, error) {
	for _, p := range candidates {
		if p.Configured() {
			return &Gateway{provider: p}, nil
		}
	}
	return nil, ErrNoProvider
}

// ProviderName reports which backend the gateway committed to.
func (g *Gateway) ProviderName() string { return g.provider.Name() }

func (g *Gateway) Classify(ctx context.Context, contentType, payload string) (*Outcome, error) {
	out, err := g.provider.Classify(ctx, contentType, payload)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", g.provider.Name(), err)
	}
	return out, nil
}

func validLabel(label string) bool {
	switch label {
	case "toxic", "spam", "harassment", "safe":
		return true
	}
	return false
}
