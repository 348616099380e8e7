package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name       string
	configured bool
	calls      int
	err        error
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Classify(context.Context, string, string) (*Outcome, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &Outcome{Label: "safe"}, nil
}

func TestGatewayPicksFirstConfigured(t *testing.T) {
	primary := &fakeProvider{name: "primary"}
	secondary := &fakeProvider{name: "secondary", configured: true}
	fallback := &fakeProvider{name: "fallback", configured: true}

	gw, err := NewGateway(primary, secondary, fallback)
	require.NoError(t, err)
	assert.Equal(t, "secondary", gw.ProviderName())

	_, err = gw.Classify(context.Background(), "text", "hello")
	require.NoError(t, err)
	assert.Equal(t, 0, primary.calls)
	assert.Equal(t, 1, secondary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestGatewayNoConfiguredProvider(t *testing.T) {
	_, err := NewGateway(&fakeProvider{name: "primary"})
	assert.ErrorIs(t, err, ErrNoProvider)
}

func TestGatewayDoesNotFallThroughOnError(t *testing.T) {
	failing := &fakeProvider{name: "primary", configured: true, err: errors.New("boom")}
	fallback := &fakeProvider{name: "fallback", configured: true}

	gw, err := NewGateway(failing, fallback)
	require.NoError(t, err)

	_, err = gw.Classify(context.Background(), "text", "hello")
	assert.Error(t, err)
	assert.Equal(t, 0, fallback.calls)
}

func TestLexiconLabels(t *testing.T) {
	assert := assert.New(t)
	p := NewLexiconProvider()
	ctx := context.Background()

	cases := map[string]string{
		"Hello world":                 "safe",
		"You are an idiot":            "toxic",
		"I HATE everything about it":  "toxic",
		"free money, click here now!": "spam",
		"nobody likes you, go away":   "harassment",
	}
	for payload, want := range cases {
		out, err := p.Classify(ctx, "text", payload)
		require.NoError(t, err)
		assert.Equal(want, out.Label, "payload %q", payload)
		require.NotNil(t, out.Confidence)
		assert.GreaterOrEqual(*out.Confidence, 0.9)
		assert.NotNil(out.Reasoning)
		assert.NotEmpty(out.Raw)
	}
}

func TestLexiconWordBoundaries(t *testing.T) {
	p := NewLexiconProvider()
	out, err := p.Classify(context.Background(), "text", "the idiomatic way")
	require.NoError(t, err)
	assert.Equal(t, "safe", out.Label)
}
