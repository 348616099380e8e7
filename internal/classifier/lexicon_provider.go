package classifier

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
)

// Word lists backing the deterministic fallback classifier.
var (
	toxicWords      = []string{"idiot", "dumb", "stupid", "hate", "moron", "loser"}
	harassmentWords = []string{"kill yourself", "nobody likes you", "you deserve", "watch your back"}
	spamWords       = []string{"free money", "click here", "buy now", "limited offer", "winner", "crypto giveaway"}
)

// LexiconProvider is the deterministic last-resort classifier. It needs no
// credentials, so it is always configured and terminates every candidate
// list.
type LexiconProvider struct {
	toxic      []*regexp.Regexp
	harassment []string
	spam       []string
}

func NewLexiconProvider() *LexiconProvider {
	p := &LexiconProvider{
		harassment: harassmentWords,
		spam:       spamWords,
	}
	p.toxic = make([]*regexp.Regexp, 0, len(toxicWords))
	for _, word := range toxicWords {
		p.toxic = append(p.toxic, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	return p
}

func (p *LexiconProvider) Name() string { return "lexicon" }

func (p *LexiconProvider) Configured() bool { return true }

func (p *LexiconProvider) Classify(_ context.Context, _, payload string) (*Outcome, error) {
	lower := strings.ToLower(payload)

	label, reasoning := "safe", "No harmful content detected."
	switch {
	case containsAny(lower, p.harassment):
		label, reasoning = "harassment", "Detected harassing language."
	case p.matchesToxic(payload):
		label, reasoning = "toxic", "Detected offensive language."
	case containsAny(lower, p.spam):
		label, reasoning = "spam", "Detected spam patterns."
	}

	confidence := 0.95
	if label == "safe" {
		confidence = 0.99
	}

	raw, _ := json.Marshal(map[string]interface{}{"provider": "lexicon", "deterministic": true})
	return &Outcome{
		Label:      label,
		Confidence: &confidence,
		Reasoning:  &reasoning,
		Raw:        raw,
	}, nil
}

func (p *LexiconProvider) matchesToxic(text string) bool {
	for _, re := range p.toxic {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
