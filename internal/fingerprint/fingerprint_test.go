package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextDeterministic(t *testing.T) {
	assert := assert.New(t)

	a := Text("Hello world")
	b := Text("Hello world")
	assert.Equal(a, b)
	assert.Len(a, 64)
}

func TestTextNormalizesWhitespace(t *testing.T) {
	assert.Equal(t, Text("Hello world"), Text("  Hello world\n"))
}

func TestDistinctContentDistinctDigest(t *testing.T) {
	assert.NotEqual(t, Text("Hello world"), Text("Hello, world"))
}

func TestImageURL(t *testing.T) {
	assert := assert.New(t)

	a := ImageURL("https://example.com/cat.png")
	assert.Len(a, 64)
	assert.Equal(a, ImageURL(" https://example.com/cat.png "))
	assert.NotEqual(a, ImageURL("https://example.com/dog.png"))
}
