package tokens

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := New()
		assert.False(t, seen[tok], "token collision")
		seen[tok] = true
	}
}

func TestNew_URLSafe(t *testing.T) {
	tok := New()
	assert.Equal(t, tok, url.QueryEscape(tok))
	assert.Len(t, tok, 43) // 32 bytes, unpadded base64url
}

func TestMatch(t *testing.T) {
	tok := New()
	assert.True(t, Match(tok, tok))
	assert.False(t, Match(tok, New()))
	assert.False(t, Match("", tok))
	assert.False(t, Match(tok, ""))
}
