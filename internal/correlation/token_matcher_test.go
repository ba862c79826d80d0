package correlation

import (
	"testing"

	"fabric-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexTokenMatcher_Match(t *testing.T) {
	t.Parallel()

	matcher, err := NewRegexTokenMatcher(DefaultTokenPattern)
	require.NoError(t, err)

	tests := []struct {
		name      string
		text      string
		wantToken models.CorrelationToken
		wantOK    bool
	}{
		{"token only", "token=42", "42", true},
		{"token inside line", "INFO handler done token=abc-7 in 12ms", "abc-7", true},
		{"first token wins", "token=1 token=2", "1", true},
		{"no token", "cold start complete", "", false},
		{"empty value", "token= trailing", "", false},
		{"empty line", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := matcher.Match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestNewRegexTokenMatcher_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
	}{
		{"does not compile", `token=(\S+`},
		{"no capture group", `token=\S+`},
		{"two capture groups", `(token)=(\S+)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, err := NewRegexTokenMatcher(tt.pattern)
			assert.Nil(t, matcher)
			assert.ErrorIs(t, err, ErrInvalidTokenPattern)
		})
	}
}

func TestTokenMatcherFunc(t *testing.T) {
	t.Parallel()

	var matcher TokenMatcher = TokenMatcherFunc(func(text string) (models.CorrelationToken, bool) {
		return models.CorrelationToken(text), text != ""
	})
	token, ok := matcher.Match("x")
	assert.True(t, ok)
	assert.Equal(t, models.CorrelationToken("x"), token)
}
