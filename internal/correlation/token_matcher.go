package correlation

import (
	"fmt"
	"regexp"

	"fabric-ledger/internal/models"
)

// DefaultTokenPattern matches "token=<value>" anywhere in a line.
const DefaultTokenPattern = `token=(\S+)`

// TokenMatcher extracts a correlation token from raw log text. Lines that carry no
// token yield false.
type TokenMatcher interface {
	Match(text string) (models.CorrelationToken, bool)
}

// TokenMatcherFunc adapts a function to TokenMatcher.
type TokenMatcherFunc func(text string) (models.CorrelationToken, bool)

func (f TokenMatcherFunc) Match(text string) (models.CorrelationToken, bool) {
	return f(text)
}

type regexTokenMatcher struct {
	re *regexp.Regexp
}

// NewRegexTokenMatcher compiles pattern, which must have exactly one capture group.
// The first match's group is the token; an empty group counts as no match.
func NewRegexTokenMatcher(pattern string) (TokenMatcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errInvalidTokenPattern(pattern, err)
	}
	if n := re.NumSubexp(); n != 1 {
		return nil, errInvalidTokenPattern(pattern, fmt.Errorf("want exactly 1 capture group, got %d", n))
	}
	return &regexTokenMatcher{re: re}, nil
}

func (m *regexTokenMatcher) Match(text string) (models.CorrelationToken, bool) {
	groups := m.re.FindStringSubmatch(text)
	if groups == nil || groups[1] == "" {
		return "", false
	}
	return models.CorrelationToken(groups[1]), true
}
