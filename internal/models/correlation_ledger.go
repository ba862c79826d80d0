package models

import (
	"sort"
	"strconv"
	"time"
)

// CorrelationToken identifies the logical invocation that emitted a log record.
type CorrelationToken string

// TokenFromIndex renders an integer invocation index as a token.
func TokenFromIndex(i int) CorrelationToken {
	return CorrelationToken(strconv.Itoa(i))
}

// WindowOutcome records how an observation window ended.
type WindowOutcome string

const (
	WindowOpen      WindowOutcome = "open"
	WindowComplete  WindowOutcome = "complete"
	WindowAbandoned WindowOutcome = "abandoned"
	WindowAnomalous WindowOutcome = "anomalous"
)

// CorrelationLedger is the expected-versus-observed bookkeeping of one observation
// window. A ledger belongs to exactly one window.
type CorrelationLedger struct {
	WindowID       string                        `json:"windowId"`
	Epoch          uint64                        `json:"epoch"`
	Expected       map[CorrelationToken]struct{} `json:"expected"`
	ObservedCounts map[CorrelationToken]int      `json:"observedCounts"`
	Anomalies      map[CorrelationToken]int      `json:"anomalies,omitempty"`
	OpenedAt       time.Time                     `json:"openedAt"`
	ClosedAt       time.Time                     `json:"closedAt,omitempty"`
	Outcome        WindowOutcome                 `json:"outcome"`
}

// NewCorrelationLedger creates an open ledger expecting the given tokens.
func NewCorrelationLedger(windowID string, epoch uint64, expected []CorrelationToken, openedAt time.Time) *CorrelationLedger {
	set := make(map[CorrelationToken]struct{}, len(expected))
	for _, token := range expected {
		set[token] = struct{}{}
	}
	return &CorrelationLedger{
		WindowID:       windowID,
		Epoch:          epoch,
		Expected:       set,
		ObservedCounts: make(map[CorrelationToken]int, len(set)),
		Anomalies:      make(map[CorrelationToken]int),
		OpenedAt:       openedAt,
		Outcome:        WindowOpen,
	}
}

// IsExpected reports whether token belongs to this window.
func (l *CorrelationLedger) IsExpected(token CorrelationToken) bool {
	_, ok := l.Expected[token]
	return ok
}

// IsComplete reports whether every expected token was observed at least once.
func (l *CorrelationLedger) IsComplete() bool {
	for token := range l.Expected {
		if l.ObservedCounts[token] < 1 {
			return false
		}
	}
	return true
}

// Missing returns the expected tokens never observed, sorted.
func (l *CorrelationLedger) Missing() []CorrelationToken {
	missing := make([]CorrelationToken, 0)
	for token := range l.Expected {
		if l.ObservedCounts[token] < 1 {
			missing = append(missing, token)
		}
	}
	SortTokens(missing)
	return missing
}

// Duplicates returns the expected tokens observed more than once with their counts.
func (l *CorrelationLedger) Duplicates() map[CorrelationToken]int {
	dups := make(map[CorrelationToken]int)
	for token, count := range l.ObservedCounts {
		if count > 1 {
			dups[token] = count
		}
	}
	return dups
}

// Clone returns a deep copy that shares no maps with l.
func (l *CorrelationLedger) Clone() CorrelationLedger {
	out := *l
	out.Expected = make(map[CorrelationToken]struct{}, len(l.Expected))
	for k := range l.Expected {
		out.Expected[k] = struct{}{}
	}
	out.ObservedCounts = make(map[CorrelationToken]int, len(l.ObservedCounts))
	for k, v := range l.ObservedCounts {
		out.ObservedCounts[k] = v
	}
	out.Anomalies = make(map[CorrelationToken]int, len(l.Anomalies))
	for k, v := range l.Anomalies {
		out.Anomalies[k] = v
	}
	return out
}

// SortTokens orders tokens numerically when both are integers and lexically
// otherwise, so "2" sorts before "10".
func SortTokens(tokens []CorrelationToken) {
	sort.Slice(tokens, func(i, j int) bool {
		a, errA := strconv.Atoi(string(tokens[i]))
		b, errB := strconv.Atoi(string(tokens[j]))
		if errA == nil && errB == nil {
			return a < b
		}
		if (errA == nil) != (errB == nil) {
			return errA == nil
		}
		return tokens[i] < tokens[j]
	})
}
