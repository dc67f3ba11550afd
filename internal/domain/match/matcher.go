// Package match pairs extracted tickets with externally reported results
// using fuzzy team-name similarity.
package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/jsvoboda/tipsheet/internal/domain/model"
	"github.com/jsvoboda/tipsheet/internal/domain/normalize"
)

// DefaultThreshold is the minimum average similarity (0-100) a candidate
// must reach to be accepted as the pairing for a ticket.
const DefaultThreshold = 70

// Similarity scores two normalized names in [0, 100].
type Similarity func(a, b string) int

// Matcher finds the best result record for a ticket's match label.
type Matcher struct {
	threshold  int
	similarity Similarity
}

// New creates a Matcher with the default token-sort similarity and
// threshold.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		threshold: DefaultThreshold,
		similarity: func(a, b string) int {
			return fuzzy.TokenSortRatio(a, b)
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// SplitLabel splits a "Home – Away" label on the canonical separator,
// falling back to a plain dash. Away is the second segment only, so
// extra separators (hyphenated club names rewritten upstream) truncate
// the away side rather than swallowing the rest of the label. A label
// with no separator becomes (label, "").
func SplitLabel(label string) (home, away string) {
	var parts []string
	switch {
	case strings.Contains(label, "–"):
		parts = strings.Split(label, "–")
	case strings.Contains(label, "-"):
		parts = strings.Split(label, "-")
	default:
		parts = []string{label}
	}
	home = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		away = strings.TrimSpace(parts[1])
	}
	return home, away
}

// Best scans results for the record whose home/away names are most
// similar to the ticket's label and returns it with the score, or
// (nil, bestScore) when no candidate reaches the threshold. The scan is
// a fold in feed order: ties keep the first maximum, an empty feed
// scores 0. Never fails.
func (m *Matcher) Best(t model.Ticket, results []model.ResultRecord) (*model.ResultRecord, int) {
	homeLabel, awayLabel := SplitLabel(t.Match)
	h := normalize.Name(homeLabel)
	a := normalize.Name(awayLabel)

	best := -1
	bestIdx := -1
	for i := range results {
		hAPI := normalize.Name(results[i].HomeName)
		aAPI := normalize.Name(results[i].AwayName)
		score := (m.similarity(h, hAPI) + m.similarity(a, aAPI)) / 2
		if score > best {
			best = score
			bestIdx = i
		}
	}

	if best < 0 {
		return nil, 0
	}
	if best < m.threshold {
		return nil, best
	}
	return &results[bestIdx], best
}

// Tickets pairs every ticket against the same results list.
func (m *Matcher) Tickets(tickets []model.Ticket, results []model.ResultRecord) []model.MatchedTicket {
	out := make([]model.MatchedTicket, 0, len(tickets))
	for _, t := range tickets {
		rec, score := m.Best(t, results)
		out = append(out, model.MatchedTicket{Ticket: t, Result: rec, Score: score})
	}
	return out
}
