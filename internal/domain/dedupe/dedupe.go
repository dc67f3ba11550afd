// Package dedupe collapses repeated (match, tip) ticket pairs.
package dedupe

import (
	"github.com/jsvoboda/tipsheet/internal/domain/model"
)

// Deduper records seen (match, tip) pairs so each prediction is kept
// at most once per run.
type Deduper interface {
	// SeenAndRecord checks if the ticket's (match, tip) pair was seen
	// and records it if not. Returns true if it was already seen.
	SeenAndRecord(t model.Ticket) bool

	// Size returns the number of distinct pairs recorded.
	Size() int
}

type pairKey struct {
	match string
	tip   string
}

// inMemoryDeduper implements Deduper with a plain seen-set. Extraction
// runs are single-threaded batches, so no locking is needed.
type inMemoryDeduper struct {
	seen map[pairKey]struct{}
}

// New creates an in-memory deduper.
func New(opts ...Option) Deduper {
	d := &inMemoryDeduper{}

	for _, opt := range opts {
		opt(d)
	}

	if d.seen == nil {
		d.seen = make(map[pairKey]struct{})
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(t model.Ticket) bool {
	key := pairKey{match: t.Match, tip: t.Tip}
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int {
	return len(d.seen)
}

// Tickets returns tickets with duplicate (match, tip) pairs dropped,
// keeping the first occurrence of each pair in input order. Idempotent.
func Tickets(tickets []model.Ticket) []model.Ticket {
	d := New(WithCapacity(len(tickets)))
	out := make([]model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if d.SeenAndRecord(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
