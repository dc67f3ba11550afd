// Package dedupe collapses repeated (match, tip) ticket pairs.
package dedupe

// Option applies a configuration option to the inMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithCapacity pre-sizes the seen-set for an expected ticket count.
func WithCapacity(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.seen = make(map[pairKey]struct{}, n)
		}
	}
}
