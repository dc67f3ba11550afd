package match

// Option applies a configuration option to the Matcher.
type Option func(*Matcher)

// WithThreshold sets the minimum acceptance score (0-100).
func WithThreshold(threshold int) Option {
	return func(m *Matcher) {
		if threshold >= 0 && threshold <= 100 {
			m.threshold = threshold
		}
	}
}

// WithSimilarity replaces the similarity function. Useful for
// deterministic threshold tests.
func WithSimilarity(fn Similarity) Option {
	return func(m *Matcher) {
		if fn != nil {
			m.similarity = fn
		}
	}
}
