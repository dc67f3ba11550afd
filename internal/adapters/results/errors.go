package results

import "errors"

// Sentinel kinds for results feed errors.
var (
	ErrFetch  = errors.New("results fetch failed")
	ErrDecode = errors.New("results decode failed")
)
