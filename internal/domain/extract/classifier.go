// Package extract recovers ticket rows from semi-structured HTML
// probability tables.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Classifier limits. The detector only needs the top of a table to see
// the 1/X/2 probability columns.
const (
	classifierRowLimit = 6
	minRowCells        = 5
	minPercentStreak   = 3
)

var (
	percentRE = regexp.MustCompile(`(\d{1,3})\s*%`)
	spaceRE   = regexp.MustCompile(`\s+`)
)

// normSpace collapses runs of whitespace and trims.
func normSpace(s string) string {
	return strings.TrimSpace(spaceRE.ReplaceAllString(s, " "))
}

// ParsePercent extracts a 0-100 percentage from a cell such as "40%" or
// "40 %". Returns false when the cell carries no in-range percentage.
func ParsePercent(cell string) (int, bool) {
	m := percentRE.FindStringSubmatch(cell)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}

// IsProbabilityTable reports whether rows look like a QuickTips
// probability table: within the first few rows, some row with enough
// cells carries three adjacent percentage cells (the 1/X/2 columns).
// One qualifying row is sufficient. Pure predicate over cell text so it
// can be tuned and tested independently of the HTML walk.
func IsProbabilityTable(rows [][]string) bool {
	limit := len(rows)
	if limit > classifierRowLimit {
		limit = classifierRowLimit
	}
	for _, cells := range rows[:limit] {
		if len(cells) < minRowCells {
			continue
		}
		streak := 0
		for _, c := range cells {
			if _, ok := ParsePercent(c); ok {
				streak++
				if streak >= minPercentStreak {
					return true
				}
			} else {
				streak = 0
			}
		}
	}
	return false
}
