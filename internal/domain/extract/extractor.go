package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jsvoboda/tipsheet/internal/domain/model"
	"github.com/jsvoboda/tipsheet/pkg/metrics"
)

var (
	dateTokenRE  = regexp.MustCompile(`^\s*\d{1,2}\.\d{1,2}\s*$`)
	timeTokenRE  = regexp.MustCompile(`^\s*\d{1,2}:\d{2}\s*$`)
	datePrefixRE = regexp.MustCompile(`^\s*\d{1,2}\.\d{1,2}\s+`)
	dashRE       = regexp.MustCompile(`\s*[-–]\s*`)
	symbolOnlyRE = regexp.MustCompile(`^[0-9%:|\-–.]+$`)
	letterRE     = regexp.MustCompile(`\p{L}`)
)

// MatchUnknown is the label used when a row yields no plausible team text.
const MatchUnknown = "?"

// isNoiseCell flags cells that cannot be team text: empty or single-char
// cells, bare date (D.M) or time (H:MM) tokens, and cells made of
// digits/percent/punctuation only.
func isNoiseCell(c string) bool {
	if utf8.RuneCountInString(c) <= 1 {
		return true
	}
	return dateTokenRE.MatchString(c) ||
		timeTokenRE.MatchString(c) ||
		symbolOnlyRE.MatchString(c)
}

// plausibleTeamText keeps cells that contain at least one letter and
// enough characters to be a club name.
func plausibleTeamText(c string) bool {
	if isNoiseCell(c) {
		return false
	}
	if !letterRE.MatchString(c) {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(c)) >= 3
}

// cleanMatchName strips a leading "D.M " date prefix and unifies every
// dash variant to the canonical " – " separator.
func cleanMatchName(s string) string {
	s = datePrefixRE.ReplaceAllString(s, "")
	s = dashRE.ReplaceAllString(s, " – ")
	return normSpace(s)
}

// teamsFromCells builds the match label from the non-probability cells
// of a row. Immediately adjacent duplicates are collapsed so a team name
// rendered in sibling cells counts once. Home is the first candidate,
// away the last candidate that differs from home.
func teamsFromCells(cells []string, probRun []int) string {
	inRun := make(map[int]bool, len(probRun))
	for _, i := range probRun {
		inRun[i] = true
	}

	var candidates []string
	for i, c := range cells {
		if inRun[i] {
			continue
		}
		c = normSpace(c)
		if !plausibleTeamText(c) {
			continue
		}
		if n := len(candidates); n > 0 && strings.EqualFold(candidates[n-1], c) {
			continue
		}
		candidates = append(candidates, c)
	}

	if len(candidates) == 0 {
		return MatchUnknown
	}

	home := candidates[0]
	away := ""
	for i := len(candidates) - 1; i >= 0; i-- {
		if !strings.EqualFold(candidates[i], home) {
			away = candidates[i]
			break
		}
	}
	if away == "" {
		if len(candidates) >= 2 {
			away = candidates[1]
		} else {
			away = home
		}
	}

	return cleanMatchName(home + " – " + away)
}

// probabilityRun returns the first longest run of consecutive
// percent-bearing cell indices with length >= 3, or nil.
func probabilityRun(cells []string) []int {
	var percIdx []int
	for i, c := range cells {
		if _, ok := ParsePercent(c); ok {
			percIdx = append(percIdx, i)
		}
	}

	var best, run []int
	for i, idx := range percIdx {
		if i > 0 && idx == percIdx[i-1]+1 {
			run = append(run, idx)
		} else {
			run = []int{idx}
		}
		if len(run) >= minPercentStreak && len(run) > len(best) {
			best = append([]int(nil), run...)
		}
	}
	return best
}

// Row turns one table row's cell texts into a Ticket. Returns false when
// the row carries no probability run; a failed percent parse inside the
// run degrades to 0 rather than failing the row.
func Row(cells []string) (model.Ticket, bool) {
	run := probabilityRun(cells)
	if len(run) < minPercentStreak {
		return model.Ticket{}, false
	}

	p1, _ := ParsePercent(cells[run[0]])
	pX, _ := ParsePercent(cells[run[1]])
	p2, _ := ParsePercent(cells[run[2]])

	// Argmax with fixed tie-break order 1 > X > 2.
	tip := model.OutcomeHome
	best := p1
	if pX > best {
		tip, best = model.OutcomeDraw, pX
	}
	if p2 > best {
		tip = model.OutcomeAway
	}

	return model.Ticket{
		Match: teamsFromCells(cells, run),
		Tip:   tip,
		P1:    p1,
		PX:    pX,
		P2:    p2,
	}, true
}

// Tickets scans an HTML document for probability tables and extracts one
// Ticket per qualifying row, in document order. Tables that fail
// classification and rows without a probability run are skipped
// silently; an empty result is a valid outcome. The only error is an
// unparsable document.
func Tickets(html string) ([]model.Ticket, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var out []model.Ticket
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := tableCells(table)
		qualified := IsProbabilityTable(rows)
		metrics.RecordTableScanned(qualified)
		if !qualified {
			return
		}
		for _, cells := range rows {
			if len(cells) < minRowCells {
				continue
			}
			if t, ok := Row(cells); ok {
				out = append(out, t)
			}
		}
	})
	return out, nil
}

// tableCells flattens a table selection into per-row cell texts.
func tableCells(table *goquery.Selection) [][]string {
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, normSpace(td.Text()))
		})
		rows = append(rows, cells)
	})
	return rows
}
