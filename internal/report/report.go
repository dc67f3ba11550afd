// Package report renders ticket lists and evaluation results for the
// console and for plain-text artifacts.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jsvoboda/tipsheet/internal/domain/model"
)

// Per-ticket verdict symbols.
const (
	SymbolCorrect    = "✓"
	SymbolIncorrect  = "✗"
	SymbolUnresolved = "•"
)

const (
	matchColumnWidth = 44
	ruleWidth        = 74
)

// Summary aggregates verdict counts for one evaluation run.
type Summary struct {
	Correct    int
	Incorrect  int
	Unresolved int
}

// Total returns the number of evaluated tickets.
func (s Summary) Total() int {
	return s.Correct + s.Incorrect + s.Unresolved
}

// Accuracy returns the correct percentage over resolved tickets, 0 when
// nothing resolved.
func (s Summary) Accuracy() float64 {
	resolved := s.Correct + s.Incorrect
	if resolved == 0 {
		return 0
	}
	return float64(s.Correct) / float64(resolved) * 100
}

// Summarize counts verdicts by result.
func Summarize(verdicts []model.Verdict) Summary {
	var s Summary
	for _, v := range verdicts {
		switch v.Result {
		case model.VerdictCorrect:
			s.Correct++
		case model.VerdictIncorrect:
			s.Incorrect++
		default:
			s.Unresolved++
		}
	}
	return s
}

// Symbol returns the display symbol for a verdict.
func Symbol(v model.Verdict) string {
	switch v.Result {
	case model.VerdictCorrect:
		return SymbolCorrect
	case model.VerdictIncorrect:
		return SymbolIncorrect
	default:
		return SymbolUnresolved
	}
}

// ScoreText renders the matched result's score column: "H:A" for final
// matches, the feed status while a matched game is still open, and "—"
// for unpaired tickets.
func ScoreText(v model.Verdict) string {
	if v.Matched == nil {
		return "—"
	}
	if !v.Matched.Status.Final() {
		return string(v.Matched.Status)
	}
	hg, ag := v.Matched.FullTime.Home, v.Matched.FullTime.Away
	if hg == nil || ag == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d:%d", *hg, *ag)
}

func rule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", ruleWidth))
}

func clipMatch(match string) string {
	r := []rune(match)
	if len(r) > matchColumnWidth {
		return string(r[:matchColumnWidth-3]) + "..."
	}
	return match
}

// Ticket renders the extracted ticket table.
func Ticket(w io.Writer, tickets []model.Ticket, date time.Time) {
	fmt.Fprintf(w, "TICKET — QuickTips (football) [%s]\n", date.Format("02.01.2006"))
	rule(w)
	fmt.Fprintf(w, " #  %-44s  TIP   p1   pX   p2\n", "MATCH")
	rule(w)
	for i, t := range tickets {
		fmt.Fprintf(w, "%2d  %-44s  %-1s   %3d  %3d  %3d\n",
			i+1, clipMatch(t.Match), t.Tip, t.P1, t.PX, t.P2)
	}
	rule(w)
	fmt.Fprintf(w, "Matches: %d\n", len(tickets))
}

// Evaluation renders the per-ticket verdict table and summary counts.
func Evaluation(w io.Writer, verdicts []model.Verdict, dateISO, source string) {
	fmt.Fprintln(w, "TICKET EVALUATION — QuickTips (football)")
	rule(w)
	fmt.Fprintf(w, "Date: %s\n", displayDate(dateISO))
	if source != "" {
		fmt.Fprintf(w, "File: %s\n", source)
	}
	rule(w)
	fmt.Fprintf(w, " #  %-44s  TIP  %-9s  OUT  RES\n", "MATCH", "SCORE")
	rule(w)
	for i, v := range verdicts {
		fmt.Fprintf(w, "%2d  %-44s  %-1s    %-9s  %-1s    %s\n",
			i+1, clipMatch(v.Ticket.Match), v.Ticket.Tip, ScoreText(v), v.Outcome, Symbol(v))
	}
	s := Summarize(verdicts)
	rule(w)
	fmt.Fprintf(w, "Correct: %d   Incorrect: %d   Unresolved: %d   |  Total: %d\n",
		s.Correct, s.Incorrect, s.Unresolved, s.Total())
	fmt.Fprintf(w, "Accuracy (resolved only): %.1f %%\n", s.Accuracy())
	rule(w)
}

// displayDate converts ISO YYYY-MM-DD to DD.MM.YYYY, passing through
// anything that does not parse.
func displayDate(dateISO string) string {
	d, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return dateISO
	}
	return d.Format("02.01.2006")
}
