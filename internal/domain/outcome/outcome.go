// Package outcome derives 1/X/2 outcomes from result records and judges
// ticket correctness.
package outcome

import (
	"github.com/jsvoboda/tipsheet/internal/domain/model"
)

// Resolve derives the outcome symbol from a result record. Records that
// are missing, not final, or final without reported goals all resolve to
// OutcomeUnknown; anomalies are data here, never errors.
func Resolve(r *model.ResultRecord) string {
	if r == nil || !r.Status.Final() {
		return model.OutcomeUnknown
	}
	hg, ag := r.FullTime.Home, r.FullTime.Away
	if hg == nil || ag == nil {
		return model.OutcomeUnknown
	}
	switch {
	case *hg > *ag:
		return model.OutcomeHome
	case *hg < *ag:
		return model.OutcomeAway
	default:
		return model.OutcomeDraw
	}
}

// Judge classifies a ticket given the resolved outcome symbol.
func Judge(tip, symbol string) model.VerdictResult {
	if symbol == model.OutcomeUnknown {
		return model.VerdictUnresolved
	}
	if symbol == tip {
		return model.VerdictCorrect
	}
	return model.VerdictIncorrect
}

// Verdict resolves a matched ticket into its final verdict.
func Verdict(mt model.MatchedTicket) model.Verdict {
	symbol := Resolve(mt.Result)
	return model.Verdict{
		Ticket:     mt.Ticket,
		Matched:    mt.Result,
		Outcome:    symbol,
		FuzzyScore: mt.Score,
		Result:     Judge(mt.Ticket.Tip, symbol),
	}
}
