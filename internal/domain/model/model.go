// Package model contains domain models passed between layers.
package model

// Outcome symbols for a 1/X/2 market. OutcomeUnknown marks a ticket that
// could not be resolved (no paired result, or result not final yet).
const (
	OutcomeHome    = "1"
	OutcomeDraw    = "X"
	OutcomeAway    = "2"
	OutcomeUnknown = "?"
)

// Ticket is one predicted match outcome extracted from a QuickTips row.
// Immutable after extraction.
type Ticket struct {
	Match string // "Home – Away" label; upstream separator is not guaranteed
	Tip   string // "1", "X" or "2"; argmax of P1/PX/P2 at extraction time
	P1    int    // home win probability, percent
	PX    int    // draw probability, percent
	P2    int    // away win probability, percent
}

// Status is a match lifecycle state as reported by the results feed.
type Status string

// Statuses used by the Football-Data feed. Only Finished and Awarded
// carry an authoritative full-time score.
const (
	StatusScheduled Status = "SCHEDULED"
	StatusTimed     Status = "TIMED"
	StatusInPlay    Status = "IN_PLAY"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusAwarded   Status = "AWARDED"
	StatusPostponed Status = "POSTPONED"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
)

// Final reports whether the status makes the full-time score authoritative.
func (s Status) Final() bool {
	return s == StatusFinished || s == StatusAwarded
}

// Score holds full-time goal counts. Nil fields mean the feed has not
// reported them yet.
type Score struct {
	Home *int
	Away *int
}

// ResultRecord is one externally reported match, source spelling intact.
type ResultRecord struct {
	HomeName    string
	AwayName    string
	Status      Status
	FullTime    Score
	Competition string
	UTCDate     string
}

// MatchedTicket pairs a ticket with at most one result record plus the
// fuzzy confidence score (0-100) that produced the pairing. Intermediate
// value of an evaluation run, never persisted on its own.
type MatchedTicket struct {
	Ticket Ticket
	Result *ResultRecord // nil when no candidate cleared the threshold
	Score  int
}

// VerdictResult is the tri-state correctness classification of a ticket.
type VerdictResult string

const (
	VerdictCorrect    VerdictResult = "CORRECT"
	VerdictIncorrect  VerdictResult = "INCORRECT"
	VerdictUnresolved VerdictResult = "UNRESOLVED"
)

// Verdict is the reconciliation outcome for one ticket.
type Verdict struct {
	Ticket     Ticket
	Matched    *ResultRecord // nil when unpaired
	Outcome    string        // "1"/"X"/"2"/"?" derived from the result
	FuzzyScore int
	Result     VerdictResult
}
