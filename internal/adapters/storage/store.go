// Package storage persists tickets and evaluation reports as flat files
// in a data directory.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jsvoboda/tipsheet/internal/domain/model"
	"github.com/jsvoboda/tipsheet/internal/report"
)

// File naming. The date in a ticket filename identifies the evaluation
// target date later.
const (
	ticketPrefix    = "tiket_quicktips_"
	telegramPrefix  = "tiket_telegram_"
	evaluatedPrefix = "evaluated_quicktips_"

	csvSeparator = ';'

	// Excel wants a BOM on utf-8 CSV files.
	utf8BOM = "\xef\xbb\xbf"
)

var filenameDateRE = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

var ticketHeader = []string{"match", "tip", "p1", "pX", "p2"}

// Store reads and writes ticket artifacts under one directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// TicketsPath returns the ticket CSV path for an ISO date.
func (s *Store) TicketsPath(dateISO string) string {
	return filepath.Join(s.dir, ticketPrefix+dateISO+".csv")
}

// SaveTickets writes the ticket CSV for dateISO and returns its path.
func (s *Store) SaveTickets(tickets []model.Ticket, dateISO string) (string, error) {
	path := s.TicketsPath(dateISO)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}
	defer f.Close()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}

	w := csv.NewWriter(f)
	w.Comma = csvSeparator
	if err := w.Write(ticketHeader); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}
	for _, t := range tickets {
		row := []string{t.Match, t.Tip, strconv.Itoa(t.P1), strconv.Itoa(t.PX), strconv.Itoa(t.P2)}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("%w: %v", ErrSave, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}
	return path, nil
}

// LoadTickets reads a ticket CSV back. Values round-trip exactly.
func (s *Store) LoadTickets(path string) ([]model.Ticket, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), utf8BOM)))
	r.Comma = csvSeparator
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrLoad, path)
	}

	tickets := make([]model.Ticket, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) < 5 {
			return nil, fmt.Errorf("%w: short row in %s", ErrLoad, path)
		}
		p1, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
		pX, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
		p2, err := strconv.Atoi(row[4])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoad, err)
		}
		tickets = append(tickets, model.Ticket{Match: row[0], Tip: row[1], P1: p1, PX: pX, P2: p2})
	}
	return tickets, nil
}

// Latest returns the newest ticket CSV by modification time together
// with its target date, taken from the filename or defaulting to today.
func (s *Store) Latest() (path, dateISO string, err error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, ticketPrefix+"*.csv"))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrLoad, err)
	}
	if len(matches) == 0 {
		return "", "", ErrNoTickets
	}

	var latest string
	var latestMod time.Time
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = m
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return "", "", ErrNoTickets
	}
	return latest, DateFromFilename(filepath.Base(latest)), nil
}

// DateFromFilename extracts an ISO date from a filename, defaulting to
// today when none is embedded.
func DateFromFilename(name string) string {
	if d := filenameDateRE.FindString(name); d != "" {
		return d
	}
	return time.Now().Format("2006-01-02")
}

// SaveTelegramTXT writes the plain-text ticket rendering, one
// "<match> <TIP> <p1> <pX> <p2>" line per ticket.
func (s *Store) SaveTelegramTXT(tickets []model.Ticket, dateISO string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "TICKET %s\n", displayDate(dateISO))
	b.WriteString(strings.Repeat("─", 32) + "\n")
	for _, t := range tickets {
		fmt.Fprintf(&b, "%s %s %d %d %d\n", t.Match, strings.ToUpper(t.Tip), t.P1, t.PX, t.P2)
	}
	b.WriteString(strings.Repeat("─", 32) + "\n")
	fmt.Fprintf(&b, "Matches: %d\n", len(tickets))

	path := filepath.Join(s.dir, telegramPrefix+dateISO+".txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}
	return path, nil
}

// SaveEvaluated writes the evaluation report CSV for dateISO.
func (s *Store) SaveEvaluated(verdicts []model.Verdict, dateISO string) (string, error) {
	path := filepath.Join(s.dir, evaluatedPrefix+dateISO+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}
	defer f.Close()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}

	w := csv.NewWriter(f)
	w.Comma = csvSeparator
	header := []string{
		"match", "tip", "p1", "pX", "p2",
		"status", "score", "outcome", "correct", "symbol", "fuzzy_score",
		"home", "away", "competition", "utc_date",
	}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}
	for _, v := range verdicts {
		row := []string{
			v.Ticket.Match, v.Ticket.Tip,
			strconv.Itoa(v.Ticket.P1), strconv.Itoa(v.Ticket.PX), strconv.Itoa(v.Ticket.P2),
			matchedStatus(v), report.ScoreText(v), v.Outcome,
			correctFlag(v), report.Symbol(v), strconv.Itoa(v.FuzzyScore),
			matchedField(v, func(r *model.ResultRecord) string { return r.HomeName }),
			matchedField(v, func(r *model.ResultRecord) string { return r.AwayName }),
			matchedField(v, func(r *model.ResultRecord) string { return r.Competition }),
			matchedField(v, func(r *model.ResultRecord) string { return r.UTCDate }),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("%w: %v", ErrSave, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSave, err)
	}
	return path, nil
}

func matchedStatus(v model.Verdict) string {
	if v.Matched == nil {
		return ""
	}
	return string(v.Matched.Status)
}

func matchedField(v model.Verdict, get func(*model.ResultRecord) string) string {
	if v.Matched == nil {
		return ""
	}
	return get(v.Matched)
}

// correctFlag is "1"/"0" for resolved tickets and empty for unresolved,
// keeping the report spreadsheet-friendly.
func correctFlag(v model.Verdict) string {
	switch v.Result {
	case model.VerdictCorrect:
		return "1"
	case model.VerdictIncorrect:
		return "0"
	default:
		return ""
	}
}

func displayDate(dateISO string) string {
	d, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return dateISO
	}
	return d.Format("02.01.2006")
}
