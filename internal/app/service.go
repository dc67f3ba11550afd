// Package service provides the core business service that runs the
// extraction and evaluation pipelines behind the HTTP trigger and CLIs.
package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jsvoboda/tipsheet/internal/adapters/storage"
	"github.com/jsvoboda/tipsheet/internal/domain/dedupe"
	"github.com/jsvoboda/tipsheet/internal/domain/extract"
	"github.com/jsvoboda/tipsheet/internal/domain/match"
	"github.com/jsvoboda/tipsheet/internal/domain/model"
	"github.com/jsvoboda/tipsheet/internal/domain/outcome"
	"github.com/jsvoboda/tipsheet/internal/report"
	"github.com/jsvoboda/tipsheet/pkg/logger"
	"github.com/jsvoboda/tipsheet/pkg/metrics"
)

// PageFetcher supplies the QuickTips HTML document.
type PageFetcher interface {
	Page(ctx context.Context, url string) (string, error)
}

// ResultsFeed supplies reported matches for an ISO date.
type ResultsFeed interface {
	Matches(ctx context.Context, date string) ([]model.ResultRecord, error)
}

// TicketStore persists and recalls ticket artifacts.
type TicketStore interface {
	SaveTickets(tickets []model.Ticket, dateISO string) (string, error)
	LoadTickets(path string) ([]model.Ticket, error)
	Latest() (path, dateISO string, err error)
	SaveTelegramTXT(tickets []model.Ticket, dateISO string) (string, error)
	SaveEvaluated(verdicts []model.Verdict, dateISO string) (string, error)
}

// Service wires the two pipelines to their collaborators.
type Service struct {
	fetcher   PageFetcher
	results   ResultsFeed
	store     TicketStore
	matcher   *match.Matcher
	sourceURL string
	now       func() time.Time
	logger    logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the HTML source collaborator.
func WithFetcher(f PageFetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithResultsFeed sets the results feed collaborator.
func WithResultsFeed(r ResultsFeed) Option {
	return func(s *Service) {
		if r != nil {
			s.results = r
		}
	}
}

// WithStore sets the ticket persistence collaborator.
func WithStore(st TicketStore) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithMatcher sets the fuzzy matcher.
func WithMatcher(m *match.Matcher) Option {
	return func(s *Service) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithSourceURL sets the QuickTips page URL.
func WithSourceURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.sourceURL = url
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service. A store must be provided via WithStore (or
// it defaults to the current directory); fetcher and feed are required
// only by the pipeline that uses them.
func New(opts ...Option) *Service {
	s := &Service{
		matcher: match.New(),
		store:   storage.New("."),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// RunExtraction fetches the QuickTips page, extracts and dedupes
// tickets, writes the console ticket to w and persists the CSV and TXT
// artifacts. An extraction that finds no rows is a success. Only
// collaborator failures return an error.
func (s *Service) RunExtraction(ctx context.Context, w io.Writer) error {
	start := s.now()
	dateISO := start.Format("2006-01-02")

	html, err := s.fetcher.Page(ctx, s.sourceURL)
	if err != nil {
		metrics.RecordRun("extraction", "error")
		return fmt.Errorf("load quicktips page: %w", err)
	}

	rows, err := extract.Tickets(html)
	if err != nil {
		metrics.RecordRun("extraction", "error")
		return fmt.Errorf("parse quicktips page: %w", err)
	}

	tickets := dedupe.Tickets(rows)
	metrics.RecordTicketsExtracted(len(tickets))
	metrics.RecordTicketsDuplicate(len(rows) - len(tickets))

	if len(tickets) == 0 {
		s.logger.Info(ctx, "no parsable quicktips rows found")
		fmt.Fprintln(w, "No parsable QuickTips rows found.")
		metrics.RecordRun("extraction", "ok")
		return nil
	}

	report.Ticket(w, tickets, start)

	csvPath, err := s.store.SaveTickets(tickets, dateISO)
	if err != nil {
		metrics.RecordRun("extraction", "error")
		return err
	}
	fmt.Fprintf(w, "Saved CSV: %s\n", csvPath)

	txtPath, err := s.store.SaveTelegramTXT(tickets, dateISO)
	if err != nil {
		metrics.RecordRun("extraction", "error")
		return err
	}
	fmt.Fprintf(w, "Saved TXT: %s\n", txtPath)

	s.logger.Info(ctx, "extraction finished",
		logger.Int("tickets", len(tickets)),
		logger.Int("duplicates", len(rows)-len(tickets)),
		logger.String("csv", csvPath),
	)
	metrics.RecordRun("extraction", "ok")
	return nil
}

// RunEvaluation loads the newest persisted ticket list, pairs it against
// the results feed for its date and writes the verdict report to w,
// persisting the evaluated CSV and the TXT rendering. Unmatched or
// unfinished matches become unresolved verdicts, never errors.
func (s *Service) RunEvaluation(ctx context.Context, w io.Writer) error {
	path, dateISO, err := s.store.Latest()
	if err != nil {
		metrics.RecordRun("evaluation", "error")
		return fmt.Errorf("locate ticket file: %w", err)
	}
	tickets, err := s.store.LoadTickets(path)
	if err != nil {
		metrics.RecordRun("evaluation", "error")
		return fmt.Errorf("load ticket file: %w", err)
	}
	s.logger.Info(ctx, "evaluating ticket file",
		logger.String("path", path),
		logger.String("date", dateISO),
		logger.Int("tickets", len(tickets)),
	)

	if _, err := s.store.SaveTelegramTXT(tickets, dateISO); err != nil {
		metrics.RecordRun("evaluation", "error")
		return err
	}

	records, err := s.results.Matches(ctx, dateISO)
	if err != nil {
		metrics.RecordRun("evaluation", "error")
		return fmt.Errorf("load results feed: %w", err)
	}

	verdicts := make([]model.Verdict, 0, len(tickets))
	for _, mt := range s.matcher.Tickets(tickets, records) {
		v := outcome.Verdict(mt)
		verdicts = append(verdicts, v)
		metrics.RecordVerdict(string(v.Result))
		metrics.RecordFuzzyScore(v.FuzzyScore)
	}

	report.Evaluation(w, verdicts, dateISO, path)

	evalPath, err := s.store.SaveEvaluated(verdicts, dateISO)
	if err != nil {
		metrics.RecordRun("evaluation", "error")
		return err
	}
	fmt.Fprintf(w, "Saved report: %s\n", evalPath)

	sum := report.Summarize(verdicts)
	s.logger.Info(ctx, "evaluation finished",
		logger.Int("correct", sum.Correct),
		logger.Int("incorrect", sum.Incorrect),
		logger.Int("unresolved", sum.Unresolved),
		logger.String("report", evalPath),
	)
	metrics.RecordRun("evaluation", "ok")
	return nil
}
