package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	app "github.com/jsvoboda/tipsheet/internal/app"
	"github.com/jsvoboda/tipsheet/internal/domain/match"
	"github.com/jsvoboda/tipsheet/internal/domain/model"
	"github.com/jsvoboda/tipsheet/pkg/logger"
)

func init() {
	_ = logger.InitWithWriter(io.Discard)
}

func intPtr(v int) *int { return &v }

type stubFetcher struct {
	html string
	err  error
	url  string
}

func (s *stubFetcher) Page(_ context.Context, url string) (string, error) {
	s.url = url
	return s.html, s.err
}

type stubFeed struct {
	records []model.ResultRecord
	err     error
	date    string
}

func (s *stubFeed) Matches(_ context.Context, date string) ([]model.ResultRecord, error) {
	s.date = date
	return s.records, s.err
}

// memStore keeps artifacts in memory so pipeline tests stay off disk.
type memStore struct {
	tickets    []model.Ticket
	ticketDate string
	telegram   []model.Ticket
	evaluated  []model.Verdict
	latestErr  error
}

func (m *memStore) SaveTickets(tickets []model.Ticket, dateISO string) (string, error) {
	m.tickets = tickets
	m.ticketDate = dateISO
	return "mem://tiket_quicktips_" + dateISO + ".csv", nil
}

func (m *memStore) LoadTickets(string) ([]model.Ticket, error) {
	return m.tickets, nil
}

func (m *memStore) Latest() (string, string, error) {
	if m.latestErr != nil {
		return "", "", m.latestErr
	}
	return "mem://tiket_quicktips_" + m.ticketDate + ".csv", m.ticketDate, nil
}

func (m *memStore) SaveTelegramTXT(tickets []model.Ticket, _ string) (string, error) {
	m.telegram = tickets
	return "mem://telegram.txt", nil
}

func (m *memStore) SaveEvaluated(verdicts []model.Verdict, _ string) (string, error) {
	m.evaluated = verdicts
	return "mem://evaluated.csv", nil
}

const quicktipsHTML = `<html><body><table>
	<tr><td>12.10</td><td>20:00</td><td>Bayern</td><td>Dortmund</td><td>40%</td><td>25%</td><td>35%</td></tr>
	<tr><td>12.10</td><td>20:00</td><td>Bayern</td><td>Dortmund</td><td>40%</td><td>25%</td><td>35%</td></tr>
	<tr><td>12.10</td><td>18:00</td><td>Slavia</td><td>Plzeň</td><td>30%</td><td>30%</td><td>40%</td></tr>
</table></body></html>`

func TestRunExtraction(t *testing.T) {
	Convey("Given an extraction pipeline with stub collaborators", t, func() {
		fetcher := &stubFetcher{html: quicktipsHTML}
		store := &memStore{}
		svc := app.New(
			app.WithFetcher(fetcher),
			app.WithStore(store),
			app.WithSourceURL("http://example.test/quicktips"),
		)

		Convey("When the page holds duplicate rows", func() {
			var buf bytes.Buffer
			err := svc.RunExtraction(context.Background(), &buf)

			Convey("Then duplicates collapse and artifacts are persisted", func() {
				So(err, ShouldBeNil)
				So(fetcher.url, ShouldEqual, "http://example.test/quicktips")
				So(store.tickets, ShouldHaveLength, 2)
				So(store.tickets[0].Match, ShouldEqual, "Bayern – Dortmund")
				So(store.telegram, ShouldHaveLength, 2)
				So(buf.String(), ShouldContainSubstring, "Matches: 2")
				So(buf.String(), ShouldContainSubstring, "Saved CSV: mem://")
			})
		})

		Convey("When the page holds no probability table", func() {
			fetcher.html = "<html><body><p>nothing here</p></body></html>"
			var buf bytes.Buffer
			err := svc.RunExtraction(context.Background(), &buf)

			Convey("Then the run succeeds with an empty ticket", func() {
				So(err, ShouldBeNil)
				So(store.tickets, ShouldBeEmpty)
				So(buf.String(), ShouldContainSubstring, "No parsable QuickTips rows found.")
			})
		})

		Convey("When the page fetch fails", func() {
			fetcher.err = errors.New("connection refused")
			var buf bytes.Buffer
			err := svc.RunExtraction(context.Background(), &buf)

			Convey("Then the collaborator failure aborts the run", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "load quicktips page")
			})
		})
	})
}

func TestRunEvaluation(t *testing.T) {
	Convey("Given an evaluation pipeline with stub collaborators", t, func() {
		store := &memStore{
			tickets: []model.Ticket{
				{Match: "Bayern – Dortmund", Tip: "1", P1: 40, PX: 25, P2: 35},
				{Match: "Unknown – Nobody", Tip: "2", P1: 10, PX: 20, P2: 70},
			},
			ticketDate: "2025-10-25",
		}
		feed := &stubFeed{
			records: []model.ResultRecord{
				{
					HomeName: "bayern",
					AwayName: "dortmund",
					Status:   model.StatusFinished,
					FullTime: model.Score{Home: intPtr(2), Away: intPtr(1)},
				},
			},
		}
		exact := match.New(match.WithSimilarity(func(a, b string) int {
			if a == b {
				return 100
			}
			return 0
		}))
		svc := app.New(
			app.WithResultsFeed(feed),
			app.WithStore(store),
			app.WithMatcher(exact),
		)

		Convey("When one ticket pairs and one does not", func() {
			var buf bytes.Buffer
			err := svc.RunEvaluation(context.Background(), &buf)

			Convey("Then verdicts split into correct and unresolved", func() {
				So(err, ShouldBeNil)
				So(feed.date, ShouldEqual, "2025-10-25")
				So(store.evaluated, ShouldHaveLength, 2)
				So(store.evaluated[0].Result, ShouldEqual, model.VerdictCorrect)
				So(store.evaluated[0].Outcome, ShouldEqual, "1")
				So(store.evaluated[1].Result, ShouldEqual, model.VerdictUnresolved)
				So(store.evaluated[1].Outcome, ShouldEqual, "?")
				So(buf.String(), ShouldContainSubstring, "Correct: 1   Incorrect: 0   Unresolved: 1")
			})
		})

		Convey("When the results feed is empty", func() {
			feed.records = nil
			var buf bytes.Buffer
			err := svc.RunEvaluation(context.Background(), &buf)

			Convey("Then every ticket is unresolved with score 0", func() {
				So(err, ShouldBeNil)
				So(store.evaluated, ShouldHaveLength, 2)
				for _, v := range store.evaluated {
					So(v.Result, ShouldEqual, model.VerdictUnresolved)
					So(v.FuzzyScore, ShouldEqual, 0)
				}
			})
		})

		Convey("When no ticket file exists", func() {
			store.latestErr = errors.New("no ticket file found")
			var buf bytes.Buffer
			err := svc.RunEvaluation(context.Background(), &buf)

			Convey("Then the run fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "locate ticket file")
			})
		})

		Convey("When the results feed fails", func() {
			feed.err = errors.New("rate limited")
			var buf bytes.Buffer
			err := svc.RunEvaluation(context.Background(), &buf)

			Convey("Then the collaborator failure aborts the run", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "load results feed")
			})
		})
	})
}
