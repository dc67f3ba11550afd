package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jsvoboda/tipsheet/internal/adapters/storage"
	"github.com/jsvoboda/tipsheet/internal/domain/model"
)

func intPtr(v int) *int { return &v }

func TestTicketRoundTrip(t *testing.T) {
	Convey("Given a store and a ticket list", t, func() {
		store := storage.New(t.TempDir())
		tickets := []model.Ticket{
			{Match: "Slavia Praha – Viktoria Plzeň", Tip: "1", P1: 45, PX: 30, P2: 25},
			{Match: "Bayern – Dortmund", Tip: "2", P1: 20, PX: 30, P2: 50},
			{Match: "?", Tip: "X", P1: 0, PX: 0, P2: 0},
		}

		Convey("When saving and loading the CSV", func() {
			path, err := store.SaveTickets(tickets, "2025-10-25")
			So(err, ShouldBeNil)
			So(filepath.Base(path), ShouldEqual, "tiket_quicktips_2025-10-25.csv")

			loaded, err := store.LoadTickets(path)

			Convey("Then every field round-trips exactly", func() {
				So(err, ShouldBeNil)
				So(loaded, ShouldResemble, tickets)
			})
		})

		Convey("When loading a missing file", func() {
			_, err := store.LoadTickets(filepath.Join(t.TempDir(), "absent.csv"))

			Convey("Then a load error is reported", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, storage.ErrLoad.Error())
			})
		})
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a data directory", t, func() {
		dir := t.TempDir()
		store := storage.New(dir)

		Convey("When no ticket file exists", func() {
			_, _, err := store.Latest()

			Convey("Then the dedicated sentinel is returned", func() {
				So(err, ShouldEqual, storage.ErrNoTickets)
			})
		})

		Convey("When several ticket files exist", func() {
			old, err := store.SaveTickets([]model.Ticket{{Match: "Old – Game", Tip: "1"}}, "2025-10-24")
			So(err, ShouldBeNil)
			fresh, err := store.SaveTickets([]model.Ticket{{Match: "New – Game", Tip: "2"}}, "2025-10-25")
			So(err, ShouldBeNil)

			past := time.Now().Add(-time.Hour)
			So(os.Chtimes(old, past, past), ShouldBeNil)

			path, dateISO, err := store.Latest()

			Convey("Then the newest file and its filename date win", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, fresh)
				So(dateISO, ShouldEqual, "2025-10-25")
			})
		})
	})
}

func TestDateFromFilename(t *testing.T) {
	Convey("Given ticket filenames", t, func() {
		Convey("When an ISO date is embedded", func() {
			So(storage.DateFromFilename("tiket_quicktips_2025-10-25.csv"), ShouldEqual, "2025-10-25")
		})

		Convey("When no date is embedded", func() {
			Convey("Then today is the fallback", func() {
				So(storage.DateFromFilename("tiket_quicktips.csv"), ShouldEqual, time.Now().Format("2006-01-02"))
			})
		})
	})
}

func TestSaveTelegramTXT(t *testing.T) {
	Convey("Given tickets to render", t, func() {
		dir := t.TempDir()
		store := storage.New(dir)
		tickets := []model.Ticket{
			{Match: "Slavia – Plzeň", Tip: "1", P1: 45, PX: 30, P2: 25},
		}

		Convey("When writing the TXT artifact", func() {
			path, err := store.SaveTelegramTXT(tickets, "2025-10-25")
			So(err, ShouldBeNil)

			raw, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			body := string(raw)

			Convey("Then each ticket uses the fixed line format", func() {
				So(body, ShouldContainSubstring, "Slavia – Plzeň 1 45 30 25")
				So(body, ShouldContainSubstring, "Matches: 1")
				So(strings.HasPrefix(body, "TICKET 25.10.2025"), ShouldBeTrue)
			})
		})
	})
}

func TestSaveEvaluated(t *testing.T) {
	Convey("Given verdicts to persist", t, func() {
		dir := t.TempDir()
		store := storage.New(dir)

		matched := &model.ResultRecord{
			HomeName:    "FC Bayern München",
			AwayName:    "Borussia Dortmund",
			Status:      model.StatusFinished,
			FullTime:    model.Score{Home: intPtr(2), Away: intPtr(1)},
			Competition: "Bundesliga",
			UTCDate:     "2025-10-25T16:30:00Z",
		}
		verdicts := []model.Verdict{
			{
				Ticket:     model.Ticket{Match: "Bayern – Dortmund", Tip: "1", P1: 40, PX: 25, P2: 35},
				Matched:    matched,
				Outcome:    model.OutcomeHome,
				FuzzyScore: 95,
				Result:     model.VerdictCorrect,
			},
			{
				Ticket:  model.Ticket{Match: "Unknown – Nobody", Tip: "2"},
				Outcome: model.OutcomeUnknown,
				Result:  model.VerdictUnresolved,
			},
		}

		Convey("When writing the evaluated CSV", func() {
			path, err := store.SaveEvaluated(verdicts, "2025-10-25")
			So(err, ShouldBeNil)
			So(filepath.Base(path), ShouldEqual, "evaluated_quicktips_2025-10-25.csv")

			raw, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			body := string(raw)

			Convey("Then matched and unmatched rows carry their columns", func() {
				So(body, ShouldContainSubstring, "Bayern – Dortmund;1;40;25;35;FINISHED;2:1;1;1;")
				So(body, ShouldContainSubstring, "Bundesliga")
				So(body, ShouldContainSubstring, "Unknown – Nobody;2;0;0;0;;—;?;;")
			})
		})
	})
}
