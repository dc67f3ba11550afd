package outcome_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jsvoboda/tipsheet/internal/domain/model"
	"github.com/jsvoboda/tipsheet/internal/domain/outcome"
)

func intPtr(v int) *int { return &v }

func finished(home, away int) *model.ResultRecord {
	return &model.ResultRecord{
		Status:   model.StatusFinished,
		FullTime: model.Score{Home: intPtr(home), Away: intPtr(away)},
	}
}

func TestResolve(t *testing.T) {
	Convey("Given result records", t, func() {
		Convey("When the record is missing", func() {
			So(outcome.Resolve(nil), ShouldEqual, model.OutcomeUnknown)
		})

		Convey("When the match is not final", func() {
			rec := &model.ResultRecord{
				Status:   model.StatusScheduled,
				FullTime: model.Score{Home: intPtr(3), Away: intPtr(0)},
			}

			Convey("Then even reported goals do not resolve it", func() {
				So(outcome.Resolve(rec), ShouldEqual, model.OutcomeUnknown)
			})
		})

		Convey("When the match is final without goal counts", func() {
			rec := &model.ResultRecord{Status: model.StatusFinished}
			So(outcome.Resolve(rec), ShouldEqual, model.OutcomeUnknown)
		})

		Convey("When the match is final with goals", func() {
			So(outcome.Resolve(finished(2, 1)), ShouldEqual, model.OutcomeHome)
			So(outcome.Resolve(finished(0, 2)), ShouldEqual, model.OutcomeAway)
			So(outcome.Resolve(finished(1, 1)), ShouldEqual, model.OutcomeDraw)
		})

		Convey("When the match was awarded", func() {
			rec := &model.ResultRecord{
				Status:   model.StatusAwarded,
				FullTime: model.Score{Home: intPtr(3), Away: intPtr(0)},
			}
			So(outcome.Resolve(rec), ShouldEqual, model.OutcomeHome)
		})
	})
}

func TestJudge(t *testing.T) {
	Convey("Given a tip and a resolved symbol", t, func() {
		Convey("When the symbol is unknown", func() {
			So(outcome.Judge("1", model.OutcomeUnknown), ShouldEqual, model.VerdictUnresolved)
		})

		Convey("When the symbol matches the tip", func() {
			So(outcome.Judge("X", model.OutcomeDraw), ShouldEqual, model.VerdictCorrect)
		})

		Convey("When the symbol differs from the tip", func() {
			So(outcome.Judge("1", model.OutcomeAway), ShouldEqual, model.VerdictIncorrect)
		})
	})
}

func TestVerdict(t *testing.T) {
	Convey("Given matched tickets", t, func() {
		ticket := model.Ticket{Match: "Bayern – Dortmund", Tip: "1", P1: 40, PX: 25, P2: 35}

		Convey("When the paired match finished in the ticket's favor", func() {
			v := outcome.Verdict(model.MatchedTicket{Ticket: ticket, Result: finished(2, 1), Score: 95})

			Convey("Then the verdict is correct with the pairing score", func() {
				So(v.Result, ShouldEqual, model.VerdictCorrect)
				So(v.Outcome, ShouldEqual, model.OutcomeHome)
				So(v.FuzzyScore, ShouldEqual, 95)
				So(v.Matched, ShouldNotBeNil)
			})
		})

		Convey("When no result was paired", func() {
			v := outcome.Verdict(model.MatchedTicket{Ticket: ticket, Result: nil, Score: 0})

			Convey("Then the verdict is unresolved with the sentinel symbol", func() {
				So(v.Result, ShouldEqual, model.VerdictUnresolved)
				So(v.Outcome, ShouldEqual, model.OutcomeUnknown)
				So(v.Matched, ShouldBeNil)
			})
		})
	})
}
