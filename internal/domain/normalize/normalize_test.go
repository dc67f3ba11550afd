package normalize_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jsvoboda/tipsheet/internal/domain/normalize"
)

func TestName(t *testing.T) {
	Convey("Given free-text team names", t, func() {
		Convey("When normalizing differently formatted spellings", func() {
			Convey("Then case and club suffixes are ignored", func() {
				So(normalize.Name("AC Milan FC"), ShouldEqual, normalize.Name("ac milan"))
				So(normalize.Name("Arsenal AFC"), ShouldEqual, "arsenal")
				So(normalize.Name("CF Valencia"), ShouldEqual, "valencia")
			})

			Convey("Then diacritics and punctuation collapse to spaces", func() {
				So(normalize.Name("Bayern München"), ShouldEqual, "bayern m nchen")
				So(normalize.Name("St. Pauli"), ShouldEqual, "st pauli")
				So(normalize.Name("  Sparta   Praha  "), ShouldEqual, "sparta praha")
			})
		})

		Convey("When normalizing twice", func() {
			inputs := []string{"FC Bayern München", "Slavia Praha", "", "???", "Real – Madrid"}

			Convey("Then the result is idempotent", func() {
				for _, in := range inputs {
					once := normalize.Name(in)
					So(normalize.Name(once), ShouldEqual, once)
				}
			})
		})

		Convey("When the input is empty", func() {
			Convey("Then the result is the empty string", func() {
				So(normalize.Name(""), ShouldEqual, "")
				So(normalize.Name("   "), ShouldEqual, "")
				So(normalize.Name("–"), ShouldEqual, "")
			})
		})
	})
}
