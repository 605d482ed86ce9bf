package status_test

import (
	"math"
	"testing"
	"time"

	"github.com/okian/evstatus/internal/domain/model"
	"github.com/okian/evstatus/internal/domain/status"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDerive(t *testing.T) {
	Convey("Given events around a fixed instant", t, func() {
		offsets := []time.Duration{
			-72 * time.Hour, -5 * time.Hour, -90 * time.Minute, -time.Hour - time.Nanosecond,
			-time.Hour, -time.Second, -time.Nanosecond, 0, time.Nanosecond, time.Hour, 72 * time.Hour,
		}
		windows := []float64{0, 0.25, 1, 1.5, 24}

		Convey("When the end date is at or after now", func() {
			Convey("Then the status should always be active", func() {
				for _, off := range offsets {
					if off < 0 {
						continue
					}
					for _, h := range windows {
						ev := model.LastEvent{EndDate: t0.Add(off), ReviewDurationInHours: h}
						So(status.Derive(t0, ev), ShouldEqual, status.StatusActive)
					}
				}
			})
		})

		Convey("When now falls inside the review window", func() {
			Convey("Then the status should be inReview", func() {
				for _, off := range offsets {
					for _, h := range windows {
						ev := model.LastEvent{EndDate: t0.Add(off), ReviewDurationInHours: h}
						if !ev.EndDate.Before(t0) || ev.ReviewEnd().Before(t0) {
							continue
						}
						So(status.Derive(t0, ev), ShouldEqual, status.StatusInReview)
					}
				}
			})
		})

		Convey("When the review window has closed", func() {
			Convey("Then the status should be done", func() {
				for _, off := range offsets {
					for _, h := range windows {
						ev := model.LastEvent{EndDate: t0.Add(off), ReviewDurationInHours: h}
						if !ev.ReviewEnd().Before(t0) {
							continue
						}
						So(status.Derive(t0, ev), ShouldEqual, status.StatusDone)
					}
				}
			})
		})

		Convey("When the review window is zero and the event just ended", func() {
			ev := model.LastEvent{EndDate: t0.Add(-time.Nanosecond)}

			Convey("Then the status should skip straight to done", func() {
				So(status.Derive(t0, ev), ShouldEqual, status.StatusDone)
			})
		})

		Convey("When the review window is larger than a Duration can hold", func() {
			for _, h := range []float64{3e6, 1e9, math.MaxFloat64} {
				ev := model.LastEvent{EndDate: t0.Add(-time.Hour), ReviewDurationInHours: h}

				So(status.Derive(t0, ev), ShouldEqual, status.StatusInReview)
				So(status.Derive(t0.Add(-2*time.Hour), ev), ShouldEqual, status.StatusActive)
			}
		})

		Convey("When time moves forward", func() {
			ev := model.LastEvent{EndDate: t0, ReviewDurationInHours: 1}
			order := map[status.Status]int{status.StatusActive: 0, status.StatusInReview: 1, status.StatusDone: 2}

			Convey("Then the status should never move backwards", func() {
				prev := status.StatusActive
				for step := -2 * time.Hour; step <= 3*time.Hour; step += 15 * time.Minute {
					cur := status.Derive(t0.Add(step), ev)
					So(order[cur], ShouldBeGreaterThanOrEqualTo, order[prev])
					prev = cur
				}
				So(prev, ShouldEqual, status.StatusDone)
			})
		})
	})
}

func TestStatus_Valid(t *testing.T) {
	Convey("Given status values", t, func() {
		Convey("Then the known statuses should be valid", func() {
			So(status.StatusActive.Valid(), ShouldBeTrue)
			So(status.StatusInReview.Valid(), ShouldBeTrue)
			So(status.StatusDone.Valid(), ShouldBeTrue)
			So(status.StatusInReview.String(), ShouldEqual, "inReview")
		})

		Convey("And unknown values should be invalid", func() {
			So(status.Status("").Valid(), ShouldBeFalse)
			So(status.Status("in_review").Valid(), ShouldBeFalse)
		})
	})
}
