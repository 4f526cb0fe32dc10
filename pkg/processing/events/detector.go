package events

import (
	"slices"

	"github.com/mpapenbr/f1-interval-tracker-go/log"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/config"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/model"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/processing/laptime"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/timing"
)

// Detector scans a competitor's lap durations for anomalies.
type Detector struct {
	store     *timing.Store
	estimator *laptime.Estimator
	pitMargin float64 // seconds over average lap time that flags a pit stop
	l         *log.Logger
}

type DetectorOption func(d *Detector)

func WithEstimator(est *laptime.Estimator) DetectorOption {
	return func(d *Detector) {
		d.estimator = est
	}
}

func WithSettings(settings config.Analysis) DetectorOption {
	return func(d *Detector) {
		d.pitMargin = settings.PitMargin
	}
}

func NewDetector(store *timing.Store, opts ...DetectorOption) *Detector {
	ret := &Detector{
		store:     store,
		pitMargin: config.DefaultAnalysis().PitMargin,
		l:         log.Default().Named("events"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.estimator == nil {
		ret.estimator = laptime.NewEstimator(store)
	}
	return ret
}

// PitStops flags every lap whose duration exceeds the competitor's average
// lap time by more than the pit margin. Events come in ascending lap order.
// Without a reliable average the result is empty, never an error.
func (d *Detector) PitStops(competitorID int) []model.Event {
	ret := make([]model.Event, 0)
	laps := d.store.Laps(competitorID)
	if len(laps) < 2 {
		return ret
	}
	avg, ok := d.estimator.AverageLap(competitorID)
	if !ok {
		d.l.Debug("no average lap time, skipping pit detection",
			log.Int("competitorId", competitorID))
		return ret
	}
	for i := 1; i < len(laps); i++ {
		delta := laps[i].CrossingTime.Sub(laps[i-1].CrossingTime).Seconds()
		if delta > avg+d.pitMargin {
			ret = append(ret, model.Event{
				Type:         model.EventPitStop,
				CompetitorID: competitorID,
				LapNumber:    laps[i].LapNumber,
				Duration:     delta - avg,
			})
		}
	}
	return ret
}

// Merge combines the events of several competitors into one sequence with a
// stable sort by lap number. Events of the same lap keep their input order.
func Merge(eventLists ...[]model.Event) []model.Event {
	ret := make([]model.Event, 0)
	for _, list := range eventLists {
		ret = append(ret, list...)
	}
	slices.SortStableFunc(ret, func(a, b model.Event) int {
		return a.LapNumber - b.LapNumber
	})
	return ret
}
