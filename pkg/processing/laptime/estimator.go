package laptime

import (
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/config"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/timing"
)

// Estimator computes a robust average lap duration for a competitor.
// Consecutive crossing deltas outside the plausibility bounds are
// discarded; this filters pit stops, red flags and formation laps.
type Estimator struct {
	store  *timing.Store
	minLap float64 // seconds, exclusive
	maxLap float64 // seconds, exclusive
}

type EstimatorOption func(e *Estimator)

// WithBounds overrides the lap duration plausibility bounds (seconds).
// Both bounds are exclusive.
func WithBounds(minLap, maxLap float64) EstimatorOption {
	return func(e *Estimator) {
		e.minLap = minLap
		e.maxLap = maxLap
	}
}

func WithSettings(settings config.Analysis) EstimatorOption {
	return WithBounds(settings.LapTimeMin, settings.LapTimeMax)
}

func NewEstimator(store *timing.Store, opts ...EstimatorOption) *Estimator {
	defaults := config.DefaultAnalysis()
	ret := &Estimator{
		store:  store,
		minLap: defaults.LapTimeMin,
		maxLap: defaults.LapTimeMax,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// AverageLap returns the mean of the competitor's plausible lap durations
// in seconds. ok is false when fewer than two lap records exist or every
// delta falls outside the bounds.
func (e *Estimator) AverageLap(competitorID int) (avg float64, ok bool) {
	laps := e.store.Laps(competitorID)
	if len(laps) < 2 {
		return 0, false
	}
	sum := 0.0
	count := 0
	for i := 1; i < len(laps); i++ {
		delta := laps[i].CrossingTime.Sub(laps[i-1].CrossingTime).Seconds()
		if delta <= e.minLap || delta >= e.maxLap {
			continue
		}
		sum += delta
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
