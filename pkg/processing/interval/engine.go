package interval

import (
	"github.com/mpapenbr/f1-interval-tracker-go/log"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/config"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/model"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/processing/laptime"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/timing"
)

// Engine computes interval series and snapshots between competitor pairs
// from the accumulated lap records.
// Sign convention: positive interval means the first-named competitor is ahead.
type Engine struct {
	store     *timing.Store
	estimator *laptime.Estimator
	window    int     // smoothing window for closing rate and trend
	threshold float64 // +/- band (sec) treated as a stable gap
	l         *log.Logger
}

type EngineOption func(e *Engine)

func WithEstimator(est *laptime.Estimator) EngineOption {
	return func(e *Engine) {
		e.estimator = est
	}
}

func WithSettings(settings config.Analysis) EngineOption {
	return func(e *Engine) {
		e.window = settings.TrendWindow
		e.threshold = settings.TrendThreshold
	}
}

func NewEngine(store *timing.Store, opts ...EngineOption) *Engine {
	defaults := config.DefaultAnalysis()
	ret := &Engine{
		store:     store,
		window:    defaults.TrendWindow,
		threshold: defaults.TrendThreshold,
		l:         log.Default().Named("interval"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.estimator == nil {
		ret.estimator = laptime.NewEstimator(store)
	}
	return ret
}

// Series computes one sample per lap number present in both competitors'
// records, ordered by lap number. Laps present for only one competitor are
// dropped from the join; the series never interpolates a missing lap.
func (e *Engine) Series(a, b int) []model.IntervalSample {
	lapsA := e.store.Laps(a)
	lapsB := e.store.Laps(b)
	if len(lapsA) == 0 || len(lapsB) == 0 {
		return []model.IntervalSample{}
	}
	byLapB := make(map[int]model.LapRecord, len(lapsB))
	for i := range lapsB {
		byLapB[lapsB[i].LapNumber] = lapsB[i]
	}

	ret := make([]model.IntervalSample, 0, len(lapsA))
	for i := range lapsA {
		recB, ok := byLapB[lapsA[i].LapNumber]
		if !ok {
			continue
		}
		ret = append(ret, model.IntervalSample{
			LapNumber: lapsA[i].LapNumber,
			Interval:  recB.CrossingTime.Sub(lapsA[i].CrossingTime).Seconds(),
			PositionA: lapsA[i].Position,
			PositionB: recB.Position,
		})
	}
	e.deriveRates(ret)
	return ret
}

// deriveRates fills IntervalDelta and ClosingRate in place.
// The delta exists from the second sample on; the closing rate is the
// trailing mean of the last window deltas and exists once window deltas
// are available.
func (e *Engine) deriveRates(samples []model.IntervalSample) {
	for i := 1; i < len(samples); i++ {
		delta := samples[i].Interval - samples[i-1].Interval
		samples[i].IntervalDelta = &delta
		if i < e.window {
			continue
		}
		sum := 0.0
		for j := i - e.window + 1; j <= i; j++ {
			sum += *samples[j].IntervalDelta
		}
		rate := sum / float64(e.window)
		samples[i].ClosingRate = &rate
	}
}

// CurrentSnapshot returns the latest sample of the pair plus a trend
// classification. With no common lap it returns the sentinel snapshot
// (nil interval, zero positions, trend unknown).
func (e *Engine) CurrentSnapshot(a, b int) model.IntervalSnapshot {
	series := e.Series(a, b)
	if len(series) == 0 {
		return model.IntervalSnapshot{Trend: model.TrendUnknown}
	}
	latest := series[len(series)-1]
	ret := model.IntervalSnapshot{
		Interval:  &latest.Interval,
		LapNumber: latest.LapNumber,
		Trend:     e.classifyTrend(series),
		PositionA: latest.PositionA,
		PositionB: latest.PositionB,
	}
	if latest.ClosingRate != nil {
		ret.ClosingRate = *latest.ClosingRate
	}
	return ret
}

func (e *Engine) classifyTrend(series []model.IntervalSample) model.Trend {
	if len(series) < e.window {
		return model.TrendUnknown
	}
	sum := 0.0
	count := 0
	for i := max(1, len(series)-e.window); i < len(series); i++ {
		sum += *series[i].IntervalDelta
		count++
	}
	if count == 0 {
		return model.TrendUnknown
	}
	mean := sum / float64(count)
	switch {
	case mean < -e.threshold:
		return model.TrendClosing
	case mean > e.threshold:
		return model.TrendExtending
	default:
		return model.TrendStable
	}
}

// IntervalAt compares the latest line crossing of each competitor.
// On the same lap the interval is the crossing time difference. When the
// competitors are on different laps (lapped) the gap is estimated as
// lap difference times the trailing competitor's average lap time; ok is
// false when no reliable average is available. This estimate applies to
// the single-point query only, never to Series.
func (e *Engine) IntervalAt(a, b int) (interval float64, ok bool) {
	latestA, okA := e.latestCrossing(a)
	latestB, okB := e.latestCrossing(b)
	if !okA || !okB {
		return 0, false
	}
	lapDiff := latestA.LapNumber - latestB.LapNumber
	if lapDiff != 0 {
		trailing := b
		if lapDiff < 0 {
			trailing = a
		}
		avg, avgOK := e.estimator.AverageLap(trailing)
		if !avgOK {
			e.l.Debug("no reliable average lap for lapped gap estimate",
				log.Int("competitorId", trailing))
			return 0, false
		}
		return float64(lapDiff) * avg, true
	}
	return latestB.CrossingTime.Sub(latestA.CrossingTime).Seconds(), true
}

func (e *Engine) latestCrossing(competitorID int) (model.LapRecord, bool) {
	laps := e.store.Laps(competitorID)
	if len(laps) == 0 {
		return model.LapRecord{}, false
	}
	latest := laps[0]
	for i := 1; i < len(laps); i++ {
		if laps[i].CrossingTime.After(latest.CrossingTime) {
			latest = laps[i]
		}
	}
	return latest, true
}
