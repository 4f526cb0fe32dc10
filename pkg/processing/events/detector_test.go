package events

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-interval-tracker-go/pkg/model"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/timing"
	"github.com/mpapenbr/f1-interval-tracker-go/testsupport/timingdata"
)

func TestDetector_PitStops(t *testing.T) {
	store := timing.NewStore()
	// clean 90s pace with one 155s stop lap; the stop lap is outside the
	// plausibility bounds and does not shift the 90s baseline
	store.IngestLaps(timingdata.LapsFromDurations(1, timingdata.SessionStart, 1,
		90, 90, 155, 90, 90))
	detector := NewDetector(store)

	got := detector.PitStops(1)
	require.Len(t, got, 1)
	assert.Equal(t, model.EventPitStop, got[0].Type)
	assert.Equal(t, 1, got[0].CompetitorID)
	assert.Equal(t, 4, got[0].LapNumber) // the lap completed by the slow crossing
	assert.InDelta(t, 65.0, got[0].Duration, 0.0001)
}

func TestDetector_PitStopsBelowMargin(t *testing.T) {
	store := timing.NewStore()
	// 110s lap is slow but within the 30s margin over the 90s average
	store.IngestLaps(timingdata.LapsFromDurations(1, timingdata.SessionStart, 1,
		90, 90, 110, 90))
	assert.Empty(t, NewDetector(store).PitStops(1))
}

func TestDetector_PitStopsNoAverage(t *testing.T) {
	store := timing.NewStore()
	// two crossings, delta outside plausibility bounds: no baseline
	store.IngestLaps(timingdata.LapsFromOffsets(1, timingdata.SessionStart, 1, 0, 200))
	assert.Empty(t, NewDetector(store).PitStops(1))
}

func TestDetector_PitStopsAscendingOrder(t *testing.T) {
	store := timing.NewStore()
	store.IngestLaps(timingdata.LapsFromDurations(1, timingdata.SessionStart, 1,
		90, 160, 90, 90, 160, 90))
	got := NewDetector(store).PitStops(1)
	require.Len(t, got, 2)
	assert.Less(t, got[0].LapNumber, got[1].LapNumber)
}

func TestMerge(t *testing.T) {
	carOne := []model.Event{
		{Type: model.EventPitStop, CompetitorID: 1, LapNumber: 12, Duration: 22},
		{Type: model.EventPitStop, CompetitorID: 1, LapNumber: 40, Duration: 21},
	}
	carTwo := []model.Event{
		{Type: model.EventPitStop, CompetitorID: 44, LapNumber: 12, Duration: 23},
		{Type: model.EventPitStop, CompetitorID: 44, LapNumber: 30, Duration: 24},
	}

	want := []model.Event{
		{Type: model.EventPitStop, CompetitorID: 1, LapNumber: 12, Duration: 22},
		{Type: model.EventPitStop, CompetitorID: 44, LapNumber: 12, Duration: 23},
		{Type: model.EventPitStop, CompetitorID: 44, LapNumber: 30, Duration: 24},
		{Type: model.EventPitStop, CompetitorID: 1, LapNumber: 40, Duration: 21},
	}
	if diff := cmp.Diff(want, Merge(carOne, carTwo)); diff != "" {
		t.Errorf("unexpected merge result: %s", diff)
	}
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge())
	assert.Empty(t, Merge(nil, []model.Event{}))
}
