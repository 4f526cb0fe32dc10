// Package timingdata provides canned timing records for tests.
package timingdata

import (
	"time"

	"github.com/mpapenbr/f1-interval-tracker-go/pkg/model"
)

// SessionStart is the common reference clock for generated records.
var SessionStart = time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)

// LapsFromDurations builds a competitor's lap records: the first crossing at
// start, each following crossing after the given duration (seconds).
func LapsFromDurations(
	competitorID int,
	start time.Time,
	position int,
	durations ...float64,
) []model.LapRecord {
	ret := make([]model.LapRecord, 0, len(durations)+1)
	cur := start
	ret = append(ret, model.LapRecord{
		CompetitorID: competitorID,
		LapNumber:    1,
		CrossingTime: cur,
		Position:     position,
	})
	for i, dur := range durations {
		cur = cur.Add(time.Duration(dur * float64(time.Second)))
		ret = append(ret, model.LapRecord{
			CompetitorID: competitorID,
			LapNumber:    i + 2,
			CrossingTime: cur,
			Position:     position,
		})
	}
	return ret
}

// LapsFromOffsets builds lap records crossing at start plus the given offsets
// (seconds), one lap number per offset starting at lap 1.
func LapsFromOffsets(
	competitorID int,
	start time.Time,
	position int,
	offsets ...float64,
) []model.LapRecord {
	ret := make([]model.LapRecord, 0, len(offsets))
	for i, off := range offsets {
		ret = append(ret, model.LapRecord{
			CompetitorID: competitorID,
			LapNumber:    i + 1,
			CrossingTime: start.Add(time.Duration(off * float64(time.Second))),
			Position:     position,
		})
	}
	return ret
}
