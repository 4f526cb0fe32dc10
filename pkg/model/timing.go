package model

import "time"

// LapRecord marks a competitor crossing the timing line at the start of a lap.
// Records are unique per (CompetitorID, LapNumber); a later ingested record
// for the same key replaces the earlier one.
type LapRecord struct {
	CompetitorID int       `json:"driverNumber"`
	LapNumber    int       `json:"lapNumber"`
	CrossingTime time.Time `json:"dateStart"`
	Position     int       `json:"position"`
}

// PositionRecord is a coarse running-order report between line crossings.
// Unique per (CompetitorID, Timestamp), last write wins.
type PositionRecord struct {
	CompetitorID int       `json:"driverNumber"`
	Timestamp    time.Time `json:"date"`
	Position     int       `json:"position"`
}

// Valid reports whether the record carries all required fields.
func (r LapRecord) Valid() bool {
	return r.CompetitorID > 0 && r.LapNumber > 0 && !r.CrossingTime.IsZero() &&
		r.Position > 0
}

func (r PositionRecord) Valid() bool {
	return r.CompetitorID > 0 && !r.Timestamp.IsZero() && r.Position > 0
}

// IntervalSample is one point of the interval series between two competitors.
// Sign convention: positive interval means the first-named competitor is ahead.
// IntervalDelta and ClosingRate are nil until enough preceding samples exist.
type IntervalSample struct {
	LapNumber     int      `json:"lapNumber"`
	Interval      float64  `json:"interval"`
	PositionA     int      `json:"positionA"`
	PositionB     int      `json:"positionB"`
	IntervalDelta *float64 `json:"intervalDelta,omitempty"`
	ClosingRate   *float64 `json:"closingRate,omitempty"`
}

type Trend string

const (
	TrendUnknown   Trend = "unknown"
	TrendClosing   Trend = "closing"
	TrendExtending Trend = "extending"
	TrendStable    Trend = "stable"
)

// IntervalSnapshot is the latest state of a pair comparison.
// Interval is nil when the pair has no common lap yet.
type IntervalSnapshot struct {
	Interval    *float64 `json:"interval"`
	LapNumber   int      `json:"lapNumber"`
	Trend       Trend    `json:"trend"`
	ClosingRate float64  `json:"closingRate"`
	PositionA   int      `json:"positionA"`
	PositionB   int      `json:"positionB"`
}

type EventType string

const EventPitStop EventType = "pit_stop"

// Event is a detected anomaly in a competitor's lap sequence.
// Duration is the excess over the competitor's average lap time.
type Event struct {
	Type         EventType `json:"type"`
	CompetitorID int       `json:"driverNumber"`
	LapNumber    int       `json:"lapNumber"`
	Duration     float64   `json:"duration"`
}
