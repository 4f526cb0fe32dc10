package timing

import (
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/f1-interval-tracker-go/log"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/model"
)

// Store accumulates the lap and position records of a session.
// Ingest merges by key with last-write-wins semantics.
// Safe for one writer and multiple readers.
type Store struct {
	mu        sync.RWMutex
	laps      map[int]map[int]model.LapRecord            // competitorID -> lapNumber
	positions map[int]map[time.Time]model.PositionRecord // competitorID -> timestamp
	l         *log.Logger
}

type StoreOption func(s *Store)

func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		s.l = l
	}
}

func NewStore(opts ...StoreOption) *Store {
	ret := &Store{
		laps:      make(map[int]map[int]model.LapRecord),
		positions: make(map[int]map[time.Time]model.PositionRecord),
		l:         log.Default().Named("timing"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// IngestLaps merges records keyed by (competitor, lap number).
// Malformed records are skipped and logged; the number of dropped
// records is returned so callers can surface partial upstream data.
func (s *Store) IngestLaps(records []model.LapRecord) int {
	if len(records) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for i := range records {
		rec := records[i]
		if !rec.Valid() {
			dropped++
			s.l.Warn("dropping malformed lap record",
				log.Int("competitorId", rec.CompetitorID),
				log.Int("lap", rec.LapNumber))
			continue
		}
		byLap, ok := s.laps[rec.CompetitorID]
		if !ok {
			byLap = make(map[int]model.LapRecord)
			s.laps[rec.CompetitorID] = byLap
		}
		byLap[rec.LapNumber] = rec
	}
	return dropped
}

// IngestPositions merges records keyed by (competitor, timestamp).
func (s *Store) IngestPositions(records []model.PositionRecord) int {
	if len(records) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for i := range records {
		rec := records[i]
		if !rec.Valid() {
			dropped++
			s.l.Warn("dropping malformed position record",
				log.Int("competitorId", rec.CompetitorID),
				log.Time("timestamp", rec.Timestamp))
			continue
		}
		byStamp, ok := s.positions[rec.CompetitorID]
		if !ok {
			byStamp = make(map[time.Time]model.PositionRecord)
			s.positions[rec.CompetitorID] = byStamp
		}
		byStamp[rec.Timestamp] = rec
	}
	return dropped
}

// Laps returns a copy of the competitor's lap records sorted by lap number.
func (s *Store) Laps(competitorID int) []model.LapRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := lo.Values(s.laps[competitorID])
	slices.SortFunc(ret, func(a, b model.LapRecord) int {
		return a.LapNumber - b.LapNumber
	})
	return ret
}

// Positions returns a copy of the competitor's position reports sorted by time.
func (s *Store) Positions(competitorID int) []model.PositionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := lo.Values(s.positions[competitorID])
	slices.SortFunc(ret, func(a, b model.PositionRecord) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return ret
}

// CompetitorIDs lists all competitors with at least one lap record, ascending.
func (s *Store) CompetitorIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := lo.Keys(s.laps)
	slices.Sort(ret)
	return ret
}

// Reset clears all accumulated records. Callers own session-change semantics;
// there is no implicit expiry.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.laps = make(map[int]map[int]model.LapRecord)
	s.positions = make(map[int]map[time.Time]model.PositionRecord)
}
