package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/f1-interval-tracker-go/log"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/model"
)

// Recording is a recorded session loaded from disk. The file layout matches
// the dashboard recorder output: metadata plus raw lap and position rows.
type Recording struct {
	Metadata  Metadata
	Laps      []model.LapRecord
	Positions []model.PositionRecord
}

type Metadata struct {
	SessionName string
	RecordedAt  string
	Drivers     map[string]Driver // key: driver number as string
}

type Driver struct {
	DriverNumber int    `json:"driver_number"`
	NameAcronym  string `json:"name_acronym"`
	FullName     string `json:"full_name"`
	TeamName     string `json:"team_name"`
}

//nolint:tagliatelle // recording files use the timing feed's snake_case
type rawRecording struct {
	Metadata struct {
		SessionName string            `json:"session_name"`
		RecordedAt  string            `json:"recorded_at"`
		Drivers     map[string]Driver `json:"drivers"`
	} `json:"metadata"`
	LapData []struct {
		DriverNumber int    `json:"driver_number"`
		LapNumber    int    `json:"lap_number"`
		DateStart    string `json:"date_start"`
		Position     int    `json:"position"`
	} `json:"lap_data"`
	PositionData []struct {
		DriverNumber int    `json:"driver_number"`
		Date         string `json:"date"`
		Position     int    `json:"position"`
	} `json:"position_data"`
}

// Load reads a recorded session file. Rows with unparseable timestamps keep
// a zero time and are rejected later by the store's ingest validation.
func Load(path string) (*Recording, error) {
	l := log.Default().Named("session")
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recording %s: %w", path, err)
	}
	var raw rawRecording
	if err := oj.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("parsing recording %s: %w", path, err)
	}
	ret := &Recording{
		Metadata: Metadata{
			SessionName: raw.Metadata.SessionName,
			RecordedAt:  raw.Metadata.RecordedAt,
			Drivers:     raw.Metadata.Drivers,
		},
		Laps:      make([]model.LapRecord, 0, len(raw.LapData)),
		Positions: make([]model.PositionRecord, 0, len(raw.PositionData)),
	}
	for i := range raw.LapData {
		row := raw.LapData[i]
		ret.Laps = append(ret.Laps, model.LapRecord{
			CompetitorID: row.DriverNumber,
			LapNumber:    row.LapNumber,
			CrossingTime: parseStamp(row.DateStart),
			Position:     row.Position,
		})
	}
	for i := range raw.PositionData {
		row := raw.PositionData[i]
		ret.Positions = append(ret.Positions, model.PositionRecord{
			CompetitorID: row.DriverNumber,
			Timestamp:    parseStamp(row.Date),
			Position:     row.Position,
		})
	}
	l.Info("loaded recording",
		log.String("session", ret.Metadata.SessionName),
		log.Int("laps", len(ret.Laps)),
		log.Int("positions", len(ret.Positions)))
	return ret, nil
}

// parseStamp accepts the timing feed's ISO timestamps with or without a
// timezone offset.
func parseStamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ListRecordings returns the recording names (file stem, sorted) found in dir.
func ListRecordings(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing recordings in %s: %w", dir, err)
	}
	ret := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		ret = append(ret, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
	}
	sort.Strings(ret)
	return ret, nil
}
