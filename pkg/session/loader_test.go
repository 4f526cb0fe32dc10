package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-interval-tracker-go/pkg/timing"
)

func TestLoad(t *testing.T) {
	rec, err := Load(filepath.Join("testdata", "monza_2024.json"))
	require.NoError(t, err)

	assert.Equal(t, "monza_2024_race", rec.Metadata.SessionName)
	assert.Equal(t, "VER", rec.Metadata.Drivers["1"].NameAcronym)
	assert.Equal(t, "HAM", rec.Metadata.Drivers["44"].NameAcronym)
	assert.Len(t, rec.Laps, 5)
	assert.Len(t, rec.Positions, 2)

	assert.Equal(t, 1, rec.Laps[0].CompetitorID)
	assert.Equal(t, 1, rec.Laps[0].LapNumber)
	assert.Equal(t, 1, rec.Laps[0].Position)
	assert.False(t, rec.Laps[0].CrossingTime.IsZero())

	// unparseable timestamp keeps a zero time for the store to reject
	assert.True(t, rec.Laps[4].CrossingTime.IsZero())
}

func TestLoad_FeedsStore(t *testing.T) {
	rec, err := Load(filepath.Join("testdata", "monza_2024.json"))
	require.NoError(t, err)

	store := timing.NewStore()
	assert.Equal(t, 1, store.IngestLaps(rec.Laps)) // the bad-timestamp row
	assert.Equal(t, 0, store.IngestPositions(rec.Positions))

	assert.Len(t, store.Laps(1), 2)
	assert.Len(t, store.Laps(44), 2)
	assert.Equal(t, []int{1, 44}, store.CompetitorIDs())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestListRecordings(t *testing.T) {
	names, err := ListRecordings("testdata")
	require.NoError(t, err)
	assert.Equal(t, []string{"monza_2024"}, names)
}

func TestListRecordings_MissingDir(t *testing.T) {
	_, err := ListRecordings(filepath.Join("testdata", "nope"))
	assert.Error(t, err)
}
