package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatchLap(t *testing.T) {
	tests := []struct {
		name        string
		interval    float64
		closingRate float64
		currentLap  int
		totalLaps   int
		want        int
		wantOk      bool
	}{
		{
			name:     "catch within race distance",
			interval: -5.0, closingRate: -0.5, currentLap: 10, totalLaps: 58,
			want: 20, wantOk: true,
		},
		{
			name:     "catch beyond race distance",
			interval: -5.0, closingRate: -0.5, currentLap: 10, totalLaps: 15,
			wantOk: false,
		},
		{
			name:     "gap extending",
			interval: 5.0, closingRate: 0.3, currentLap: 10, totalLaps: 58,
			wantOk: false,
		},
		{
			name:     "zero rate guarded before division",
			interval: -5.0, closingRate: 0.0, currentLap: 10, totalLaps: 58,
			wantOk: false,
		},
		{
			name:     "fractional catch lap truncated",
			interval: -5.0, closingRate: -0.4, currentLap: 10, totalLaps: 58,
			want: 22, wantOk: true, // 10 + 12.5
		},
		{
			name:     "catch on the final lap",
			interval: -4.0, closingRate: -0.5, currentLap: 50, totalLaps: 58,
			want: 58, wantOk: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CatchLap(tt.interval, tt.closingRate, tt.currentLap, tt.totalLaps)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestGapAsLapPercentage(t *testing.T) {
	assert.InDelta(t, 5.0, GapAsLapPercentage(4.5, 90), 0.0001)
	assert.InDelta(t, 0.0, GapAsLapPercentage(4.5, 0), 0.0001)
	assert.InDelta(t, 0.0, GapAsLapPercentage(4.5, -10), 0.0001)
}

func TestInDrsRange(t *testing.T) {
	assert.True(t, InDrsRange(0.8))
	assert.True(t, InDrsRange(0.0))
	assert.True(t, InDrsRange(1.0))
	assert.False(t, InDrsRange(1.2))
	assert.False(t, InDrsRange(-0.3))
}

func TestInDrsRangeWindow(t *testing.T) {
	assert.True(t, InDrsRangeWindow(1.8, 2.0))
	assert.False(t, InDrsRangeWindow(1.8, 1.0))
}
