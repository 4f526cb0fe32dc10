package predict

import "math"

// drsWindow is the fixed proximity threshold (seconds) enabling the
// drag reduction system in the modeled series.
const drsWindow = 1.0

// CatchLap projects the lap on which the chasing competitor closes the gap
// completely. A closing rate of zero or above means the gap is not
// shrinking; the zero case is excluded before the division runs. ok is
// false when no catch happens within the race distance.
func CatchLap(currentInterval, closingRate float64, currentLap, totalLaps int) (lap int, ok bool) {
	if closingRate >= 0 {
		return 0, false
	}
	lapsToCatch := math.Abs(currentInterval / closingRate)
	catchLap := float64(currentLap) + lapsToCatch
	if catchLap > float64(totalLaps) {
		return 0, false
	}
	return int(catchLap), true
}

// GapAsLapPercentage expresses the interval as a percentage of a lap time.
// Returns 0.0 for a non-positive lap time.
func GapAsLapPercentage(interval, lapTime float64) float64 {
	if lapTime <= 0 {
		return 0.0
	}
	return (interval / lapTime) * 100
}

// InDrsRange reports whether the trailing competitor is close enough for DRS.
// The interval must already be oriented as the trailing car's gap to the car
// ahead; a negative value is rejected, not clamped.
func InDrsRange(interval float64) bool {
	return InDrsRangeWindow(interval, drsWindow)
}

// InDrsRangeWindow is InDrsRange with a configurable window for other series.
func InDrsRangeWindow(interval, window float64) bool {
	return interval >= 0 && interval <= window
}
