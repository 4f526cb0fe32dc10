package config

// this holds the resolved configuration values from CLI
var (
	LogLevel      string // sets the log level (zap log level values)
	LogFormat     string // text vs json
	LogFilters    string // zapfilter rules limiting output to named loggers
	RecordingsDir string // directory containing recorded session files

	LapTimeMinSec  float64 // lower plausibility bound for a lap duration
	LapTimeMaxSec  float64 // upper plausibility bound for a lap duration
	PitMarginSec   float64 // excess over average lap time that flags a pit stop
	TrendWindow    int     // number of interval deltas used for trend/closing rate
	TrendThreshold float64 // +/- band (sec) within which the gap counts as stable
	DrsWindowSec   float64 // max trailing gap enabling DRS
)

// Analysis holds the tunable thresholds used by the processing packages.
// The defaults model current Formula 1 race conditions; other series
// should override them via flags or config file.
type Analysis struct {
	LapTimeMin     float64 // seconds, exclusive lower bound
	LapTimeMax     float64 // seconds, exclusive upper bound
	PitMargin      float64 // seconds
	TrendWindow    int
	TrendThreshold float64 // seconds
	DrsWindow      float64 // seconds
}

func DefaultAnalysis() Analysis {
	return Analysis{
		LapTimeMin:     60,
		LapTimeMax:     150,
		PitMargin:      30,
		TrendWindow:    3,
		TrendThreshold: 0.1,
		DrsWindow:      1.0,
	}
}

// FromFlags builds the analysis settings from the resolved CLI values,
// falling back to defaults for unset entries.
func FromFlags() Analysis {
	ret := DefaultAnalysis()
	if LapTimeMinSec > 0 {
		ret.LapTimeMin = LapTimeMinSec
	}
	if LapTimeMaxSec > 0 {
		ret.LapTimeMax = LapTimeMaxSec
	}
	if PitMarginSec > 0 {
		ret.PitMargin = PitMarginSec
	}
	if TrendWindow > 0 {
		ret.TrendWindow = TrendWindow
	}
	if TrendThreshold > 0 {
		ret.TrendThreshold = TrendThreshold
	}
	if DrsWindowSec > 0 {
		ret.DrsWindow = DrsWindowSec
	}
	return ret
}
