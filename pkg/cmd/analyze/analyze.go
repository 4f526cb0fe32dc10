package analyze

import (
	"fmt"
	"math"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-interval-tracker-go/log"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/config"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/model"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/processing/interval"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/processing/laptime"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/processing/predict"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/session"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/timing"
)

var (
	driverA   int
	driverB   int
	totalLaps int
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze recordingFile",
		Short: "computes the interval series between two drivers of a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyzeRecording(args[0])
		},
	}
	cmd.Flags().IntVarP(&driverA, "driver-a", "a", 0, "first driver number (sign reference)")
	cmd.Flags().IntVarP(&driverB, "driver-b", "b", 0, "second driver number")
	cmd.Flags().IntVar(&totalLaps, "total-laps", 0,
		"race distance in laps (enables the catch projection)")
	return cmd
}

//nolint:funlen // mostly output
func analyzeRecording(path string) error {
	logger := log.Default().Named("analyze")
	if driverA == 0 || driverB == 0 {
		return fmt.Errorf("both --driver-a and --driver-b are required")
	}
	rec, err := session.Load(path)
	if err != nil {
		return err
	}

	store := timing.NewStore()
	if dropped := store.IngestLaps(rec.Laps); dropped > 0 {
		logger.Warn("dropped malformed lap records", log.Int("count", dropped))
	}
	if dropped := store.IngestPositions(rec.Positions); dropped > 0 {
		logger.Warn("dropped malformed position records", log.Int("count", dropped))
	}

	settings := config.FromFlags()
	estimator := laptime.NewEstimator(store, laptime.WithSettings(settings))
	engine := interval.NewEngine(store,
		interval.WithEstimator(estimator),
		interval.WithSettings(settings))

	series := engine.Series(driverA, driverB)
	if len(series) == 0 {
		fmt.Printf("no common laps for %s and %s yet\n",
			driverLabel(rec, driverA), driverLabel(rec, driverB))
		return nil
	}
	printSeries(rec, series)
	printSnapshot(rec, engine.CurrentSnapshot(driverA, driverB), settings)
	return nil
}

func printSeries(rec *session.Recording, series []model.IntervalSample) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		"Lap", "Interval", driverLabel(rec, driverA), driverLabel(rec, driverB),
		"Delta", "Closing rate",
	})
	for i := range series {
		s := series[i]
		t.AppendRow(table.Row{
			s.LapNumber,
			fmt.Sprintf("%+.3fs", s.Interval),
			fmt.Sprintf("P%d", s.PositionA),
			fmt.Sprintf("P%d", s.PositionB),
			fmtRate(s.IntervalDelta),
			fmtRate(s.ClosingRate),
		})
	}
	t.Render()
}

func printSnapshot(
	rec *session.Recording,
	snap model.IntervalSnapshot,
	settings config.Analysis,
) {
	if snap.Interval == nil {
		fmt.Println("no interval data yet")
		return
	}
	fmt.Printf("\nLap %d: %s is %+.3fs relative to %s (trend: %s, rate %+.3fs/lap)\n",
		snap.LapNumber, driverLabel(rec, driverA), *snap.Interval,
		driverLabel(rec, driverB), snap.Trend, snap.ClosingRate)

	// DRS wants the trailing car's gap to the car ahead
	trailingGap := math.Abs(*snap.Interval)
	if predict.InDrsRangeWindow(trailingGap, settings.DrsWindow) {
		fmt.Printf("trailing car within DRS range (%.3fs)\n", trailingGap)
	}
	if totalLaps > 0 {
		if lap, ok := predict.CatchLap(
			*snap.Interval, snap.ClosingRate, snap.LapNumber, totalLaps); ok {
			fmt.Printf("projected catch on lap %d of %d\n", lap, totalLaps)
		} else {
			fmt.Printf("no catch projected within %d laps\n", totalLaps)
		}
	}
}

func fmtRate(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.3f", *v)
}

func driverLabel(rec *session.Recording, driverNumber int) string {
	if d, ok := rec.Metadata.Drivers[fmt.Sprintf("%d", driverNumber)]; ok &&
		d.NameAcronym != "" {
		return d.NameAcronym
	}
	return fmt.Sprintf("#%d", driverNumber)
}
