package pitstops

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-interval-tracker-go/log"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/config"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/model"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/processing/events"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/processing/laptime"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/session"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/timing"
)

var drivers []int

func NewPitstopsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pitstops recordingFile",
		Short: "detects pit stops in a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return detectPitstops(args[0])
		},
	}
	cmd.Flags().IntSliceVarP(&drivers, "drivers", "d", nil,
		"driver numbers to scan (default: all)")
	return cmd
}

func detectPitstops(path string) error {
	logger := log.Default().Named("pitstops")
	rec, err := session.Load(path)
	if err != nil {
		return err
	}
	store := timing.NewStore()
	if dropped := store.IngestLaps(rec.Laps); dropped > 0 {
		logger.Warn("dropped malformed lap records", log.Int("count", dropped))
	}

	settings := config.FromFlags()
	detector := events.NewDetector(store,
		events.WithEstimator(laptime.NewEstimator(store, laptime.WithSettings(settings))),
		events.WithSettings(settings))

	scan := drivers
	if len(scan) == 0 {
		scan = store.CompetitorIDs()
	}
	perDriver := lo.Map(scan, func(id int, _ int) []model.Event {
		return detector.PitStops(id)
	})
	merged := events.Merge(perDriver...)
	if len(merged) == 0 {
		fmt.Println("no pit stops detected")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Lap", "Driver", "Event", "Time lost"})
	for i := range merged {
		ev := merged[i]
		t.AppendRow(table.Row{
			ev.LapNumber,
			driverLabel(rec, ev.CompetitorID),
			string(ev.Type),
			fmt.Sprintf("%.1fs", ev.Duration),
		})
	}
	t.Render()
	return nil
}

func driverLabel(rec *session.Recording, driverNumber int) string {
	if d, ok := rec.Metadata.Drivers[fmt.Sprintf("%d", driverNumber)]; ok &&
		d.NameAcronym != "" {
		return d.NameAcronym
	}
	return fmt.Sprintf("#%d", driverNumber)
}
