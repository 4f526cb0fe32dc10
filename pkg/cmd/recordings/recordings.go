package recordings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1-interval-tracker-go/pkg/config"
	"github.com/mpapenbr/f1-interval-tracker-go/pkg/session"
)

func NewRecordingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordings",
		Short: "lists the recorded sessions in the recordings directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecordings()
		},
	}
	return cmd
}

func listRecordings() error {
	names, err := session.ListRecordings(config.RecordingsDir)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no recordings found")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
