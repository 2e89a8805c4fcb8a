package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule <match label>",
	Short: "Look up the fixture date for a match label",
	Long:  "Resolves a match label such as \"CSK vs RCB\" against the fixture table. Lookup is order-insensitive: \"RCB vs CSK\" resolves to the same date.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, err := loadSchedule()
		if err != nil {
			return err
		}

		label := strings.Join(args, " ")
		date, ok := sched.Resolve(label)
		if !ok {
			return eris.Errorf("schedule: no fixture found for %q", label)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
