package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpReverse bool

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print every key in the seeded index, in ascending (or reverse) order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := newSession(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if dumpReverse {
			for item := range s.idx.Backward() {
				fmt.Fprintln(out, item.Key())
			}
			return nil
		}
		for item := range s.idx.All() {
			fmt.Fprintln(out, item.Key())
		}
		return nil
	},
}

func init() {
	dumpCmd.Flags().BoolVar(&dumpReverse, "reverse", false, "print in descending order")
}
