package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var insertCmd = &cobra.Command{
	Use:   "insert [keys...]",
	Short: "Seed an index, insert the given keys, and report the resulting size",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := newSession(cfg)
		if err != nil {
			return err
		}
		for _, a := range args {
			k, err := strconv.ParseUint(a, 0, 64)
			if err != nil {
				return errors.Wrapf(err, "parsing key %q", a)
			}
			s.insert(k)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "size=%d max_size=%d\n", s.idx.Size(), s.idx.MaxSize())
		return nil
	},
}
