package main

import (
	"fmt"
	"strconv"

	"github.com/nethermindeth/fredkin/core/trie"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	findNearest bool
	findRounds  uint64
)

var findCmd = &cobra.Command{
	Use:   "find <key>",
	Short: "Look up a key (or its nearest successor) in a seeded index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		s, err := newSession(cfg)
		if err != nil {
			return err
		}
		k, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return errors.Wrapf(err, "parsing key %q", args[0])
		}

		var hit *trie.Item[uint64]
		switch {
		case findNearest:
			hit = s.idx.NearestFind(k)
		case findRounds > 0:
			hit = s.idx.CloseFind(k, findRounds)
		default:
			hit = s.idx.Find(k)
		}

		if hit == nil {
			return trie.ErrKeyNotFound
		}
		fmt.Fprintf(cmd.OutOrStdout(), "found key=%d count=%d\n", hit.Key(), s.idx.Count(hit.Key()))
		return nil
	},
}

func init() {
	findCmd.Flags().BoolVar(&findNearest, "nearest", false, "return the smallest key >= the query (NearestFind)")
	findCmd.Flags().Uint64Var(&findRounds, "rounds", 0, "bounded CloseFind refinement rounds (0 = exact Find)")
}
