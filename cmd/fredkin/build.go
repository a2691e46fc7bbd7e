package main

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/nethermindeth/fredkin/core/trie"
	"github.com/nethermindeth/fredkin/internal/config"
	"github.com/nethermindeth/fredkin/internal/logging"
	"github.com/pkg/errors"
)

// session bundles a live Index together with the items it holds, since
// the index never allocates or owns items itself (spec.md §2) — the CLI
// process is the "caller" spec.md assumes throughout.
type session struct {
	idx   *trie.Index[uint64]
	items map[uint64]*trie.Item[uint64]
}

func nobbleFromString(s string) (trie.NobbleDirection, error) {
	switch strings.ToLower(s) {
	case "zeros", "":
		return trie.NobbleZeros, nil
	case "ones":
		return trie.NobbleOnes, nil
	case "equal":
		return trie.NobbleEqual, nil
	default:
		return 0, errors.Errorf("unknown nobble mode %q (want zeros, ones, or equal)", s)
	}
}

func newSession(cfg config.Config) (*session, error) {
	nobble, err := nobbleFromString(cfg.Nobble)
	if err != nil {
		return nil, err
	}

	var idx *trie.Index[uint64]
	if cfg.Debug {
		idx = trie.NewDebug[uint64](cfg.KeyWidth, nobble, cfg.MaxSize, logging.Must(true))
	} else {
		idx = trie.New[uint64](cfg.KeyWidth, nobble, cfg.MaxSize)
	}

	s := &session{idx: idx, items: make(map[uint64]*trie.Item[uint64])}
	if cfg.SeedFile != "" {
		keys, err := readSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			s.insert(k)
		}
	}
	return s, nil
}

// insert links a fresh Item for k into the index on every call; a key
// already held goes through core/trie's own secondary-sibling path.
// s.items keeps only the first Item created for each key.
func (s *session) insert(k uint64) *trie.Item[uint64] {
	it := trie.NewItem(k)
	s.idx.Insert(it)
	if _, exists := s.items[k]; !exists {
		s.items[k] = it
	}
	return it
}

func readSeedFile(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening seed file")
	}
	defer f.Close()

	var keys []uint64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, err := strconv.ParseUint(line, 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing seed key %q", line)
		}
		keys = append(keys, k)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading seed file")
	}
	return keys, nil
}
