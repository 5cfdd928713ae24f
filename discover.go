package barecat

import (
	"fmt"
	"path/filepath"
	"sort"
)

// DiscoverShards finds the shard files belonging to the archive whose index
// lives at base, following the standard naming scheme "{base}-shard-NNNNN"
// with zero-padded five-digit shard numbers. The returned paths are ordered
// by shard number, and the numbering must be dense: a gap means the archive
// is incomplete and is reported as an error.
func DiscoverShards(base string) ([]string, error) {
	matches, err := filepath.Glob(base + "-shard-?????")
	if err != nil {
		return nil, fmt.Errorf("barecat: discover shards of %s: %w", base, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("barecat: no shard files found for %s", base)
	}
	sort.Strings(matches)
	for i, path := range matches {
		if want := ShardPath(base, i); path != want {
			return nil, fmt.Errorf("barecat: missing shard file %s", want)
		}
	}
	return matches, nil
}

// ShardPath returns the standard file name of shard number i of the archive
// whose index lives at base.
func ShardPath(base string, i int) string {
	return fmt.Sprintf("%s-shard-%05d", base, i)
}
