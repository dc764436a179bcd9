package persist

import (
	"sort"
)

// namedModTime pairs a saved state's name with its last-write time, used
// to rank states from newest to oldest for pruning.
type namedModTime struct {
	name    string
	modTime int64
}

// Prune keeps only the keepN most recently written states of the given
// type and deletes the rest. It computes the set to keep first, then
// deletes everything outside it, rather than deleting as it discovers
// candidates (which would make the decision order-dependent).
//
// keepN <= 0 is a no-op: pruning is opt-in, and callers that never
// configure a retention count keep every save indefinitely.
func (s *Store) Prune(t StateType, keepN int) (deleted []string, err error) {
	if keepN <= 0 {
		return nil, nil
	}

	names, err := s.List(t)
	if err != nil {
		return nil, err
	}
	if len(names) <= keepN {
		return nil, nil
	}

	ranked := make([]namedModTime, 0, len(names))
	for _, name := range names {
		mt, statErr := s.ModTime(t, name)
		if statErr != nil {
			continue
		}
		ranked = append(ranked, namedModTime{name: name, modTime: mt.UnixNano()})
	}

	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].modTime > ranked[j].modTime
	})

	if len(ranked) <= keepN {
		return nil, nil
	}

	for _, entry := range ranked[keepN:] {
		if err := s.Delete(t, entry.name); err != nil {
			return deleted, err
		}
		deleted = append(deleted, entry.name)
	}
	return deleted, nil
}
