package composer

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"composer/block"
	"composer/utils/debug"
)

// String returns a readable dump of the store state. It exists solely for
// manual inspection during debugging.
func (s *Store) String() string {
	if s == nil {
		return "<nil Store>"
	}

	out := block.Dump(s.blocks)

	tw := debug.NewTreeWriter()
	tw.Line(0, "Focus=%q PendingLink=%q", s.focus, s.pending)
	if m, ok := s.Motion(); ok {
		tw.Line(0, "Motion id=%q direction=%q until=%s", m.ID, m.Direction, m.Until.Format("15:04:05.000"))
	}

	// kind -> ids, pair sides included
	index := make(map[string][]string)
	for _, b := range s.blocks {
		index[b.Kind.String()] = append(index[b.Kind.String()], string(b.ID))
		if b.IsPair() {
			for _, side := range b.Singles() {
				index[side.Kind.String()] = append(index[side.Kind.String()], string(side.ID))
			}
		}
	}
	if len(index) > 0 {
		tw.Line(0, "Kinds index: %d", len(index))
		keys := slices.Sorted(maps.Keys(index))
		for _, k := range keys {
			ids := index[k]
			sort.Sort(natural.StringSlice(ids))
			tw.Line(1, "Kind[%q] blocks=%d ids=%v", k, len(ids), ids)
		}
	}
	return out + tw.String()
}
