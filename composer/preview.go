package composer

import (
	"composer/block"
)

// Preview returns blocks preview renderer should show: empty blocks are
// skipped, pair is kept when at least one of its sides has something to
// show. Store is not affected.
func Preview(list []block.Block) []block.Block {
	out := make([]block.Block, 0, len(list))
	for _, b := range list {
		if block.IsEmpty(b) {
			continue
		}
		out = append(out, b)
	}
	return out
}
