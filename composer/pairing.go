package composer

import (
	"slices"

	"go.uber.org/zap"

	"composer/block"
)

// Linking is two step: StartLink remembers the source, CompleteLink merges
// source and target into a new pair. Pending source is abandoned whenever
// focus moves to another block.

// StartLink marks top level block as pending link source replacing previous
// one if any.
func (s *Store) StartLink(id block.ID) bool {
	if block.IndexOf(s.blocks, id) < 0 {
		s.log.Debug("Ignoring link start, block not found", zap.String("id", string(id)))
		return false
	}
	s.pending = id
	return true
}

// PendingLink returns pending link source or block.NoID.
func (s *Store) PendingLink() block.ID {
	return s.pending
}

// CompleteLink replaces pending source and target with a new pair block
// {left: source, right: target} placed where the first of them was. Pairs
// never nest, so pair source or target is rejected like any other invalid
// target and pending source is kept.
func (s *Store) CompleteLink(target block.ID) (block.ID, bool) {
	if s.pending == block.NoID {
		s.log.Debug("Ignoring link completion, nothing pending", zap.String("target", string(target)))
		return block.NoID, false
	}
	si, ti := block.IndexOf(s.blocks, s.pending), block.IndexOf(s.blocks, target)
	if si < 0 || ti < 0 || si == ti {
		s.log.Debug("Ignoring link completion, invalid target", zap.String("source", string(s.pending)), zap.String("target", string(target)))
		return block.NoID, false
	}
	source, dest := s.blocks[si], s.blocks[ti]
	if source.IsPair() || dest.IsPair() {
		s.log.Debug("Ignoring link completion, pairs could not be nested", zap.String("source", string(source.ID)), zap.String("target", string(dest.ID)))
		return block.NoID, false
	}

	pair := block.NewPair(s.alloc.Next(), source, dest)
	at := min(si, ti)

	list := make([]block.Block, 0, len(s.blocks)-1)
	for i, b := range s.blocks {
		switch i {
		case at:
			list = append(list, pair)
		case si, ti:
		default:
			list = append(list, b)
		}
	}

	s.pending = block.NoID
	if s.focus == source.ID || s.focus == dest.ID {
		s.focus = pair.ID
	}
	s.commit("link", list)
	return pair.ID, true
}

// Swap exchanges sides of the pair. Pair id and position do not change.
func (s *Store) Swap(pairID block.ID) bool {
	i := block.IndexOf(s.blocks, pairID)
	if i < 0 || !s.blocks[i].IsPair() {
		s.log.Debug("Ignoring swap, pair not found", zap.String("id", string(pairID)))
		return false
	}
	list := slices.Clone(s.blocks)
	list[i] = list[i].Swapped()
	s.commit("swap", list)
	return true
}

// BreakLink replaces pair with its left and right blocks at the pair
// position. Focus on the pair moves to the left block.
func (s *Store) BreakLink(pairID block.ID) bool {
	i := block.IndexOf(s.blocks, pairID)
	if i < 0 || !s.blocks[i].IsPair() {
		s.log.Debug("Ignoring break, pair not found", zap.String("id", string(pairID)))
		return false
	}
	pair := s.blocks[i]
	list := slices.Replace(slices.Clone(s.blocks), i, i+1, *pair.Left, *pair.Right)
	if s.focus == pairID {
		s.focus = pair.Left.ID
	}
	if s.pending == pairID {
		s.pending = block.NoID
	}
	s.commit("break", list)
	return true
}
