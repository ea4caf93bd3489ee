package composer

import (
	"fmt"

	"go.uber.org/zap"

	"composer/block"
	"composer/common"
)

// Attach places uploaded file into media block. Unlike structural operations
// rejected uploads are reported back since user has to pick another file.
func (s *Store) Attach(id block.ID, up block.Upload) error {
	b, ok := s.Find(id)
	if !ok || b.IsPair() {
		s.log.Debug("Ignoring upload, single block not found", zap.String("id", string(id)))
		return fmt.Errorf("block %q: %w", id, block.ErrUploadNotAccepted)
	}
	content, err := block.Attach(b.Content, up, s.alloc)
	if err != nil {
		return fmt.Errorf("block %q: %w", id, err)
	}
	s.Update(id, content)
	return nil
}

// AttachSide places uploaded file into one side of the pair block.
func (s *Store) AttachSide(pairID block.ID, side common.Side, up block.Upload) error {
	b, ok := s.Find(pairID)
	if !ok || !b.IsPair() {
		s.log.Debug("Ignoring upload, pair not found", zap.String("id", string(pairID)))
		return fmt.Errorf("pair %q: %w", pairID, block.ErrUploadNotAccepted)
	}
	child, _ := b.Side(side)
	content, err := block.Attach(child.Content, up, s.alloc)
	if err != nil {
		return fmt.Errorf("pair %q %s: %w", pairID, side, err)
	}
	s.UpdateSide(pairID, side, content)
	return nil
}
