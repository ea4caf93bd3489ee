package composer

import (
	"time"

	"composer/block"
	"composer/common"
)

// Motion is purely presentational marker left by Move so renderer could
// sequence a transition. It is not part of the document state: it expires on
// its own and any later structural operation clears it.
type Motion struct {
	ID        block.ID
	Direction common.Direction
	Until     time.Time
}

// Active reports whether marker is set and not expired at the moment.
func (m Motion) Active(now time.Time) bool {
	return m.ID != block.NoID && now.Before(m.Until)
}

// Motion returns move marker if it is still active.
func (s *Store) Motion() (Motion, bool) {
	if !s.motion.Active(s.opts.clock()) {
		return Motion{}, false
	}
	return s.motion, true
}
