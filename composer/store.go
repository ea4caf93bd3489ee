// Package composer implements block composition engine: ordered block store
// with single focus anchor, pairing of blocks, template expansion and derived
// text presence queries.
//
// All operations are total. Operating on missing ids, moving past list
// boundaries, breaking non-pairs and similar edge cases leave the store
// unchanged and are only logged - host UI may race ahead of the state.
package composer

import (
	"slices"
	"time"

	"go.uber.org/zap"

	"composer/block"
	"composer/common"
)

// Change is passed to observers after every successful operation.
type Change struct {
	Op     string
	Blocks []block.Block
	Focus  block.ID
}

// Store owns ordered top level block list. Lists handed out by Blocks() and
// with Change are never modified afterwards, every operation builds a new
// list, so observers never see partial updates.
//
// Store is not safe for concurrent use: host is expected to serialize user
// events.
type Store struct {
	blocks  []block.Block
	focus   block.ID
	pending block.ID
	motion  Motion

	alloc     block.Allocator
	log       *zap.Logger
	opts      options
	observers []func(Change)
}

type options struct {
	motionLifetime time.Duration
	citationEvery  int
	clock          func() time.Time
}

// Option customizes Store.
type Option func(*options)

// WithMotionLifetime sets how long move marker stays active.
func WithMotionLifetime(d time.Duration) Option {
	return func(o *options) {
		o.motionLifetime = d
	}
}

// WithCitationEvery sets interval of citations in interview template.
func WithCitationEvery(n int) Option {
	return func(o *options) {
		o.citationEvery = n
	}
}

// WithClock replaces time source used for move marker.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

const (
	DefaultMotionLifetime = 300 * time.Millisecond
	DefaultCitationEvery  = 3
)

// New creates empty store. All ids are generated by alloc.
func New(alloc block.Allocator, log *zap.Logger, opts ...Option) *Store {
	o := options{
		motionLifetime: DefaultMotionLifetime,
		citationEvery:  DefaultCitationEvery,
		clock:          time.Now,
	}
	for _, setOpt := range opts {
		setOpt(&o)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{alloc: alloc, log: log, opts: o}
}

// Restore replaces store state with externally supplied list and focus.
// List is expected to be validated by the caller (see block.Validate), ids
// are reserved with allocator. Focus not present in the list is dropped.
func (s *Store) Restore(list []block.Block, focus block.ID) {
	s.blocks = slices.Clone(list)
	block.ReserveAll(s.alloc, s.blocks)
	s.pending = block.NoID
	s.motion = Motion{}
	s.focus = block.NoID
	if block.IndexOf(s.blocks, focus) >= 0 {
		s.focus = focus
	}
	s.notify("restore")
}

// Subscribe registers observer called after every successful operation.
func (s *Store) Subscribe(fn func(Change)) {
	s.observers = append(s.observers, fn)
}

// Blocks returns current list. Callers must not modify it.
func (s *Store) Blocks() []block.Block {
	return s.blocks
}

func (s *Store) Len() int {
	return len(s.blocks)
}

// Focus returns focused block id or block.NoID.
func (s *Store) Focus() block.ID {
	return s.focus
}

// Find returns top level block by id.
func (s *Store) Find(id block.ID) (block.Block, bool) {
	if i := block.IndexOf(s.blocks, id); i >= 0 {
		return s.blocks[i], true
	}
	return block.Block{}, false
}

// Insert creates new single block right after focused block, or at the end
// when nothing is focused, and focuses it. Nil content means empty content
// for the kind. Pair kind could not be inserted this way, see InsertLayout.
func (s *Store) Insert(kind common.Kind, content block.Content) block.ID {
	if !kind.IsValid() || kind.IsPair() {
		s.log.Debug("Ignoring insert of unsupported kind", zap.Stringer("kind", kind))
		return block.NoID
	}
	if content != nil && content.Kind() != kind {
		s.log.Debug("Ignoring content of wrong kind on insert", zap.Stringer("kind", kind), zap.Stringer("content", content.Kind()))
		content = nil
	}
	b := block.NewSingle(s.alloc.Next(), kind, content)
	s.insert("insert", b)
	return b.ID
}

// InsertLayout inserts pair block with empty sides of predetermined layout
// using the same anchor rule as Insert.
func (s *Store) InsertLayout(name string) block.ID {
	layout, ok := block.LookupLayout(name)
	if !ok {
		s.log.Debug("Ignoring unknown layout", zap.String("layout", name))
		return block.NoID
	}
	pair := block.NewPair(s.alloc.Next(),
		block.NewSingle(s.alloc.Next(), layout.Left, nil),
		block.NewSingle(s.alloc.Next(), layout.Right, nil))
	s.insert("layout", pair)
	return pair.ID
}

// insert places sequence at the anchor as a single change and focuses its
// first block.
func (s *Store) insert(op string, seq ...block.Block) {
	if len(seq) == 0 {
		return
	}
	at := len(s.blocks)
	if i := block.IndexOf(s.blocks, s.focus); i >= 0 {
		at = i + 1
	}
	s.setFocus(seq[0].ID)
	s.commit(op, slices.Insert(slices.Clone(s.blocks), at, seq...))
}

// Update replaces content of top level single block. Content of another kind
// is rejected, nil resets content to empty.
func (s *Store) Update(id block.ID, content block.Content) bool {
	i := block.IndexOf(s.blocks, id)
	if i < 0 {
		s.log.Debug("Ignoring update, block not found", zap.String("id", string(id)))
		return false
	}
	b := s.blocks[i]
	if b.IsPair() {
		s.log.Debug("Ignoring update of pair block, side is required", zap.String("id", string(id)))
		return false
	}
	if content != nil && content.Kind() != b.Kind {
		s.log.Debug("Ignoring update with content of wrong kind", zap.String("id", string(id)), zap.Stringer("kind", b.Kind), zap.Stringer("content", content.Kind()))
		return false
	}
	list := slices.Clone(s.blocks)
	list[i] = block.NewSingle(b.ID, b.Kind, content)
	s.update("update", list)
	return true
}

// UpdateSide replaces content of one side of the pair block.
func (s *Store) UpdateSide(pairID block.ID, side common.Side, content block.Content) bool {
	i := block.IndexOf(s.blocks, pairID)
	if i < 0 || !s.blocks[i].IsPair() {
		s.log.Debug("Ignoring side update, pair not found", zap.String("id", string(pairID)))
		return false
	}
	pair := s.blocks[i]
	child, _ := pair.Side(side)
	if content != nil && content.Kind() != child.Kind {
		s.log.Debug("Ignoring side update with content of wrong kind", zap.String("id", string(pairID)), zap.Stringer("side", side), zap.Stringer("kind", child.Kind), zap.Stringer("content", content.Kind()))
		return false
	}
	list := slices.Clone(s.blocks)
	list[i] = pair.WithSide(side, block.NewSingle(child.ID, child.Kind, content))
	s.update("update-side", list)
	return true
}

// Move swaps block with its neighbor in the requested direction and leaves
// transient move marker for the renderer.
func (s *Store) Move(id block.ID, dir common.Direction) bool {
	i := block.IndexOf(s.blocks, id)
	if i < 0 {
		s.log.Debug("Ignoring move, block not found", zap.String("id", string(id)))
		return false
	}
	j := i + dir.Delta()
	if j < 0 || j >= len(s.blocks) {
		s.log.Debug("Ignoring move past the boundary", zap.String("id", string(id)), zap.Stringer("direction", dir))
		return false
	}
	list := slices.Clone(s.blocks)
	list[i], list[j] = list[j], list[i]
	// marker replaces any previous one and is visible to observers of this move
	s.motion = Motion{ID: id, Direction: dir, Until: s.opts.clock().Add(s.opts.motionLifetime)}
	s.update("move", list)
	return true
}

// Duplicate inserts deep copy of the block with fresh ids right after the
// original. Focus is not changed.
func (s *Store) Duplicate(id block.ID) (block.ID, bool) {
	i := block.IndexOf(s.blocks, id)
	if i < 0 {
		s.log.Debug("Ignoring duplicate, block not found", zap.String("id", string(id)))
		return block.NoID, false
	}
	dup := block.Clone(s.blocks[i], s.alloc)
	s.commit("duplicate", slices.Insert(slices.Clone(s.blocks), i+1, dup))
	return dup.ID, true
}

// Delete removes block. Focus and pending link referencing it are cleared.
func (s *Store) Delete(id block.ID) bool {
	i := block.IndexOf(s.blocks, id)
	if i < 0 {
		s.log.Debug("Ignoring delete, block not found", zap.String("id", string(id)))
		return false
	}
	if s.focus == id {
		s.focus = block.NoID
	}
	if s.pending == id {
		s.pending = block.NoID
	}
	s.commit("delete", slices.Delete(slices.Clone(s.blocks), i, i+1))
	return true
}

// SetFocus sets anchor for subsequent inserts. Focusing anything other than
// pending link source abandons the link. Ids not present in the list clear
// focus.
func (s *Store) SetFocus(id block.ID) {
	if s.pending != block.NoID && id != s.pending {
		s.log.Debug("Pending link abandoned on focus change", zap.String("source", string(s.pending)), zap.String("focus", string(id)))
		s.pending = block.NoID
	}
	if id != block.NoID && block.IndexOf(s.blocks, id) < 0 {
		s.log.Debug("Focus requested for absent block", zap.String("id", string(id)))
		id = block.NoID
	}
	s.setFocus(id)
}

func (s *Store) ClearFocus() {
	s.SetFocus(block.NoID)
}

func (s *Store) setFocus(id block.ID) {
	if s.pending != block.NoID && id != s.pending {
		s.pending = block.NoID
	}
	s.focus = id
}

// HasText reports whether block with id carries meaningful text.
func (s *Store) HasText(id block.ID) bool {
	b, ok := s.Find(id)
	return ok && block.HasText(b)
}

// HasOtherText reports whether any block other than id carries meaningful
// text.
func (s *Store) HasOtherText(id block.ID) bool {
	return block.HasOtherText(s.blocks, id)
}

// commit installs structurally changed list. Any structural change
// supersedes move marker.
func (s *Store) commit(op string, list []block.Block) {
	s.motion = Motion{}
	s.update(op, list)
}

func (s *Store) update(op string, list []block.Block) {
	s.blocks = list
	s.notify(op)
}

func (s *Store) notify(op string) {
	if len(s.observers) == 0 {
		return
	}
	ch := Change{Op: op, Blocks: s.blocks, Focus: s.focus}
	for _, fn := range s.observers {
		fn(ch)
	}
}
