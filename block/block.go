// Package block defines the document unit of the composer: single blocks with
// a closed per-kind content schema and pair blocks holding two single blocks
// side by side.
package block

import (
	"composer/common"
)

// ID identifies block within the document. Unique across the whole document,
// pair children included.
type ID string

// NoID stands for absent block reference (no focus, no pending link).
const NoID ID = ""

// Block is either single (Kind is not pair, Content is set) or pair (Left and
// Right are set and are always single blocks).
//
// Blocks are treated as values: once a block is placed in a list it is never
// modified, operations replace it with a new value instead.
type Block struct {
	ID      ID
	Kind    common.Kind
	Content Content
	Left    *Block
	Right   *Block
}

// NewSingle creates single block of the requested kind. When content is nil
// or does not belong to the kind empty content for the kind is used.
func NewSingle(id ID, kind common.Kind, content Content) Block {
	if content == nil || content.Kind() != kind {
		content = EmptyContent(kind)
	}
	return Block{ID: id, Kind: kind, Content: content}
}

// NewPair wraps two single blocks. Callers are responsible for never passing
// pair blocks as sides, see Validate.
func NewPair(id ID, left, right Block) Block {
	return Block{ID: id, Kind: common.KindPair, Left: &left, Right: &right}
}

func (b Block) IsPair() bool {
	return b.Kind.IsPair()
}

// Side returns child of the pair block.
func (b Block) Side(side common.Side) (Block, bool) {
	if !b.IsPair() {
		return Block{}, false
	}
	if side == common.SideRight {
		return *b.Right, true
	}
	return *b.Left, true
}

// WithSide returns copy of the pair block with one child replaced.
func (b Block) WithSide(side common.Side, child Block) Block {
	if side == common.SideRight {
		b.Right = &child
	} else {
		b.Left = &child
	}
	return b
}

// Swapped returns copy of the pair block with sides exchanged. Pair ID is
// kept.
func (b Block) Swapped() Block {
	b.Left, b.Right = b.Right, b.Left
	return b
}

// Singles returns single blocks making up this block: itself or pair sides in
// left to right order.
func (b Block) Singles() []Block {
	if b.IsPair() {
		return []Block{*b.Left, *b.Right}
	}
	return []Block{b}
}

// IndexOf returns position of the top level block with the given id or -1.
func IndexOf(list []Block, id ID) int {
	if id == NoID {
		return -1
	}
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
