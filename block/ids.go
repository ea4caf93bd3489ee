package block

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"composer/common"
)

// Allocator hands out fresh block ids. Single allocator is shared by
// everything creating blocks for the same document.
type Allocator interface {
	Next() ID
	// Reserve tells allocator that id is already in use.
	Reserve(id ID)
}

// NewAllocator returns allocator for the requested scheme.
func NewAllocator(scheme common.IDScheme) Allocator {
	if scheme == common.IDSchemeCounter {
		return NewCounter("b")
	}
	return UUIDAllocator{}
}

// UUIDAllocator produces time ordered random UUIDv7 ids.
type UUIDAllocator struct{}

func (UUIDAllocator) Next() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// only possible when random source is broken
		id = uuid.New()
	}
	return ID(id.String())
}

func (UUIDAllocator) Reserve(ID) {}

// Counter produces monotonic ids: prefix followed by a number.
type Counter struct {
	prefix string
	last   uint64
}

func NewCounter(prefix string) *Counter {
	return &Counter{prefix: prefix}
}

func (c *Counter) Next() ID {
	c.last++
	return ID(c.prefix + strconv.FormatUint(c.last, 10))
}

// Reserve moves counter past ids produced by the same scheme, so documents
// loaded from disk never get colliding ids.
func (c *Counter) Reserve(id ID) {
	num, ok := strings.CutPrefix(string(id), c.prefix)
	if !ok {
		return
	}
	if n, err := strconv.ParseUint(num, 10, 64); err == nil && n > c.last {
		c.last = n
	}
}

// ReserveAll reserves every id in the list, pair children included.
func ReserveAll(alloc Allocator, list []Block) {
	for _, b := range list {
		alloc.Reserve(b.ID)
		if b.IsPair() {
			alloc.Reserve(b.Left.ID)
			alloc.Reserve(b.Right.ID)
		}
	}
}
