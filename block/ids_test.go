package block

import (
	"testing"

	"github.com/google/uuid"

	"composer/common"
)

func TestCounter(t *testing.T) {
	c := NewCounter("b")
	for i, want := range []ID{"b1", "b2", "b3"} {
		if got := c.Next(); got != want {
			t.Errorf("Next() #%d = %q, want %q", i, got, want)
		}
	}
}

func TestCounter_Reserve(t *testing.T) {
	c := NewCounter("b")
	c.Reserve("b10")
	c.Reserve("b7")           // lower, ignored
	c.Reserve("x99")          // other prefix
	c.Reserve("b-not-number") // not produced by counter
	if got := c.Next(); got != "b11" {
		t.Errorf("Next() after Reserve = %q, want b11", got)
	}
}

func TestReserveAll(t *testing.T) {
	list := []Block{
		NewSingle("b2", common.KindParagraph, nil),
		NewPair("b5", NewSingle("b3", common.KindParagraph, nil), NewSingle("b8", common.KindImage, nil)),
	}
	c := NewCounter("b")
	ReserveAll(c, list)
	if got := c.Next(); got != "b9" {
		t.Errorf("Next() = %q, want b9 (pair children must be reserved)", got)
	}
}

func TestNewAllocator(t *testing.T) {
	t.Run("counter", func(t *testing.T) {
		a := NewAllocator(common.IDSchemeCounter)
		if got := a.Next(); got != "b1" {
			t.Errorf("Next() = %q, want b1", got)
		}
	})

	t.Run("uuid", func(t *testing.T) {
		a := NewAllocator(common.IDSchemeUuid)
		seen := make(map[ID]bool)
		for range 100 {
			id := a.Next()
			u, err := uuid.Parse(string(id))
			if err != nil {
				t.Fatalf("Next() = %q is not UUID: %v", id, err)
			}
			if u.Version() != 7 {
				t.Errorf("UUID version = %d, want 7", u.Version())
			}
			if seen[id] {
				t.Fatalf("Next() produced duplicate %q", id)
			}
			seen[id] = true
		}
	})
}
