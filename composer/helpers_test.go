package composer

import (
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"composer/block"
	"composer/common"
)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	return New(block.NewCounter("b"), log, opts...)
}

func idsOf(list []block.Block) []block.ID {
	out := make([]block.ID, 0, len(list))
	for _, b := range list {
		out = append(out, b.ID)
	}
	return out
}

// shape describes blocks by kind, pair as "left+right".
func shape(list []block.Block) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		if b.IsPair() {
			out = append(out, b.Left.Kind.String()+"+"+b.Right.Kind.String())
			continue
		}
		out = append(out, b.Kind.String())
	}
	return out
}

func checkIDs(t *testing.T, s *Store, want ...block.ID) {
	t.Helper()
	if got := idsOf(s.Blocks()); !slices.Equal(got, want) {
		t.Fatalf("blocks = %v, want %v", got, want)
	}
}

// insertN appends n paragraphs with ids b1..bn.
func insertN(s *Store, n int) {
	for range n {
		s.ClearFocus()
		s.Insert(common.KindParagraph, nil)
	}
}

func text(html string) block.Content {
	return block.ParagraphContent{HTML: html}
}
