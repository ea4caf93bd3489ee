package block

import (
	"reflect"
	"testing"

	"composer/common"
)

func TestClone_Single(t *testing.T) {
	orig := NewSingle("b1", common.KindTable, TableContent{
		Rows: 1, Columns: 2,
		Data: [][]string{{"a", "b"}},
	})
	c := NewCounter("c")

	dup := Clone(orig, c)
	if dup.ID != "c1" {
		t.Errorf("Clone() id = %q, want c1", dup.ID)
	}
	if !reflect.DeepEqual(dup.Content, orig.Content) {
		t.Errorf("Clone() content = %+v, want %+v", dup.Content, orig.Content)
	}

	// grid must not be shared
	dup.Content.(TableContent).Data[0][0] = "changed"
	if orig.Content.(TableContent).Data[0][0] != "a" {
		t.Error("Clone() shares table data with original")
	}
}

func TestClone_Pair(t *testing.T) {
	orig := NewPair("p1",
		NewSingle("l1", common.KindParagraph, ParagraphContent{HTML: "left"}),
		NewSingle("r1", common.KindCarousel, CarouselContent{Images: []CarouselImage{{ID: "i1", Image: "x.png"}}}))
	c := NewCounter("c")

	dup := Clone(orig, c)
	if !dup.IsPair() {
		t.Fatal("Clone() of pair is not a pair")
	}
	ids := map[ID]bool{dup.ID: true, dup.Left.ID: true, dup.Right.ID: true}
	if len(ids) != 3 {
		t.Errorf("Clone() ids are not distinct: %q %q %q", dup.ID, dup.Left.ID, dup.Right.ID)
	}
	for id := range ids {
		if id == "p1" || id == "l1" || id == "r1" {
			t.Errorf("Clone() reused original id %q", id)
		}
	}
	if dup.Left.Content != orig.Left.Content {
		t.Errorf("Clone() left content = %+v, want %+v", dup.Left.Content, orig.Left.Content)
	}

	dup.Right.Content.(CarouselContent).Images[0].Image = "changed.png"
	if orig.Right.Content.(CarouselContent).Images[0].Image != "x.png" {
		t.Error("Clone() shares carousel images with original")
	}
	if dup.Left == orig.Left {
		t.Error("Clone() shares pair side with original")
	}
}
