package composer

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"composer/block"
	"composer/common"
)

func testPNG(t *testing.T) block.Upload {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return block.Upload{Name: "dot.png", URL: "blob:dot", Data: buf.Bytes()}
}

func TestStore_Attach(t *testing.T) {
	s := newTestStore(t)
	id := s.Insert(common.KindImage, nil)

	if err := s.Attach(id, testPNG(t)); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	b, _ := s.Find(id)
	c, ok := b.Content.(block.ImageContent)
	if !ok || c.Image != "blob:dot" || c.Source != common.SourceTypeBlob {
		t.Errorf("content = %#v", b.Content)
	}

	pdf := block.Upload{Name: "doc.pdf", URL: "blob:doc", Data: append([]byte("%PDF-1.7\n"), make([]byte, 32)...)}
	if err := s.Attach(id, pdf); !errors.Is(err, block.ErrUploadType) {
		t.Errorf("Attach(pdf) error = %v, want %v", err, block.ErrUploadType)
	}
	if err := s.Attach("missing", testPNG(t)); !errors.Is(err, block.ErrUploadNotAccepted) {
		t.Errorf("Attach(missing) error = %v", err)
	}

	s.ClearFocus()
	par := s.Insert(common.KindParagraph, nil)
	if err := s.Attach(par, testPNG(t)); !errors.Is(err, block.ErrUploadNotAccepted) {
		t.Errorf("Attach(paragraph) error = %v", err)
	}
}

func TestStore_AttachSide(t *testing.T) {
	s := newTestStore(t)
	pair := s.InsertLayout("paragraph-image")

	if err := s.AttachSide(pair, common.SideRight, testPNG(t)); err != nil {
		t.Fatalf("AttachSide() error = %v", err)
	}
	b, _ := s.Find(pair)
	if right, _ := b.Side(common.SideRight); block.IsEmpty(right) {
		t.Error("right side still empty after upload")
	}
	if err := s.AttachSide(pair, common.SideLeft, testPNG(t)); !errors.Is(err, block.ErrUploadNotAccepted) {
		t.Errorf("AttachSide(paragraph) error = %v", err)
	}

	s.ClearFocus()
	single := s.Insert(common.KindImage, nil)
	if err := s.AttachSide(single, common.SideLeft, testPNG(t)); !errors.Is(err, block.ErrUploadNotAccepted) {
		t.Errorf("AttachSide(single) error = %v", err)
	}
}
