package session

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"composer/block"
	"composer/common"
	"composer/composer"
	"composer/config"
)

func testEditorConfig() *config.EditorConfig {
	return &config.EditorConfig{
		IDs:      common.IDSchemeCounter,
		Language: "nl",
		Templates: config.TemplatesConfig{
			PictorialUnits: 3,
			InterviewUnits: 4,
			CitationEvery:  3,
		},
	}
}

func newTestRunner(t *testing.T, dir string) (*Runner, *composer.Store) {
	t.Helper()
	log := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg := testEditorConfig()
	store := NewStore(cfg, log)
	return NewRunner(store, cfg, dir, log), store
}

func mustParse(t *testing.T, script string) []Op {
	t.Helper()
	ops, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatalf("ParseScript() error = %v", err)
	}
	return ops
}

func topIDs(s *composer.Store) []block.ID {
	var out []block.ID
	for _, b := range s.Blocks() {
		out = append(out, b.ID)
	}
	return out
}

func TestRunner_Run(t *testing.T) {
	r, store := newTestRunner(t, t.TempDir())
	ops := mustParse(t, `
template pictorial 2
update @1 {html: "<p>Intro</p>"}
unfocus
insert paragraph {html: "<p>Outro</p>"}
link $last
complete @1
swap $last
break $last
move @2 up
move @1 up
delete @5
focus missing
`)

	res, err := r.Run(context.Background(), ops)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Applied != 10 || res.Ignored != 2 {
		t.Errorf("Run() = %+v, want 10 applied and 2 ignored", res)
	}
	if got, want := topIDs(store), []block.ID{"b9", "b1", "b2", "b5"}; !slices.Equal(got, want) {
		t.Errorf("blocks = %v, want %v", got, want)
	}
	if !store.HasText("b9") || !store.HasText("b1") {
		t.Error("text content lost while linking")
	}
	if store.Focus() != block.NoID {
		t.Errorf("focus = %q, want none after focusing missing block", store.Focus())
	}
}

func TestRunner_References(t *testing.T) {
	r, store := newTestRunner(t, t.TempDir())
	ops := mustParse(t, `
insert heading
insert paragraph
insert image
focus @2
delete $focus
duplicate @1
delete $last
delete @7
`)

	res, err := r.Run(context.Background(), ops)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Ignored != 1 {
		t.Errorf("Run() ignored %d ops, want 1", res.Ignored)
	}
	if got, want := topIDs(store), []block.ID{"b1", "b3"}; !slices.Equal(got, want) {
		t.Errorf("blocks = %v, want %v", got, want)
	}
}

func TestRunner_TemplateDefaultUnits(t *testing.T) {
	r, store := newTestRunner(t, t.TempDir())
	if _, err := r.Run(context.Background(), mustParse(t, "template interview")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	// audio, 3 pairs, citation, last pair
	if store.Len() != 6 {
		t.Errorf("interview with default units produced %d blocks, want 6", store.Len())
	}
}

func TestRunner_UpdateSide(t *testing.T) {
	r, store := newTestRunner(t, t.TempDir())
	ops := mustParse(t, `
layout paragraph-citation
update-side $last right {quote: "<p>Quote</p>", person: Anna}
update-side $last left {html: "<p>Side</p>"}
update $last {html: "<p>not for pairs</p>"}
`)
	res, err := r.Run(context.Background(), ops)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Applied != 3 || res.Ignored != 1 {
		t.Errorf("Run() = %+v", res)
	}
	pair, _ := store.Find("b1")
	right, _ := pair.Side(common.SideRight)
	if c, ok := right.Content.(block.CitationContent); !ok || c.Person != "Anna" {
		t.Errorf("right side = %#v", right.Content)
	}
}

func TestRunner_Upload(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 3, 3))); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pic.png"), buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	r, store := newTestRunner(t, dir)
	res, err := r.Run(context.Background(), mustParse(t, `
insert image
upload $last pic.png
upload $last absent.png
layout image-image
upload-side $last left pic.png
`))
	if err == nil {
		t.Fatal("Run() expected error for absent upload")
	}
	if len(multierr.Errors(err)) != 1 || !strings.Contains(err.Error(), "line 4: upload") {
		t.Errorf("Run() error = %v", err)
	}
	if res.Applied != 4 {
		t.Errorf("Run() applied %d ops, want 4", res.Applied)
	}

	b, _ := store.Find("b1")
	c := b.Content.(block.ImageContent)
	if !strings.HasPrefix(c.Image, "file://") || !strings.HasSuffix(c.Image, "/pic.png") {
		t.Errorf("image url = %q", c.Image)
	}
	pair, _ := store.Find("b2")
	if left, _ := pair.Side(common.SideLeft); block.IsEmpty(left) {
		t.Error("left side is empty after upload")
	}
}

func TestRunner_Errors(t *testing.T) {
	r, store := newTestRunner(t, t.TempDir())
	res, err := r.Run(context.Background(), mustParse(t, `
insert widget
insert paragraph
move @1 sideways
template gallery
layout nope
update @1 {html: [unclosed
`))
	if got := len(multierr.Errors(err)); got != 5 {
		t.Errorf("Run() reported %d errors, want 5: %v", got, err)
	}
	if res.Applied != 1 || store.Len() != 1 {
		t.Errorf("Run() = %+v, blocks = %d", res, store.Len())
	}
}

func TestRunner_Cancelled(t *testing.T) {
	r, store := newTestRunner(t, t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Run(ctx, mustParse(t, "insert paragraph"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
	if res.Applied != 0 || store.Len() != 0 {
		t.Errorf("cancelled run changed the store")
	}
}
