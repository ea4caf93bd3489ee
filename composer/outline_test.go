package composer

import (
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"composer/block"
	"composer/common"
)

func TestOutline(t *testing.T) {
	list := []block.Block{
		block.NewSingle("b1", common.KindHeading, block.HeadingContent{HTML: "<h1>Hello &amp; welcome</h1>"}),
		block.NewSingle("b2", common.KindParagraph, nil),
		block.NewPair("b3",
			block.NewSingle("b4", common.KindParagraph, block.ParagraphContent{HTML: strings.Repeat("word ", 20)}),
			block.NewSingle("b5", common.KindImage, block.ImageContent{Image: "a.png"})),
		block.NewSingle("b6", common.KindImage, nil),
	}

	want := []string{
		`1. [b1] Kop "Hello & welcome"`,
		`2. [b2] Alinea (leeg)`,
		`3. [b3] Alinea "word word word word word word word word..." | Afbeelding`,
		`4. [b6] Afbeelding (leeg)`,
	}
	if got := Outline(list, zap.NewNop()); !slices.Equal(got, want) {
		t.Errorf("Outline() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestOutline_UnknownKind(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	list := []block.Block{{ID: "x1", Kind: common.Kind("poll")}}

	got := Outline(list, zap.New(core))
	if len(got) != 1 || got[0] != "1. [x1] <poll?>" {
		t.Errorf("Outline() = %v", got)
	}
	if logs.Len() != 1 {
		t.Errorf("expected single warning, got %d", logs.Len())
	}
}
