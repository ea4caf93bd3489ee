package block

import (
	"composer/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// Dump returns a readable tree of the block list. It exists solely for manual
// inspection during debugging.
func Dump(list []Block) string {
	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Blocks: %d", len(list))
	for i, b := range list {
		tw.block(1, i, "Block", b)
	}
	return tw.String()
}

func (tw treeWriter) block(depth, idx int, label string, b Block) {
	if b.IsPair() {
		tw.Line(depth, "%s[%d] id=%q type=%q", label, idx, b.ID, b.Kind)
		if b.Left != nil {
			tw.block(depth+1, 0, "Left", *b.Left)
		}
		if b.Right != nil {
			tw.block(depth+1, 1, "Right", *b.Right)
		}
		return
	}

	tw.Line(depth, "%s[%d] id=%q type=%q", label, idx, b.ID, b.Kind)
	tw.Flags(depth+1, "State", map[string]bool{"text": HasText(b), "empty": IsEmpty(b)}, "text", "empty")
	switch c := b.Content.(type) {
	case HeadingContent:
		tw.TextBlock(depth+1, "HTML", c.HTML)
	case ParagraphContent:
		tw.TextBlock(depth+1, "HTML", c.HTML)
	case CitationContent:
		tw.TextBlock(depth+1, "Quote", c.Quote)
		tw.TextBlock(depth+1, "Person", c.Person)
	case ImageContent:
		tw.Line(depth+1, "Image=%q source=%q", c.Image, c.Source)
		tw.TextBlock(depth+1, "Caption", c.Caption)
	case TableContent:
		tw.Line(depth+1, "Table %dx%d columnHeader=%t rowHeader=%t", c.Rows, c.Columns, c.ColumnHeader, c.RowHeader)
	case AudioContent:
		tw.Line(depth+1, "Audio=%q title=%q file=%q", c.Audio, c.Title, c.FileName)
	case VideoContent:
		tw.Line(depth+1, "Video=%q source=%q", c.Video, c.Source)
	case AttachmentContent:
		tw.Line(depth+1, "Attachment=%q file=%q size=%q", c.Attachment, c.FileName, c.FileSize)
	case CarouselContent:
		tw.Line(depth+1, "Carousel images=%d", len(c.Images))
	case nil:
		tw.Line(depth+1, "<no content>")
	}
}
