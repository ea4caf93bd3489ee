package block

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PlainText strips markup produced by the rich text widget, decodes character
// references and collapses whitespace (non breaking space included).
func PlainText(markup string) string {
	if len(markup) == 0 {
		return ""
	}

	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed tail, either way we are done
			return strings.Join(strings.Fields(buf.String()), " ")
		case html.TextToken:
			buf.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if isBreaking(atom.Lookup(name)) {
				buf.WriteByte(' ')
			}
		}
	}
}

func isBreaking(a atom.Atom) bool {
	switch a {
	case atom.Br, atom.P, atom.Div, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Blockquote:
		return true
	}
	return false
}

// Text returns plain text carried by single block of a text bearing kind.
// Citation is evaluated by its quote only.
func Text(b Block) string {
	if !b.Kind.IsTextBearing() {
		return ""
	}
	switch c := b.Content.(type) {
	case HeadingContent:
		return PlainText(c.HTML)
	case ParagraphContent:
		return PlainText(c.HTML)
	case CitationContent:
		return PlainText(c.Quote)
	}
	return ""
}

// HasText reports whether block carries meaningful text. Pair qualifies when
// either of its sides does.
func HasText(b Block) bool {
	if b.IsPair() {
		return HasText(*b.Left) || HasText(*b.Right)
	}
	return len(Text(b)) > 0
}

// HasOtherText reports whether any top level block except the excluded one
// carries meaningful text.
func HasOtherText(list []Block, exclude ID) bool {
	for _, b := range list {
		if b.ID == exclude {
			continue
		}
		if HasText(b) {
			return true
		}
	}
	return false
}

// IsEmpty reports whether block has nothing to show. Pair is empty only when
// both sides are.
func IsEmpty(b Block) bool {
	if b.IsPair() {
		return IsEmpty(*b.Left) && IsEmpty(*b.Right)
	}
	switch c := b.Content.(type) {
	case HeadingContent, ParagraphContent:
		return !HasText(b)
	case CitationContent:
		return !HasText(b) && isBlank(c.Person)
	case ImageContent:
		return isBlank(c.Image)
	case VideoContent:
		return isBlank(c.Video)
	case AudioContent:
		return isBlank(c.Audio)
	case AttachmentContent:
		return isBlank(c.Attachment)
	case TableContent:
		for _, row := range c.Data {
			for _, cell := range row {
				if !isBlank(PlainText(cell)) {
					return false
				}
			}
		}
		return true
	case CarouselContent:
		for _, img := range c.Images {
			if !isBlank(img.Image) {
				return false
			}
		}
		return true
	}
	return true
}

func isBlank(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
