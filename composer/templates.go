package composer

import (
	"go.uber.org/zap"

	"composer/block"
	"composer/common"
)

// Templates produce ready-made sequences of blocks with empty content, caller
// fills them in afterwards.

// Expand builds block sequence for the template. n is number of repeated
// units (pictures, questions) and is ignored by textImage, negative n is
// treated as 0. Citation is placed after every citationEvery interview pair,
// never after the last one; citationEvery < 1 disables citations.
func Expand(tmpl common.Template, n int, citationEvery int, alloc block.Allocator) []block.Block {
	n = max(n, 0)
	switch tmpl {
	case common.TemplateTextImage:
		return textImage(alloc)
	case common.TemplatePictorial:
		return pictorial(n, alloc)
	case common.TemplateInterview:
		return interview(n, citationEvery, alloc)
	}
	return nil
}

func single(alloc block.Allocator, kind common.Kind) block.Block {
	return block.NewSingle(alloc.Next(), kind, nil)
}

// alternate pairs primary and secondary blocks for unit i (1 based): on even
// units primary goes left, on odd ones it goes right.
func alternate(alloc block.Allocator, i int, primary, secondary common.Kind) block.Block {
	id := alloc.Next()
	p, s := single(alloc, primary), single(alloc, secondary)
	if i%2 == 0 {
		return block.NewPair(id, p, s)
	}
	return block.NewPair(id, s, p)
}

func textImage(alloc block.Allocator) []block.Block {
	id := alloc.Next()
	return []block.Block{
		block.NewPair(id, single(alloc, common.KindParagraph), single(alloc, common.KindImage)),
	}
}

func pictorial(n int, alloc block.Allocator) []block.Block {
	seq := make([]block.Block, 0, n+2)
	seq = append(seq, single(alloc, common.KindParagraph))
	for i := 1; i <= n; i++ {
		seq = append(seq, alternate(alloc, i, common.KindParagraph, common.KindImage))
	}
	return append(seq, single(alloc, common.KindParagraph))
}

// interview pairs question (heading) with answer (paragraph).
func interview(n, citationEvery int, alloc block.Allocator) []block.Block {
	seq := make([]block.Block, 0, n+1+n/max(citationEvery, 1))
	seq = append(seq, single(alloc, common.KindAudio))
	for i := 1; i <= n; i++ {
		seq = append(seq, alternate(alloc, i, common.KindHeading, common.KindParagraph))
		if citationEvery > 0 && i%citationEvery == 0 && i != n {
			seq = append(seq, single(alloc, common.KindCitation))
		}
	}
	return seq
}

// InsertTemplate expands template and inserts the whole sequence at the
// anchor in one change, focusing its first block. Returns id of the first
// block.
func (s *Store) InsertTemplate(tmpl common.Template, n int) block.ID {
	seq := Expand(tmpl, n, s.opts.citationEvery, s.alloc)
	if len(seq) == 0 {
		s.log.Debug("Ignoring unknown template", zap.Stringer("template", tmpl))
		return block.NoID
	}
	s.insert("template", seq...)
	return seq[0].ID
}
