package block

import (
	"composer/common"
)

// Content is a closed set of per-kind payloads. Shape of the payload is
// always known from the block kind.
type Content interface {
	Kind() common.Kind
	sealed()
}

type HeadingContent struct {
	HTML string `yaml:"html"`
}

type ParagraphContent struct {
	HTML string `yaml:"html"`
}

type CitationContent struct {
	Quote  string `yaml:"quote"`
	Person string `yaml:"person"`
}

type ImageContent struct {
	Image   string            `yaml:"image"`
	AltText string            `yaml:"alt_text"`
	Caption string            `yaml:"caption"`
	Source  common.SourceType `yaml:"source,omitempty"`
}

// TableContent keeps cells as Data[row][column].
type TableContent struct {
	Rows         int        `yaml:"rows"`
	Columns      int        `yaml:"columns"`
	Data         [][]string `yaml:"data"`
	ColumnHeader bool       `yaml:"column_header"`
	RowHeader    bool       `yaml:"row_header"`
}

type AudioContent struct {
	Audio    string            `yaml:"audio"`
	Title    string            `yaml:"title"`
	FileName string            `yaml:"file_name"`
	FileType string            `yaml:"file_type"`
	Source   common.SourceType `yaml:"source,omitempty"`
}

type VideoContent struct {
	Video   string            `yaml:"video"`
	Caption string            `yaml:"caption"`
	Source  common.SourceType `yaml:"source,omitempty"`
}

type AttachmentContent struct {
	Attachment       string            `yaml:"attachment"`
	FileName         string            `yaml:"file_name"`
	OriginalFileName string            `yaml:"original_file_name"`
	FileSize         string            `yaml:"file_size"`
	FileType         string            `yaml:"file_type"`
	Source           common.SourceType `yaml:"source,omitempty"`
}

type CarouselImage struct {
	ID      string `yaml:"id"`
	Image   string `yaml:"image"`
	AltText string `yaml:"alt_text,omitempty"`
	Caption string `yaml:"caption"`
}

type CarouselContent struct {
	Images []CarouselImage `yaml:"images"`
}

func (HeadingContent) Kind() common.Kind    { return common.KindHeading }
func (ParagraphContent) Kind() common.Kind  { return common.KindParagraph }
func (CitationContent) Kind() common.Kind   { return common.KindCitation }
func (ImageContent) Kind() common.Kind      { return common.KindImage }
func (TableContent) Kind() common.Kind      { return common.KindTable }
func (AudioContent) Kind() common.Kind      { return common.KindAudio }
func (VideoContent) Kind() common.Kind      { return common.KindVideo }
func (AttachmentContent) Kind() common.Kind { return common.KindAttachment }
func (CarouselContent) Kind() common.Kind   { return common.KindCarousel }

func (HeadingContent) sealed()    {}
func (ParagraphContent) sealed()  {}
func (CitationContent) sealed()   {}
func (ImageContent) sealed()      {}
func (TableContent) sealed()      {}
func (AudioContent) sealed()      {}
func (VideoContent) sealed()      {}
func (AttachmentContent) sealed() {}
func (CarouselContent) sealed()   {}

// EmptyContent returns payload new block of the kind starts with. Pair has no
// payload of its own and nil is returned for it.
func EmptyContent(kind common.Kind) Content {
	switch kind {
	case common.KindHeading:
		return HeadingContent{}
	case common.KindParagraph:
		return ParagraphContent{}
	case common.KindCitation:
		return CitationContent{}
	case common.KindImage:
		return ImageContent{}
	case common.KindTable:
		return TableContent{}
	case common.KindAudio:
		return AudioContent{}
	case common.KindVideo:
		return VideoContent{}
	case common.KindAttachment:
		return AttachmentContent{}
	case common.KindCarousel:
		return CarouselContent{}
	}
	return nil
}
