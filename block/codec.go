package block

import (
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"composer/common"
)

// Blocks are stored as a tagged union:
//
//	- id: b1
//	  type: paragraph
//	  content:
//	    html: <p>text</p>
//	- id: b4
//	  type: pair
//	  left: {id: b2, type: paragraph, content: {html: ""}}
//	  right: {id: b3, type: image, content: {image: ""}}

type wireBlock struct {
	ID      ID          `yaml:"id"`
	Type    common.Kind `yaml:"type"`
	Content Content     `yaml:"content,omitempty"`
	Left    *Block      `yaml:"left,omitempty"`
	Right   *Block      `yaml:"right,omitempty"`
}

type wireBlockIn struct {
	ID      ID          `yaml:"id"`
	Type    common.Kind `yaml:"type"`
	Content yaml.Node   `yaml:"content"`
	Left    *Block      `yaml:"left"`
	Right   *Block      `yaml:"right"`
}

// MarshalYAML implements yaml.Marshaler.
func (b Block) MarshalYAML() (any, error) {
	return wireBlock{ID: b.ID, Type: b.Kind, Content: b.Content, Left: b.Left, Right: b.Right}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Content is decoded into the
// payload type of the declared kind, unknown kinds are rejected.
func (b *Block) UnmarshalYAML(value *yaml.Node) error {
	var in wireBlockIn
	if err := value.Decode(&in); err != nil {
		return err
	}
	if !in.Type.IsValid() {
		return fmt.Errorf("block '%s' (line %d): missing or unknown type '%s'", in.ID, value.Line, in.Type)
	}

	out := Block{ID: in.ID, Kind: in.Type}
	if in.Type.IsPair() {
		if in.Left == nil || in.Right == nil {
			return fmt.Errorf("pair block '%s' (line %d): both left and right are required", in.ID, value.Line)
		}
		out.Left, out.Right = in.Left, in.Right
	} else {
		content, err := decodeContent(in.Type, &in.Content)
		if err != nil {
			return fmt.Errorf("block '%s' (line %d): %w", in.ID, value.Line, err)
		}
		out.Content = content
	}
	*b = out
	return nil
}

func decodeContent(kind common.Kind, node *yaml.Node) (Content, error) {
	switch kind {
	case common.KindHeading:
		return decodeAs[HeadingContent](node)
	case common.KindParagraph:
		return decodeAs[ParagraphContent](node)
	case common.KindCitation:
		return decodeAs[CitationContent](node)
	case common.KindImage:
		return decodeAs[ImageContent](node)
	case common.KindTable:
		return decodeAs[TableContent](node)
	case common.KindAudio:
		return decodeAs[AudioContent](node)
	case common.KindVideo:
		return decodeAs[VideoContent](node)
	case common.KindAttachment:
		return decodeAs[AttachmentContent](node)
	case common.KindCarousel:
		return decodeAs[CarouselContent](node)
	}
	return nil, fmt.Errorf("no content schema for '%s'", kind)
}

func decodeAs[T Content](node *yaml.Node) (Content, error) {
	var c T
	// absent content means empty payload
	if node.Kind == 0 {
		return c, nil
	}
	if err := node.Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to decode %s content: %w", c.Kind(), err)
	}
	return c, nil
}

// DecodeContent parses YAML (or JSON, which is YAML too) payload for the kind.
// Used when content arrives from outside as text.
func DecodeContent(kind common.Kind, data []byte) (Content, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("unable to parse content: %w", err)
	}
	// document node wraps actual value
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		return decodeContent(kind, node.Content[0])
	}
	return decodeContent(kind, &node)
}
