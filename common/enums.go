// Package common holds enumerations shared by the engine, the configuration
// and the command line. Values are persisted in documents and configuration
// files, so names must stay stable.
package common

//go:generate go tool go-enum --marshal --names --values

// Kind of the block. All kinds except pair carry a single content payload.
// ENUM(heading, paragraph, image, table, citation, audio, video, attachment, carousel, pair)
type Kind string

func (k Kind) IsPair() bool {
	return k == KindPair
}

// IsTextBearing reports whether block content of this kind could be
// evaluated for meaningful text.
func (k Kind) IsTextBearing() bool {
	return k == KindHeading || k == KindParagraph || k == KindCitation
}

// Direction of the block move.
// ENUM(up, down)
type Direction string

// Delta returns list index offset for the direction.
func (d Direction) Delta() int {
	if d == DirectionUp {
		return -1
	}
	return 1
}

// Side of the pair block.
// ENUM(left, right)
type Side string

// Template names ready-made block sequence.
// ENUM(textImage, pictorial, interview)
type Template string

// Id generation scheme.
// ENUM(uuid, counter)
type IDScheme string

// Where media content is coming from.
// ENUM(blob, url)
type SourceType string

// Group under which block kind is offered to the user.
// ENUM(standard, multimedia)
type Category string
