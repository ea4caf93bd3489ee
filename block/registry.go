package block

import (
	"composer/common"
)

// KindInfo describes how block kind is offered to the user.
type KindInfo struct {
	Kind     common.Kind
	Label    string
	Icon     string
	Category common.Category
	Enabled  bool
	// Text kinds take part in the presence index.
	TextBearing bool
	// Nil for kinds that do not accept file uploads.
	Upload *UploadConstraints
}

// Layout is predetermined combination of two kinds placed side by side.
type Layout struct {
	Name  string
	Label string
	Icon  string
	Left  common.Kind
	Right common.Kind
}

var (
	imageUpload = &UploadConstraints{
		AllowedTypes: []string{"image/jpeg", "image/png", "image/gif"},
		Description:  "JPG, PNG of GIF",
		MaxSizeMB:    10,
	}
	videoUpload = &UploadConstraints{
		AllowedTypes: []string{"video/mp4", "video/webm", "video/ogg"},
		Description:  "MP4, WebM of OGG",
		MaxSizeMB:    100,
	}
	audioUpload = &UploadConstraints{
		AllowedTypes: []string{"audio/mpeg", "audio/mp3", "audio/wav", "audio/x-wav", "audio/ogg"},
		Description:  "MP3, WAV of OGG",
		MaxSizeMB:    50,
	}
	attachmentUpload = &UploadConstraints{
		Description: "Alle bestandstypen",
		MaxSizeMB:   50,
	}
)

// in the order of the element picker
var kinds = []KindInfo{
	{Kind: common.KindHeading, Label: "Kop", Icon: "ui-diamond", Category: common.CategoryStandard, Enabled: true, TextBearing: true},
	{Kind: common.KindParagraph, Label: "Alinea", Icon: "ui-text-square", Category: common.CategoryStandard, Enabled: true, TextBearing: true},
	{Kind: common.KindImage, Label: "Afbeelding", Icon: "ui-photo", Category: common.CategoryStandard, Enabled: true, Upload: imageUpload},
	{Kind: common.KindTable, Label: "Tabel", Icon: "ui-square-grid-4x4", Category: common.CategoryStandard, Enabled: true},
	{Kind: common.KindCitation, Label: "Citaat", Icon: "ui-text-bubble", Category: common.CategoryStandard, Enabled: true, TextBearing: true},
	{Kind: common.KindVideo, Label: "Video", Icon: "ui-play-square", Category: common.CategoryMultimedia, Upload: videoUpload},
	{Kind: common.KindAttachment, Label: "Bijlage", Icon: "ui-paperclip", Category: common.CategoryMultimedia, Upload: attachmentUpload},
	{Kind: common.KindAudio, Label: "Audiofragment", Icon: "ui-speaker-high", Category: common.CategoryMultimedia, Enabled: true, Upload: audioUpload},
	{Kind: common.KindCarousel, Label: "Carousel", Icon: "ui-carousel", Category: common.CategoryMultimedia, Upload: imageUpload},
}

var layouts = []Layout{
	{Name: "paragraph-paragraph", Label: "Alinea + Alinea", Icon: "ui-text-square", Left: common.KindParagraph, Right: common.KindParagraph},
	{Name: "image-image", Label: "Afbeelding + Afbeelding", Icon: "ui-photo", Left: common.KindImage, Right: common.KindImage},
	{Name: "paragraph-image", Label: "Alinea + Afbeelding", Icon: "ui-text-square", Left: common.KindParagraph, Right: common.KindImage},
	{Name: "paragraph-citation", Label: "Alinea + Citaat", Icon: "ui-text-square", Left: common.KindParagraph, Right: common.KindCitation},
}

// Lookup returns registry entry for the kind. Pair is not registered - it is
// never offered directly.
func Lookup(kind common.Kind) (KindInfo, bool) {
	for _, k := range kinds {
		if k.Kind == kind {
			return k, true
		}
	}
	return KindInfo{}, false
}

// Kinds returns all registered kinds in picker order.
func Kinds() []KindInfo {
	return append([]KindInfo(nil), kinds...)
}

func LookupLayout(name string) (Layout, bool) {
	for _, l := range layouts {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

func Layouts() []Layout {
	return append([]Layout(nil), layouts...)
}
