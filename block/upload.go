package block

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	"composer/common"
)

// UploadConstraints limit files accepted by media kinds.
type UploadConstraints struct {
	// Empty list accepts any type.
	AllowedTypes []string
	Description  string
	MaxSizeMB    int
}

var (
	ErrUploadNotAccepted = errors.New("kind does not accept uploads")
	ErrUploadTooLarge    = errors.New("file is too large")
	ErrUploadType        = errors.New("file type is not allowed")
	ErrUploadBroken      = errors.New("image could not be decoded")
)

// Upload is a file offered to a media block. URL is what ends up in the
// payload, data is only inspected.
type Upload struct {
	Name string
	URL  string
	Data []byte
}

// UploadInfo is what was learned from the file content.
type UploadInfo struct {
	MIME      string
	Extension string
	Size      int
}

// CheckUpload validates the file against constraints of the kind. Type is
// detected from content, file name extension is used only when content is
// not recognized.
func CheckUpload(kind common.Kind, up Upload) (UploadInfo, error) {
	ki, ok := Lookup(kind)
	if !ok || ki.Upload == nil {
		return UploadInfo{}, fmt.Errorf("%s: %w", kind, ErrUploadNotAccepted)
	}
	uc := ki.Upload

	info := UploadInfo{
		Size:      len(up.Data),
		Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(up.Name)), "."),
	}
	if info.Size > uc.MaxSizeMB*1024*1024 {
		return info, fmt.Errorf("%s (%s, max %d MB): %w", up.Name, FormatFileSize(info.Size), uc.MaxSizeMB, ErrUploadTooLarge)
	}

	t, err := filetype.Match(up.Data)
	if err == nil && t != filetype.Unknown {
		info.MIME = t.MIME.Value
		if info.Extension == "" {
			info.Extension = t.Extension
		}
	}
	if len(uc.AllowedTypes) > 0 && !slices.Contains(uc.AllowedTypes, info.MIME) {
		detected := info.MIME
		if detected == "" {
			detected = "unknown"
		}
		return info, fmt.Errorf("%s (%s, allowed %s): %w", up.Name, detected, uc.Description, ErrUploadType)
	}

	if strings.HasPrefix(info.MIME, "image/") {
		if _, err := imaging.Decode(bytes.NewReader(up.Data)); err != nil {
			return info, fmt.Errorf("%s: %w: %w", up.Name, ErrUploadBroken, err)
		}
	}
	return info, nil
}

// Attach validates the upload and returns content with the file placed into
// it. Descriptive fields user already filled in (captions, titles, names) are
// preserved. Carousel gets a new image appended, its id comes from alloc.
func Attach(c Content, up Upload, alloc Allocator) (Content, error) {
	if c == nil {
		return nil, fmt.Errorf("no content: %w", ErrUploadNotAccepted)
	}
	info, err := CheckUpload(c.Kind(), up)
	if err != nil {
		return nil, err
	}

	switch v := c.(type) {
	case ImageContent:
		v.Image, v.Source = up.URL, common.SourceTypeBlob
		return v, nil
	case VideoContent:
		v.Video, v.Source = up.URL, common.SourceTypeBlob
		return v, nil
	case AudioContent:
		v.Audio, v.Source = up.URL, common.SourceTypeBlob
		v.FileName, v.FileType = up.Name, info.Extension
		return v, nil
	case AttachmentContent:
		v.Attachment, v.Source = up.URL, common.SourceTypeBlob
		v.OriginalFileName = up.Name
		if strings.TrimSpace(v.FileName) == "" {
			v.FileName = up.Name
		}
		v.FileSize = FormatFileSize(info.Size)
		v.FileType = strings.ToUpper(info.Extension)
		return v, nil
	case CarouselContent:
		images := slices.Clone(v.Images)
		v.Images = append(images, CarouselImage{ID: string(alloc.Next()), Image: up.URL})
		return v, nil
	}
	return nil, fmt.Errorf("%s: %w", c.Kind(), ErrUploadNotAccepted)
}

// FormatFileSize renders byte count the way attachment cards show it.
func FormatFileSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
}
