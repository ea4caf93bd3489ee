// Package session connects composition engine to the outside world: document
// snapshots on disk, op scripts and command line actions.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"composer/block"
	"composer/composer"
	"composer/config"
)

const documentVersion = 1

// Document is snapshot of the composer state exchanged with the host.
type Document struct {
	Title  string
	Lang   language.Tag
	Blocks []block.Block
	Focus  block.ID
}

type wireDocument struct {
	Version int           `yaml:"version"`
	Title   string        `yaml:"title"`
	Lang    string        `yaml:"lang"`
	Focus   block.ID      `yaml:"focus,omitempty"`
	Blocks  []block.Block `yaml:"blocks"`
}

func (d Document) MarshalYAML() (any, error) {
	blocks := d.Blocks
	if blocks == nil {
		blocks = []block.Block{}
	}
	return wireDocument{
		Version: documentVersion,
		Title:   d.Title,
		Lang:    d.Lang.String(),
		Focus:   d.Focus,
		Blocks:  blocks,
	}, nil
}

func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	var w wireDocument
	if err := value.Decode(&w); err != nil {
		return err
	}
	return d.fromWire(w)
}

func (d *Document) fromWire(w wireDocument) error {
	if w.Version != documentVersion {
		return fmt.Errorf("unsupported document version %d", w.Version)
	}
	lang := language.Und
	if w.Lang != "" {
		var err error
		if lang, err = language.Parse(w.Lang); err != nil {
			return fmt.Errorf("bad document language %q: %w", w.Lang, err)
		}
	}
	*d = Document{Title: w.Title, Lang: lang, Blocks: w.Blocks, Focus: w.Focus}
	return nil
}

// Validate checks structural invariants of the snapshot. All violations are
// reported at once.
func (d *Document) Validate() error {
	err := block.Validate(d.Blocks)
	if d.Focus != block.NoID && block.IndexOf(d.Blocks, d.Focus) < 0 {
		err = multierr.Append(err, fmt.Errorf("focus %q does not reference top level block", d.Focus))
	}
	return err
}

// Parse decodes and validates document.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// decoding wire form directly keeps unknown top level fields rejected
	var w wireDocument
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("unable to decode document: %w", err)
	}
	var doc Document
	if err := doc.fromWire(w); err != nil {
		return nil, fmt.Errorf("unable to decode document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &doc, nil
}

// Marshal encodes document in its on disk form.
func (d *Document) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("unable to encode document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("unable to encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads document from file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

var ErrDocumentExists = errors.New("document already exists")

// Save writes document to file. Existing file is only replaced when overwrite
// is requested.
func (d *Document) Save(path string, overwrite bool) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrDocumentExists)
		}
		return fmt.Errorf("unable to create document: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("unable to write document: %w", err)
	}
	return f.Close()
}

// Restore loads document into the store.
func (d *Document) Restore(s *composer.Store) {
	s.Restore(d.Blocks, d.Focus)
}

// Capture takes current state of the store into the document.
func (d *Document) Capture(s *composer.Store) {
	d.Blocks, d.Focus = s.Blocks(), s.Focus()
}

// FileName derives file name for the document from its title.
func (d *Document) FileName() string {
	base, _ := d.Lang.Base()
	name := slug.MakeLang(strings.TrimSpace(d.Title), base.String())
	if name == "" {
		name = "article"
	}
	return config.CleanFileName(name) + ".yaml"
}
