package state

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLanguage is used for new documents when nothing else is configured.
var DefaultLanguage = language.Dutch

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
		Lang:  DefaultLanguage,
	}
}

// SetLanguage parses BCP 47 tag and makes it default language of new
// documents. Empty value keeps current setting.
func (e *LocalEnv) SetLanguage(tag string) error {
	if tag == "" {
		return nil
	}
	lang, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("unable to parse language %q: %w", tag, err)
	}
	e.Lang = lang
	return nil
}
