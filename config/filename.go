package config

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	badFileName     = "_bad_file_name_"
	maxFileNameSize = 200
)

// cleanName drops forbidden and control characters, leading dots and
// trailing spaces and dots, and keeps result within file name size limits.
func cleanName(in, forbidden string, reserved func(string) bool) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbidden, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimRight(strings.TrimLeft(out, "."), ". ")

	for len(out) > maxFileNameSize {
		_, size := utf8.DecodeLastRuneInString(out)
		out = out[:len(out)-size]
	}

	if len(out) == 0 || (reserved != nil && reserved(out)) {
		return badFileName
	}
	return out
}
