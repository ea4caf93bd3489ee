package composer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"composer/block"
)

const maxExcerpt = 40

// Outline maps every top level block to a single line the way renderer maps
// blocks to widgets: registry label, id and short text excerpt, pairs show
// both sides. Kinds without registered widget are reported and rendered as a
// placeholder.
func Outline(list []block.Block, log *zap.Logger) []string {
	out := make([]string, 0, len(list))
	for i, b := range list {
		var line string
		if b.IsPair() {
			line = fmt.Sprintf("%s | %s", describe(*b.Left, log), describe(*b.Right, log))
		} else {
			line = describe(b, log)
		}
		out = append(out, fmt.Sprintf("%d. [%s] %s", i+1, b.ID, line))
	}
	return out
}

func describe(b block.Block, log *zap.Logger) string {
	info, ok := block.Lookup(b.Kind)
	if !ok {
		log.Warn("No widget for block type, rendering placeholder", zap.String("id", string(b.ID)), zap.Stringer("type", b.Kind))
		return fmt.Sprintf("<%s?>", b.Kind)
	}
	if text := block.Text(b); len(text) > 0 {
		return fmt.Sprintf("%s %q", info.Label, excerpt(text))
	}
	if block.IsEmpty(b) {
		return info.Label + " (leeg)"
	}
	return info.Label
}

func excerpt(text string) string {
	r := []rune(text)
	if len(r) <= maxExcerpt {
		return text
	}
	return strings.TrimSpace(string(r[:maxExcerpt])) + "..."
}
