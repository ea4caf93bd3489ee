package block

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks structural invariants of the top level list: ids are
// present and unique across the whole document, kinds are known, payloads
// match their kinds and pairs hold exactly two single blocks. All violations
// are reported.
func Validate(list []Block) error {
	var (
		err  error
		seen = make(map[ID]struct{}, len(list))
	)
	for i, b := range list {
		err = multierr.Append(err, validateBlock(b, fmt.Sprintf("[%d]", i), seen, false))
	}
	return err
}

func validateBlock(b Block, path string, seen map[ID]struct{}, inPair bool) (err error) {
	if b.ID == NoID {
		err = multierr.Append(err, fmt.Errorf("%s: block has no id", path))
	} else if _, exists := seen[b.ID]; exists {
		err = multierr.Append(err, fmt.Errorf("%s: duplicate block id '%s'", path, b.ID))
	} else {
		seen[b.ID] = struct{}{}
	}

	if !b.Kind.IsValid() {
		return multierr.Append(err, fmt.Errorf("%s: unknown block type '%s'", path, b.Kind))
	}

	if b.IsPair() {
		if inPair {
			return multierr.Append(err, fmt.Errorf("%s: pair '%s' nested inside another pair", path, b.ID))
		}
		if b.Content != nil {
			err = multierr.Append(err, fmt.Errorf("%s: pair '%s' must not carry content", path, b.ID))
		}
		if b.Left == nil || b.Right == nil {
			return multierr.Append(err, fmt.Errorf("%s: pair '%s' must have both sides", path, b.ID))
		}
		err = multierr.Append(err, validateBlock(*b.Left, path+".left", seen, true))
		err = multierr.Append(err, validateBlock(*b.Right, path+".right", seen, true))
		return err
	}

	if b.Left != nil || b.Right != nil {
		err = multierr.Append(err, fmt.Errorf("%s: single block '%s' must not have sides", path, b.ID))
	}
	switch {
	case b.Content == nil:
		err = multierr.Append(err, fmt.Errorf("%s: block '%s' has no content", path, b.ID))
	case b.Content.Kind() != b.Kind:
		err = multierr.Append(err, fmt.Errorf("%s: block '%s' of type '%s' carries %s content", path, b.ID, b.Kind, b.Content.Kind()))
	}
	return err
}
