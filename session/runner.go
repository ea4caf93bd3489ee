package session

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"composer/block"
	"composer/common"
	"composer/composer"
	"composer/config"
)

// Result summarizes script execution.
type Result struct {
	Applied int
	// Ops engine quietly refused: missing ids, boundaries and the like.
	Ignored int
}

// Runner executes ops against the store. Ids in arguments may be given
// literally or as references: $last is the id produced by the most recent
// creating op, $focus is currently focused block and @N is N-th top level
// block (1 based).
type Runner struct {
	store *composer.Store
	cfg   *config.EditorConfig
	log   *zap.Logger
	// relative upload paths are resolved against it
	dir  string
	last block.ID
}

func NewRunner(store *composer.Store, cfg *config.EditorConfig, dir string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{store: store, cfg: cfg, dir: dir, log: log}
}

// Run executes ops in order. Malformed arguments and rejected uploads are
// collected and returned together, they do not stop execution.
func (r *Runner) Run(ctx context.Context, ops []Op) (Result, error) {
	var (
		res  Result
		errs error
	)
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return res, multierr.Append(errs, err)
		}
		applied, err := r.exec(op)
		switch {
		case err != nil:
			errs = multierr.Append(errs, fmt.Errorf("line %d: %s: %w", op.Line, op.Name, err))
		case applied:
			res.Applied++
			r.log.Debug("Op applied", zap.Int("line", op.Line), zap.Stringer("op", op))
		default:
			res.Ignored++
			r.log.Warn("Op has no effect", zap.Int("line", op.Line), zap.Stringer("op", op))
		}
	}
	return res, errs
}

func (r *Runner) exec(op Op) (bool, error) {
	s := r.store
	switch op.Name {
	case "insert":
		kind, err := common.ParseKind(op.Args[0])
		if err != nil {
			return false, err
		}
		var content block.Content
		if op.Payload != "" {
			if content, err = block.DecodeContent(kind, []byte(op.Payload)); err != nil {
				return false, err
			}
		}
		return r.created(s.Insert(kind, content))

	case "layout":
		if _, ok := block.LookupLayout(op.Args[0]); !ok {
			return false, fmt.Errorf("unknown layout %q", op.Args[0])
		}
		return r.created(s.InsertLayout(op.Args[0]))

	case "update":
		id := r.resolve(op.Args[0])
		b, ok := s.Find(id)
		if !ok || b.IsPair() {
			return false, nil
		}
		content, err := block.DecodeContent(b.Kind, []byte(op.Payload))
		if err != nil {
			return false, err
		}
		return s.Update(id, content), nil

	case "update-side":
		id := r.resolve(op.Args[0])
		side, err := common.ParseSide(op.Args[1])
		if err != nil {
			return false, err
		}
		b, ok := s.Find(id)
		if !ok || !b.IsPair() {
			return false, nil
		}
		child, _ := b.Side(side)
		content, err := block.DecodeContent(child.Kind, []byte(op.Payload))
		if err != nil {
			return false, err
		}
		return s.UpdateSide(id, side, content), nil

	case "upload":
		up, err := r.readUpload(op.Args[1])
		if err != nil {
			return false, err
		}
		if err := s.Attach(r.resolve(op.Args[0]), up); err != nil {
			return false, err
		}
		return true, nil

	case "upload-side":
		side, err := common.ParseSide(op.Args[1])
		if err != nil {
			return false, err
		}
		up, err := r.readUpload(op.Args[2])
		if err != nil {
			return false, err
		}
		if err := s.AttachSide(r.resolve(op.Args[0]), side, up); err != nil {
			return false, err
		}
		return true, nil

	case "move":
		dir, err := common.ParseDirection(op.Args[1])
		if err != nil {
			return false, err
		}
		return s.Move(r.resolve(op.Args[0]), dir), nil

	case "duplicate":
		id, ok := s.Duplicate(r.resolve(op.Args[0]))
		if ok {
			r.last = id
		}
		return ok, nil

	case "delete":
		return s.Delete(r.resolve(op.Args[0])), nil

	case "focus":
		id := r.resolve(op.Args[0])
		s.SetFocus(id)
		return id != block.NoID && s.Focus() == id, nil

	case "unfocus":
		s.ClearFocus()
		return true, nil

	case "link":
		return s.StartLink(r.resolve(op.Args[0])), nil

	case "complete":
		id, ok := s.CompleteLink(r.resolve(op.Args[0]))
		if ok {
			r.last = id
		}
		return ok, nil

	case "swap":
		return s.Swap(r.resolve(op.Args[0])), nil

	case "break":
		return s.BreakLink(r.resolve(op.Args[0])), nil

	case "template":
		tmpl, err := common.ParseTemplate(op.Args[0])
		if err != nil {
			return false, err
		}
		n := r.cfg.DefaultUnits(tmpl)
		if len(op.Args) > 1 {
			if n, err = strconv.Atoi(op.Args[1]); err != nil {
				return false, fmt.Errorf("bad number of units %q: %w", op.Args[1], err)
			}
		}
		return r.created(s.InsertTemplate(tmpl, n))
	}
	return false, fmt.Errorf("unknown op %q", op.Name)
}

func (r *Runner) created(id block.ID) (bool, error) {
	if id == block.NoID {
		return false, nil
	}
	r.last = id
	return true, nil
}

func (r *Runner) resolve(ref string) block.ID {
	switch {
	case ref == "$last":
		return r.last
	case ref == "$focus":
		return r.store.Focus()
	case strings.HasPrefix(ref, "@"):
		n, err := strconv.Atoi(ref[1:])
		list := r.store.Blocks()
		if err != nil || n < 1 || n > len(list) {
			r.log.Debug("Position reference out of range", zap.String("ref", ref), zap.Int("blocks", len(list)))
			return block.NoID
		}
		return list[n-1].ID
	}
	return block.ID(ref)
}

func (r *Runner) readUpload(name string) (block.Upload, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return block.Upload{}, fmt.Errorf("unable to read upload: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return block.Upload{}, err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return block.Upload{Name: filepath.Base(path), URL: u.String(), Data: data}, nil
}
