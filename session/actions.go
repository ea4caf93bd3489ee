package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"composer/block"
	"composer/common"
	"composer/composer"
	"composer/state"
)

func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// New creates document, optionally pre-filled by a template, and saves it.
func New(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("new")

	if err := env.SetLanguage(cmd.String("lang")); err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")

	doc := &Document{Title: cmd.String("title"), Lang: env.Lang}
	store := NewStore(&env.Cfg.Editor, log)

	if name := cmd.String("template"); name != "" {
		tmpl, err := common.ParseTemplate(name)
		if err != nil {
			return fmt.Errorf("unknown template, supported are %s: %w", strings.Join(common.TemplateNames(), ", "), err)
		}
		n := env.Cfg.Editor.DefaultUnits(tmpl)
		if cmd.IsSet("units") {
			n = int(cmd.Int("units"))
		}
		store.InsertTemplate(tmpl, n)
	}
	doc.Capture(store)

	dst, err := destination(cmd.Args().Get(0), doc)
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	if err := doc.Save(dst, env.Overwrite); err != nil {
		return err
	}
	reportDocument(env, "new", doc)
	log.Info("Document created", zap.String("file", dst), zap.Int("blocks", len(doc.Blocks)))
	return nil
}

// destination turns optional command line argument into document path. Empty
// argument or directory means name derived from the title.
func destination(arg string, doc *Document) (string, error) {
	if arg == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
		return filepath.Join(wd, doc.FileName()), nil
	}
	if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
		return filepath.Join(arg, doc.FileName()), nil
	}
	return filepath.Abs(arg)
}

// Apply runs op script against the document.
func Apply(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("apply")

	scriptPath, docPath := cmd.Args().Get(0), cmd.Args().Get(1)
	if scriptPath == "" || docPath == "" {
		return errors.New("both script and document have to be specified")
	}
	dst := cmd.Args().Get(2)
	env.Overwrite = cmd.Bool("overwrite") || dst == ""
	if dst == "" {
		dst = docPath
	}

	doc, err := Load(docPath)
	if err != nil {
		return err
	}
	reportDocument(env, "before", doc)

	f, err := os.Open(scriptPath)
	if err != nil {
		return fmt.Errorf("unable to open script: %w", err)
	}
	defer f.Close()

	ops, err := ParseScript(f)
	if err != nil {
		return fmt.Errorf("unable to parse script %s: %w", scriptPath, err)
	}
	if env.Rpt != nil {
		env.Rpt.Store("script/"+filepath.Base(scriptPath), scriptPath)
	}

	store := NewStore(&env.Cfg.Editor, log)
	doc.Restore(store)

	log.Info("Applying script", zap.String("script", scriptPath), zap.String("document", docPath), zap.Int("ops", len(ops)))
	defer func(start time.Time) {
		log.Info("Script completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	res, err := NewRunner(store, &env.Cfg.Editor, filepath.Dir(scriptPath), log).Run(ctx, ops)
	if err != nil && !cmd.Bool("keep-going") {
		return fmt.Errorf("script failed, document is not saved: %w", err)
	}
	if err != nil {
		log.Warn("Script had errors, saving anyway", zap.Error(err))
	}
	log.Info("Ops processed", zap.Int("applied", res.Applied), zap.Int("ignored", res.Ignored))

	doc.Capture(store)
	if env.Rpt != nil {
		env.Rpt.StoreData("state.txt", []byte(store.String()))
	}
	reportDocument(env, "after", doc)
	return doc.Save(dst, env.Overwrite)
}

// Outline prints one line per block.
func Outline(ctx context.Context, cmd *cli.Command) error {
	doc, log, err := loadArg(ctx, cmd, "outline")
	if err != nil {
		return err
	}
	list := doc.Blocks
	if cmd.Bool("preview") {
		list = composer.Preview(list)
	}
	return printLines(output(cmd), doc.Title, composer.Outline(list, log))
}

// Preview writes document the way reader would get it, empty blocks removed.
func Preview(ctx context.Context, cmd *cli.Command) error {
	doc, log, err := loadArg(ctx, cmd, "preview")
	if err != nil {
		return err
	}
	preview := &Document{Title: doc.Title, Lang: doc.Lang, Blocks: composer.Preview(doc.Blocks)}
	log.Debug("Preview prepared", zap.Int("blocks", len(doc.Blocks)), zap.Int("visible", len(preview.Blocks)))

	data, err := preview.Marshal()
	if err != nil {
		return err
	}
	_, err = output(cmd).Write(data)
	return err
}

// Assist lists text assistant actions for the block.
func Assist(ctx context.Context, cmd *cli.Command) error {
	doc, log, err := loadArg(ctx, cmd, "assist")
	if err != nil {
		return err
	}

	store := composer.New(block.NewAllocator(common.IDSchemeUuid), log)
	doc.Restore(store)

	id := block.ID(cmd.Args().Get(1))
	if id == block.NoID {
		id = store.Focus()
	}
	if id == block.NoID {
		return errors.New("no block specified and document has no focus")
	}
	if _, ok := store.Find(id); !ok {
		return fmt.Errorf("block %q not found", id)
	}

	suggestions := composer.Suggestions(store.Blocks(), id)
	lines := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if s.Enabled {
			lines = append(lines, fmt.Sprintf("+ %s: %s", s.Action, s.Label))
		} else {
			lines = append(lines, fmt.Sprintf("- %s: %s (%s)", s.Action, s.Label, s.Reason))
		}
	}
	if len(lines) == 0 {
		log.Info("Block has no text to assist with", zap.String("id", string(id)))
	}
	return printLines(output(cmd), "", lines)
}

// Inspect prints debug dump of the document state.
func Inspect(ctx context.Context, cmd *cli.Command) error {
	doc, log, err := loadArg(ctx, cmd, "inspect")
	if err != nil {
		return err
	}
	store := composer.New(block.NewAllocator(common.IDSchemeUuid), log)
	doc.Restore(store)
	_, err = io.WriteString(output(cmd), store.String())
	return err
}

// Kinds lists block kinds, layouts and templates available to the author.
func Kinds(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var lines []string
	for _, k := range block.Kinds() {
		status := "enabled"
		if !k.Enabled {
			status = "disabled"
		}
		line := fmt.Sprintf("%-11s %-15s %-10s %s", k.Kind, k.Label, k.Category, status)
		if k.Upload != nil {
			line += fmt.Sprintf(", upload %s max %d MB", k.Upload.Description, k.Upload.MaxSizeMB)
		}
		lines = append(lines, line)
	}
	lines = append(lines, "")
	for _, l := range block.Layouts() {
		lines = append(lines, fmt.Sprintf("%-20s %s", l.Name, l.Label))
	}
	lines = append(lines, "")
	lines = append(lines, "templates: "+strings.Join(common.TemplateNames(), ", "))
	return printLines(output(cmd), "", lines)
}

func loadArg(ctx context.Context, cmd *cli.Command, name string) (*Document, *zap.Logger, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named(name)

	src := cmd.Args().Get(0)
	if src == "" {
		return nil, nil, errors.New("no document has been specified")
	}
	doc, err := Load(src)
	if err != nil {
		return nil, nil, err
	}
	reportDocument(env, name, doc)
	return doc, log, nil
}

func printLines(w io.Writer, title string, lines []string) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// reportDocument keeps document snapshot in debug report.
func reportDocument(env *state.LocalEnv, stage string, doc *Document) {
	if env.Rpt == nil {
		return
	}
	data, err := doc.Marshal()
	if err != nil {
		env.Log.Warn("Unable to put document into report", zap.String("stage", stage), zap.Error(err))
		return
	}
	env.Rpt.StoreData(fmt.Sprintf("documents/%s-%s", stage, doc.FileName()), data)
}
