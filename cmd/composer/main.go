package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"composer/common"
	"composer/config"
	"composer/misc"
	"composer/session"
	"composer/state"
)

// initializeAppContext runs after command line is parsed and before any
// subcommand: configuration, debug report and logs.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		// help will be shown
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// keep effective configuration when user supplied one
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	if err = env.SetLanguage(env.Cfg.Editor.Language); err != nil {
		return ctx, fmt.Errorf("unable to prepare editor: %w", err)
	}

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	env.RestoreStdLog()

	// log is synced and could go into report, from here errors are returned
	// to be printed on stderr
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// nothing crashed - remove empty panic file
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Subcommands return plain errors instead of cli.Exit(), they are logged here
// while log is still open and main only sets exit code.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// reported by exitErrHandler or printed by main
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	documentHelp := fmt.Sprintf(`%s
DOCUMENT:
    article document file (YAML) previously produced by "new" or "apply"
`, cli.CommandHelpTemplate)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "block composition engine for articles",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "new",
				Usage:        "Creates new article document",
				OnUsageError: usageErrorHandler,
				Action:       session.New,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "article `TITLE`, also used to derive file name"},
					&cli.StringFlag{Name: "lang", Usage: "article `LANGUAGE` (BCP 47), defaults to configured one"},
					&cli.StringFlag{Name: "template", Usage: "pre-fill article with `TEMPLATE` (supported templates: " + strings.Join(common.TemplateNames(), ", ") + ")"},
					&cli.IntFlag{Name: "units", Usage: "`NUMBER` of repeated template units, defaults to configured one"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "overwrite destination if it exists"},
				},
				ArgsUsage: "[DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
DESTINATION:
    document file name or directory, if absent - current working directory
    when directory is given file name is derived from the title
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "apply",
				Usage:        "Applies editing script to the document",
				OnUsageError: usageErrorHandler,
				Action:       session.Apply,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "overwrite destination if it exists"},
					&cli.BoolFlag{Name: "keep-going", Aliases: []string{"k"}, Usage: "save document even if some script lines failed"},
				},
				ArgsUsage: "SCRIPT DOCUMENT [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(`%s
SCRIPT:
    text file with one operation per line, empty lines and lines starting
    with '#' are ignored. Supported operations:
        %s

    Block ids could be given literally or as references:
        $last  - block produced by the most recent insert, layout, duplicate,
                 complete or template operation
        $focus - currently focused block
        @N     - N-th top level block (starting with 1)

DOCUMENT:
    article document file (YAML)

DESTINATION:
    where to save result, if absent - DOCUMENT is updated in place
`, cli.CommandHelpTemplate, strings.Join(usages(), "\n        ")),
			},
			{
				Name:               "outline",
				Usage:              "Prints document outline, one line per block",
				OnUsageError:       usageErrorHandler,
				Action:             session.Outline,
				ArgsUsage:          "DOCUMENT",
				CustomHelpTemplate: documentHelp,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "preview", Usage: "skip blocks which would not be shown to the reader"},
				},
			},
			{
				Name:               "preview",
				Usage:              "Outputs document as reader would see it, without empty blocks (YAML)",
				OnUsageError:       usageErrorHandler,
				Action:             session.Preview,
				ArgsUsage:          "DOCUMENT",
				CustomHelpTemplate: documentHelp,
			},
			{
				Name:         "assist",
				Usage:        "Lists text assistant actions available for the block",
				OnUsageError: usageErrorHandler,
				Action:       session.Assist,
				ArgsUsage:    "DOCUMENT [ID]",
				CustomHelpTemplate: fmt.Sprintf(`%s
DOCUMENT:
    article document file (YAML)

ID:
    block id, if absent - focused block of the document
`, cli.CommandHelpTemplate),
			},
			{
				Name:               "inspect",
				Usage:              "Prints internal state of the document for troubleshooting",
				OnUsageError:       usageErrorHandler,
				Action:             session.Inspect,
				ArgsUsage:          "DOCUMENT",
				CustomHelpTemplate: documentHelp,
			},
			{
				Name:         "kinds",
				Usage:        "Lists block kinds, layouts and templates",
				OnUsageError: usageErrorHandler,
				Action:       session.Kinds,
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func usages() []string {
	names := session.OpNames()
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, session.Usage(name))
	}
	return out
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Writing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
