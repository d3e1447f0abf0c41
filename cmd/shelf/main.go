// Command shelf shows a book collection in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/golang/glog"

	backendtcell "github.com/odvcencio/furry-shelf/backend/tcell"
	"github.com/odvcencio/furry-shelf/booklist"
	"github.com/odvcencio/furry-shelf/config"
	"github.com/odvcencio/furry-shelf/runtime"
	"github.com/odvcencio/furry-shelf/theme"
	"github.com/odvcencio/furry-shelf/viewmodel"
)

const version = "0.1.0"

const usage = `Browse a shelf of books.

Usage:
    shelf [--config=<path>] [--books=<path>] [--theme=<name>] [--markdown] [--sync] [--log_dir=<dir>] [-v <level>]
    shelf themes
    shelf -h | --help
    shelf --version

Options:
    -h --help          Show this screen.
    --version          Show version.
    --config=<path>    Config file [default: shelf.yaml].
    --books=<path>     Read books from a YAML or JSON file.
    --theme=<name>     Chroma style used for colors.
    --markdown         Flatten markdown in descriptions.
    --sync             Load on the calling goroutine.
    --log_dir=<dir>    Directory for log files.
    -v <level>         Log verbosity [default: 0].`

type options struct {
	Config   string `docopt:"--config"`
	Books    string `docopt:"--books"`
	Theme    string `docopt:"--theme"`
	Markdown bool   `docopt:"--markdown"`
	Sync     bool   `docopt:"--sync"`
	LogDir   string `docopt:"--log_dir"`
	Verbose  string `docopt:"-v"`
	Themes   bool   `docopt:"themes"`
}

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse args: %v\n", err)
		os.Exit(2)
	}
	var args options
	if err := opts.Bind(&args); err != nil {
		fmt.Fprintf(os.Stderr, "parse args: %v\n", err)
		os.Exit(2)
	}
	if args.Themes {
		for _, name := range theme.Names() {
			fmt.Println(name)
		}
		return
	}
	if err := setupLogging(args); err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(2)
	}
	defer glog.Flush()

	if err := run(context.Background(), args); err != nil {
		glog.Errorf("shelf: %v", err)
		glog.Flush()
		fmt.Fprintf(os.Stderr, "shelf: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging points glog at files so the terminal stays clean.
func setupLogging(args options) error {
	settings := map[string]string{
		"logtostderr":     "false",
		"stderrthreshold": "FATAL",
		"v":               args.Verbose,
	}
	if args.LogDir != "" {
		if err := os.MkdirAll(args.LogDir, 0o755); err != nil {
			return err
		}
		settings["log_dir"] = args.LogDir
	}
	for name, value := range settings {
		if value == "" {
			continue
		}
		if err := flag.Set(name, value); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return flag.CommandLine.Parse(nil)
}

func loadConfig(args options) (config.Config, error) {
	cfg, err := config.LoadOptional(args.Config)
	if err != nil {
		return config.Config{}, err
	}
	if args.Books != "" {
		cfg.Source = config.SourceConfig{Kind: config.SourceFile, Path: args.Books, Delay: cfg.Source.Delay}
	}
	if args.Theme != "" {
		cfg.View.Theme = args.Theme
	}
	if args.Markdown {
		cfg.View.Markdown = true
	}
	if args.Sync {
		cfg.View.Async = false
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, args options) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger := glogLogger{}

	provider, closeProvider, err := cfg.Source.Open(logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeProvider(); err != nil {
			glog.Warningf("close provider: %v", err)
		}
	}()

	palette, ok := theme.FromChroma(cfg.View.Theme)
	if !ok {
		glog.Warningf("unknown theme %q, using %s", cfg.View.Theme, theme.DefaultName)
		palette = theme.Default()
	}

	vm := viewmodel.New(viewmodel.Config{
		Provider:  provider,
		DropStale: cfg.View.DropStale,
		Logger:    logger,
	})
	defer vm.Close()

	view := booklist.NewView(vm, booklist.Options{
		Title:       cfg.View.Title,
		Placeholder: cfg.View.Placeholder,
		Markdown:    cfg.View.Markdown,
		Theme:       palette,
		LoadOnMount: true,
		Async:       cfg.View.Async,
	})
	defer view.Close()

	be, err := backendtcell.New()
	if err != nil {
		return fmt.Errorf("backend init failed: %w", err)
	}
	app := runtime.NewApp(runtime.AppConfig{
		Backend:  be,
		Root:     view,
		TickRate: cfg.View.Tick,
	})
	glog.V(1).Infof("shelf starting: source=%s theme=%s async=%t", cfg.Source.Kind, palette.Name, cfg.View.Async)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app run failed: %w", err)
	}
	return nil
}
