package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/CrestNiraj12/authordir/app"
	"github.com/CrestNiraj12/authordir/infra/config"
	"github.com/CrestNiraj12/authordir/infra/logging"
	"github.com/CrestNiraj12/authordir/infra/placeholder"
	"github.com/CrestNiraj12/authordir/tui"
	"github.com/CrestNiraj12/authordir/tui/refresh"
	"github.com/CrestNiraj12/authordir/tui/view"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const printWidth = 80

type cliMode int

const (
	cliRun cliMode = iota
	cliPrint
	cliVersion
	cliHelp
	cliInvalid
)

type cliOptions struct {
	baseURL    string
	configPath string
	logFile    string
	debug      bool
	print      bool
	author     int
}

type cliFlags struct {
	cliOptions
	version bool
	help    bool
}

func newFlagSet(f *cliFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet("authordir", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.baseURL, "base-url", "", "placeholder API root (overrides config)")
	fs.StringVar(&f.configPath, "config", config.DefaultPath(), "YAML config file")
	fs.StringVar(&f.logFile, "log-file", "", "log destination (overrides config)")
	fs.BoolVar(&f.debug, "debug", false, "log at debug level")
	fs.BoolVar(&f.print, "print", false, "render one author's posts to stdout and exit")
	fs.IntVar(&f.author, "author", 0, "author id for --print")
	fs.BoolVarP(&f.version, "version", "v", false, "print version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
	return fs
}

func parseCLIArgs(args []string) (cliOptions, cliMode, string) {
	var f cliFlags
	fs := newFlagSet(&f)
	if err := fs.Parse(args); err != nil {
		return f.cliOptions, cliInvalid, err.Error()
	}

	switch {
	case f.help || (fs.NArg() > 0 && fs.Arg(0) == "help"):
		return f.cliOptions, cliHelp, ""
	case f.version:
		return f.cliOptions, cliVersion, ""
	case fs.NArg() > 0:
		return f.cliOptions, cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(fs.Args(), " "))
	case f.print && f.author <= 0:
		return f.cliOptions, cliInvalid, "--print requires --author with a positive id"
	case f.print:
		return f.cliOptions, cliPrint, ""
	}
	return f.cliOptions, cliRun, ""
}

func usage() string {
	var f cliFlags
	return "Usage: authordir [flags]\n\n" + newFlagSet(&f).FlagUsages()
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// loadConfig reads the config file and environment, then applies flag
// overrides on top.
func loadConfig(opts cliOptions) (config.Config, slog.Level, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, 0, err
	}
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, 0, err
	}
	level, err := cfg.Level()
	return cfg, level, err
}

// printAuthor runs a single refresh for userID and writes the rendered view
// to w.
func printAuthor(ctx context.Context, w io.Writer, dir app.DirectoryService, logger *slog.Logger, userID int) error {
	orch := refresh.New(dir, logger)
	state := refresh.NewViewState(logger)

	posts, err := dir.FetchUserPosts(ctx, userID)
	if err != nil {
		return fmt.Errorf("posts for user %d: %w", userID, err)
	}
	if _, err := orch.Refresh(ctx, state, posts); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, state.Render(view.RenderOptions{Width: printWidth}))
	return err
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, mode, msg := parseCLIArgs(args)
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("AuthorDir %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return 0
	case cliHelp:
		fmt.Print(usage())
		return 0
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s", msg, usage())
		return 2
	}

	// 1. Load config from file, environment and flags.
	cfg, level, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	logger, closer, err := logging.New(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return 1
	}
	defer closer.Close()

	// 2. Build infrastructure.
	client := placeholder.NewClient(cfg.BaseURL, cfg.Timeout)
	gateway := placeholder.NewGateway(client, logger)
	logger.Info("starting", "base_url", client.BaseURL(), "print", mode == cliPrint)

	if mode == cliPrint {
		if err := printAuthor(context.Background(), os.Stdout, gateway, logger, opts.author); err != nil {
			fmt.Fprintf(os.Stderr, "authordir: %v\n", err)
			return 1
		}
		return 0
	}

	uiState, err := config.LoadUIState(cfg.UIStatePath)
	if err != nil {
		logger.Warn("ignoring ui state", "error", err)
	}

	// 3. Wire root TUI model.
	rootModel := tui.NewApp(tui.Deps{
		Directory:    gateway,
		Logger:       logger,
		StatePath:    cfg.UIStatePath,
		LastAuthorID: uiState.LastAuthorID,
	})

	// 4. Run.
	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "authordir: %v\n", err)
		return 1
	}
	return 0
}
