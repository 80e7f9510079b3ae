package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/1broseidon/winstate/internal/appdata"
	"github.com/1broseidon/winstate/internal/config"
	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/windowstate"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "track":
		os.Exit(runTrack(os.Args[2:]))
	case "show":
		os.Exit(runShow(os.Args[2:]))
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "check":
		os.Exit(runCheck(os.Args[2:]))
	case "reset":
		os.Exit(runReset(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winstate <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  track [window-id]   Track a window and save its geometry on close")
	fmt.Fprintln(w, "  show                Show the geometry that would be restored")
	fmt.Fprintln(w, "  displays            List attached displays")
	fmt.Fprintln(w, "  windows             List managed top-level windows")
	fmt.Fprintln(w, "  check               Check a rectangle against the attached displays")
	fmt.Fprintln(w, "  reset               Delete the saved window state")
	fmt.Fprintln(w, "  watch               Print the restored geometry whenever the state file changes")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winstate <command> --help' for command-specific options.")
}

// commonFlags are accepted by every command that touches the state file.
type commonFlags struct {
	configPath string
	dir        string
	file       string
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.configPath, "config", "", "Config file path (default: ~/.config/winstate/config.yaml)")
	fs.StringVar(&c.dir, "path", "", "Directory holding the state file (overrides config)")
	fs.StringVar(&c.file, "file", "", "State file name (overrides config)")
	return c
}

// load resolves the effective config with flag overrides applied and builds
// a stderr logger at the configured level.
func (c *commonFlags) load() (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath == "" {
		cfg, err = config.Load()
	} else {
		var res *config.LoadResult
		res, err = config.LoadFromPath(c.configPath)
		if res != nil {
			cfg = res.Config
		}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.dir != "" {
		cfg.Path = c.dir
	}
	if c.file != "" {
		cfg.File = c.file
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, logger, nil
}

func openStore(cfg *config.Config) (*windowstate.FileStore, error) {
	dir := cfg.Path
	if dir == "" {
		d, err := appdata.Dir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return windowstate.NewFileStore(dir, cfg.File)
}

// parseRect accepts "x,y,width,height".
func parseRect(s string) (platform.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return platform.Rect{}, fmt.Errorf("rectangle must be x,y,width,height, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return platform.Rect{}, fmt.Errorf("invalid rectangle component %q: %w", p, err)
		}
		vals[i] = v
	}
	if vals[2] <= 0 || vals[3] <= 0 {
		return platform.Rect{}, fmt.Errorf("rectangle width and height must be > 0")
	}
	return platform.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// parseWindowID accepts decimal or 0x-prefixed hex ids as printed by xwininfo.
func parseWindowID(s string) (platform.WindowID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	if v == 0 {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	return platform.WindowID(v), nil
}

func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}
