package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/windowstate"
)

// outputFlags selects between aligned text and JSON. Piped output defaults to
// JSON.
type outputFlags struct {
	json bool
	text bool
}

func addOutputFlags(fs *flag.FlagSet) *outputFlags {
	o := &outputFlags{}
	fs.BoolVar(&o.json, "json", false, "Print JSON")
	fs.BoolVar(&o.text, "text", false, "Print text even when stdout is not a terminal")
	return o
}

func (o *outputFlags) wantJSON() bool {
	if o.json {
		return true
	}
	if o.text {
		return false
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type showOutput struct {
	Path     string               `json:"path"`
	Outcome  string               `json:"outcome"`
	Geometry windowstate.Geometry `json:"geometry"`
}

func runShow(args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := addCommonFlags(fs)
	out := addOutputFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate show [--json|--text]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Load the saved window state, reconcile it against the attached displays")
		fmt.Fprintln(os.Stderr, "and print the geometry a window would be restored to.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "show takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, logger, err := common.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to X server: %v\n", err)
		return 1
	}
	defer backend.Disconnect()

	mcfg := cfg.ManagerConfig(logger)
	mcfg.Store = store
	mgr := windowstate.New(mcfg, backend)

	res := showOutput{
		Path:     store.Path(),
		Outcome:  mgr.Outcome().String(),
		Geometry: mgr.State(),
	}
	if out.wantJSON() {
		if err := writeJSON(os.Stdout, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	printGeometry(os.Stdout, res.Path, res.Outcome, res.Geometry)
	return 0
}

func printGeometry(w io.Writer, path, outcome string, g windowstate.Geometry) {
	fmt.Fprintf(w, "file:           %s\n", path)
	fmt.Fprintf(w, "outcome:        %s\n", outcome)
	if g.X != nil && g.Y != nil {
		fmt.Fprintf(w, "position:       %d,%d\n", *g.X, *g.Y)
	} else {
		fmt.Fprintln(w, "position:       (window manager decides)")
	}
	fmt.Fprintf(w, "size:           %dx%d\n", g.Width, g.Height)
	fmt.Fprintf(w, "maximized:      %v\n", g.IsMaximized)
	fmt.Fprintf(w, "full_screen:    %v\n", g.IsFullScreen)
	if g.DisplayBounds != nil {
		fmt.Fprintf(w, "display_bounds: %s\n", g.DisplayBounds)
	}
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := addCommonFlags(fs)
	out := addOutputFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate displays [--json|--text]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List attached displays with their bounds.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "displays takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, _, err := common.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to X server: %v\n", err)
		return 1
	}
	defer backend.Disconnect()

	displays, err := backend.Displays()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if out.wantJSON() {
		if err := writeJSON(os.Stdout, displays); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	for _, d := range displays {
		marker := " "
		if d.Primary {
			marker = "*"
		}
		fmt.Printf("%s %d  %-10s %s\n", marker, d.ID, d.Name, d.Bounds)
	}
	return 0
}

type checkOutput struct {
	Visible  bool                 `json:"visible"`
	Stale    bool                 `json:"stale"`
	Outcome  string               `json:"outcome"`
	Restored windowstate.Geometry `json:"restored"`
}

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := addCommonFlags(fs)
	out := addOutputFlags(fs)
	rectArg := fs.String("rect", "", "Window rectangle as x,y,width,height (required)")
	displayArg := fs.String("display-bounds", "", "Saved display bounds as x,y,width,height")
	maximized := fs.Bool("maximized", false, "Treat the window as maximized")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate check --rect x,y,w,h [--display-bounds x,y,w,h] [--maximized]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Report whether a window rectangle would be restored as-is. Exits 1")
		fmt.Fprintln(os.Stderr, "when the rectangle would be discarded.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if *rectArg == "" || fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	rect, err := parseRect(*rectArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	rec := windowstate.RecordOf(windowstate.Geometry{
		X:           &rect.X,
		Y:           &rect.Y,
		Width:       rect.Width,
		Height:      rect.Height,
		IsMaximized: *maximized,
	})
	if *displayArg != "" {
		db, err := parseRect(*displayArg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		rec.DisplayBounds = &db
	}

	cfg, _, err := common.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to X server: %v\n", err)
		return 1
	}
	defer backend.Disconnect()

	res, err := checkRecord(rec, backend, windowstate.Defaults{Width: cfg.DefaultWidth, Height: cfg.DefaultHeight})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if out.wantJSON() {
		if err := writeJSON(os.Stdout, res); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		fmt.Printf("visible: %v\n", res.Visible)
		fmt.Printf("stale:   %v\n", res.Stale)
		fmt.Printf("outcome: %s\n", res.Outcome)
	}
	if res.Outcome != windowstate.OutcomeRestored.String() {
		return 1
	}
	return 0
}

func checkRecord(rec *windowstate.Record, screen platform.Screen, defaults windowstate.Defaults) (checkOutput, error) {
	topo, err := windowstate.CurrentTopology(screen)
	if err != nil {
		return checkOutput{}, err
	}
	g, outcome := windowstate.Reconcile(rec, topo, defaults)
	bounds := platform.Rect{X: *rec.X, Y: *rec.Y, Width: *rec.Width, Height: *rec.Height}
	return checkOutput{
		Visible:  windowstate.Visible(bounds, topo.Displays),
		Stale:    windowstate.IsStale(rec, topo),
		Outcome:  outcome.String(),
		Restored: g,
	}, nil
}

func runWindows(args []string) int {
	fs := flag.NewFlagSet("windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := addCommonFlags(fs)
	out := addOutputFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate windows [--json|--text]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List managed top-level windows and their ids for use with track.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, _, err := common.load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to X server: %v\n", err)
		return 1
	}
	defer backend.Disconnect()

	windows, err := backend.ListWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if out.wantJSON() {
		if err := writeJSON(os.Stdout, windows); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	for _, w := range windows {
		fmt.Printf("0x%08x  %-16s %s\n", uint32(w.ID), w.Class, w.Title)
	}
	return 0
}
