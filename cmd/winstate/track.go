package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/windowstate"
)

func runTrack(args []string) int {
	fs := flag.NewFlagSet("track", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := addCommonFlags(fs)
	restore := fs.Bool("restore", false, "Move and resize the window to the saved geometry before tracking")
	title := fs.String("title", "", "Track the first window whose title contains this text")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate track [--restore] [--title TEXT | window-id]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Track a top-level window until it is destroyed, saving its geometry")
		fmt.Fprintln(os.Stderr, "when it closes. Without a window id the active window is tracked.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "track takes at most one window id")
		fs.Usage()
		return 2
	}
	if fs.NArg() == 1 && *title != "" {
		fmt.Fprintln(os.Stderr, "track takes either --title or a window id")
		return 2
	}

	cfg, logger, err := common.load()
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

	var id platform.WindowID
	switch {
	case fs.NArg() == 1:
		id, err = parseWindowID(fs.Arg(0))
	case *title != "":
		id, err = backend.FindWindow(*title)
	default:
		id, err = backend.ActiveWindow()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	win, err := backend.Window(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "window 0x%x: %v\n", uint32(id), err)
		return 1
	}

	mgr := windowstate.New(cfg.ManagerConfig(logger), backend)
	if *restore {
		if err := applyGeometry(backend, id, win, mgr.State()); err != nil {
			logger.Warn("failed to restore window geometry", "window", id, "error", err)
		}
	}
	mgr.Manage(win)

	closed := make(chan struct{})
	var once sync.Once
	sub := win.OnClosed(func() { once.Do(func() { close(closed) }) })
	defer sub.Cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go backend.EventLoop()
	logger.Info("tracking window", "window", fmt.Sprintf("0x%x", uint32(id)))

	select {
	case <-closed:
		logger.Info("window destroyed", "window", fmt.Sprintf("0x%x", uint32(id)))
	case sig := <-sigCh:
		logger.Info("received signal, saving", "signal", sig.String())
		mgr.SaveState(win)
	}

	mgr.Unmanage()
	backend.Quit()
	return 0
}

// applyGeometry moves win to the saved bounds. A geometry without a position
// only resizes the window in place.
func applyGeometry(backend platform.Backend, id platform.WindowID, win platform.Window, g windowstate.Geometry) error {
	bounds, ok := g.Bounds()
	if !ok {
		cur, err := win.Bounds()
		if err != nil {
			return err
		}
		bounds = platform.Rect{X: cur.X, Y: cur.Y, Width: g.Width, Height: g.Height}
	}
	return backend.MoveResize(id, bounds)
}
