package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/1broseidon/winstate/internal/platform"
	"github.com/1broseidon/winstate/internal/windowstate"
)

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := addCommonFlags(fs)
	out := addOutputFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate watch [--json|--text]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the restored geometry now and again every time the state file")
		fmt.Fprintln(os.Stderr, "is written, until interrupted.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "watch takes no arguments")
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

	// The state file is replaced by rename, so watch its directory.
	dir := filepath.Dir(store.Path())
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file watcher: %v\n", err)
		return 1
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to watch %s: %v\n", dir, err)
		return 1
	}

	mcfg := cfg.ManagerConfig(logger)
	mcfg.Store = store
	report := func() {
		mgr := windowstate.New(mcfg, backend)
		res := showOutput{Path: store.Path(), Outcome: mgr.Outcome().String(), Geometry: mgr.State()}
		if out.wantJSON() {
			if err := writeJSON(os.Stdout, res); err != nil {
				logger.Warn("failed to write output", "error", err)
			}
			return
		}
		fmt.Printf("--- %s\n", time.Now().Format(time.TimeOnly))
		printGeometry(os.Stdout, res.Path, res.Outcome, res.Geometry)
	}
	report()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	delay := cfg.EventDelay()
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if isStateEvent(event, store.Path()) {
				logger.Debug("state file changed", "op", event.Op.String())
				pending = time.After(delay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			logger.Warn("file watcher error", "error", err)
		case <-pending:
			pending = nil
			report()
		case <-sigCh:
			return 0
		}
	}
}

// isStateEvent reports whether event changes the file at path. Temp files
// written beside it are ignored until they are renamed into place.
func isStateEvent(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
