package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/1broseidon/winstate/internal/windowstate"
)

func runReset(args []string) int {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	common := addCommonFlags(fs)
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winstate reset [--yes]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Delete the saved window state so the next window opens at the default size.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reset takes no arguments")
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

	if _, err := store.Load(); errors.Is(err, windowstate.ErrNoState) {
		fmt.Printf("no saved state at %s\n", store.Path())
		return 0
	}

	if !*yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "refusing to reset without a terminal; pass --yes")
			return 1
		}
		ok, err := confirmReset(store.Path())
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return 1
			}
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if !ok {
			fmt.Println("kept", store.Path())
			return 0
		}
	}

	if err := store.Remove(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Debug("window state removed", "path", store.Path())
	fmt.Println("removed", store.Path())
	return 0
}

func confirmReset(path string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete saved window state?").
				Description(path).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
