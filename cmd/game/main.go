package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/freshspray/invaders/internal/config"
	"github.com/freshspray/invaders/internal/joystick"
	"github.com/freshspray/invaders/internal/loop"
)

func main() {
	config.LoadDotenv()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// Joystick support is optional; without it the keyboard still works.
	bus, err := joystick.New()
	if err != nil {
		if !errors.Is(err, joystick.ErrOSNotSupported) {
			log.Warn("joystick bus unavailable", "err", err)
		}
		bus = nil
	}
	if bus != nil {
		defer bus.Close()
		// Keep background errors off the play terminal.
		go func() {
			for err := range bus.Errors() {
				log.Debug("joystick bus", "err", err)
			}
		}()
	}

	opts := loop.Options{
		Bus:         bus,
		ProfilePath: profilePath(),
	}

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// profilePath picks where calibration profiles live: CALIBRATION_FILE from
// the environment, or a file under the user config directory. Empty disables
// persistence.
func profilePath() string {
	if p := config.GetEnv("CALIBRATION_FILE", ""); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "invaders", "calibration.yaml")
}
