package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"dashtable/cmd"
	"dashtable/internal/datasource"
	"dashtable/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		return err
	}

	if config.ShowVersion {
		fmt.Printf("dashtable %s\n", config.Version)
		return nil
	}

	if !term.IsTerminal(os.Stdout.Fd()) {
		return errors.New("dashtable needs an interactive terminal")
	}

	closeLog, err := setupLogging(config.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	ds, err := datasource.New(datasource.SampleRecords())
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	log.Printf("loaded %d records, %d columns", ds.Len(), ds.Width())

	// Create and run Bubble Tea app
	p := tea.NewProgram(ui.New(ds, ui.PrefsFromView(config.View)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Printf("program exited: %v", err)
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// setupLogging points the standard logger at path, or discards logs when
// path is empty. The program owns the terminal, so logs never go there.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "dashtable")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
