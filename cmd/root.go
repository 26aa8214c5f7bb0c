package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"dashtable/internal/config"
	"dashtable/internal/datasource"
)

// Config holds CLI configuration.
type Config struct {
	Version     string
	ShowVersion bool
	ConfigPath  string
	LogPath     string
	View        config.ViewConfig
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	// Load .env files first so env-based defaults work with existing flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	return parseArgs(version, os.Args[1:])
}

func parseArgs(version string, args []string) (*Config, error) {
	cfg := &Config{Version: version}

	var sortLabel, parity string
	var desc bool

	fs := flag.NewFlagSet("dashtable", flag.ContinueOnError)
	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to a YAML view config (or set DASHTABLE_CONFIG)")
	fs.StringVar(&cfg.LogPath, "log", "", "Write debug logs to this file (or set DASHTABLE_LOG)")
	fs.StringVar(&sortLabel, "sort", "", "Initial sort column, e.g. Primary or Summary2")
	fs.BoolVar(&desc, "desc", false, "Sort descending")
	fs.StringVar(&parity, "parity", "", "Initial row parity: all, odd or even")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.ConfigPath == "" {
		cfg.ConfigPath = os.Getenv("DASHTABLE_CONFIG")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = os.Getenv("DASHTABLE_LOG")
	}

	if cfg.ConfigPath != "" {
		file, err := config.LoadConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg.View = file.View
	}

	// Flags win over the config file, but only when given.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["sort"] {
		if _, err := datasource.ParseColumn(sortLabel); err != nil {
			return nil, fmt.Errorf("invalid -sort: %w", err)
		}
		cfg.View.Sort = sortLabel
	}
	if set["desc"] {
		cfg.View.Desc = desc
	}
	if set["parity"] {
		if _, err := datasource.ParseRowParity(parity); err != nil {
			return nil, fmt.Errorf("invalid -parity: %w", err)
		}
		cfg.View.Parity = parity
	}

	return cfg, nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			continue
		}

		value = strings.Trim(value, `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
