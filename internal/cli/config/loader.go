package config

import (
	"fmt"
	"os"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// nonConfFlags are flags that drive startup behavior rather than
// configuration; they never land in the config mapping.
var nonConfFlags = map[string]bool{
	"set":       true,
	"pset":      true,
	"conf-file": true,
	"version":   true,
	"help":      true,
}

// Load consolidates configuration. Precedence (highest to lowest):
// flags > SQUILL_* environment variables > conf file > defaults. A missing
// conf file yields an empty mapping, not an error, unless its path was
// given explicitly and points at something unreadable.
func Load(confFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"url":          "",
		"history_file": DefaultHistoryFile(),
		"terminator":   DefaultTerminator,
		"verbose":      0,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. JSON conf file.
	path := confFile
	if path == "" {
		path = DefaultConfFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else if confFile != "" && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	// 3. Environment variables: SQUILL_URL -> url.
	if err := k.Load(env.Provider("SQUILL_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SQUILL_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || nonConfFlags[f.Name] {
				return "", nil
			}
			if f.Name == "verbose" {
				count, _ := flags.GetCount("verbose")
				return "verbose", count
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.HistoryFile = expandHome(cfg.HistoryFile)
	return &cfg, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
