// Package config loads the client configuration from the JSON conf file,
// environment variables and command-line flags.
package config

import (
	"os"
	"path/filepath"
)

// DefaultConfFile is the conf file consulted when --conf-file is not given.
const DefaultConfFile = "./squill.json"

// DefaultTerminator is the statement terminator stripped from input.
const DefaultTerminator = ";"

// Config is the consolidated client configuration.
type Config struct {
	// URL is the database connection URL. Required.
	URL string `koanf:"url"`

	// HistoryFile is where the input history is persisted across sessions.
	HistoryFile string `koanf:"history_file"`

	// Terminator is stripped (once) from the end of each input line.
	Terminator string `koanf:"terminator"`

	// Verbose is the messaging level; its effects are incremental.
	Verbose int `koanf:"verbose"`
}

// DefaultHistoryFile returns the per-user history file path.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".squill_history"
	}
	return filepath.Join(home, ".squill_history")
}
