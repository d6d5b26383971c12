// Package config provides configuration for the variantboard tool.
package config

import (
	"io"
	"os"
	"runtime"
)

// Notation names accepted for move output.
const (
	NotationSAN = "san"
	NotationLAN = "lan"
)

// Config holds all program configuration.
type Config struct {
	// Verbosity: 0=errors only, 1=summaries, 2=running commentary
	Verbosity int `validate:"min=0,max=2"`

	Board *BoardConfig `validate:"required"`
	Perft *PerftConfig `validate:"required"`
	Shell *ShellConfig `validate:"required"`

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Board:      NewBoardConfig(),
		Perft:      NewPerftConfig(),
		Shell:      NewShellConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// BoardConfig selects the variant and the position to start from.
type BoardConfig struct {
	// Variant is a registered variant name or alias
	Variant string `validate:"required,variant"`

	// FEN is the starting position; empty means the variant's default
	FEN string

	// Notation is the move notation used for output
	Notation string `validate:"oneof=san lan"`
}

// NewBoardConfig creates a BoardConfig with default values.
func NewBoardConfig() *BoardConfig {
	return &BoardConfig{
		Variant:  "standard",
		Notation: NotationSAN,
	}
}

// PerftConfig holds settings for move path enumeration.
type PerftConfig struct {
	Depth int `validate:"min=1,max=12"`

	// Workers is the number of divide workers; 0 uses every CPU
	Workers int `validate:"min=0,max=256"`

	// CacheSize is the number of cached node counts; 0 disables the cache
	CacheSize int `validate:"min=0"`
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{
		Depth:     4,
		CacheSize: 1 << 20,
	}
}

// NumWorkers returns the effective worker count.
func (c *PerftConfig) NumWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// ShellConfig holds settings for the interactive shell.
type ShellConfig struct {
	Prompt      string `validate:"required,max=64"`
	HistoryFile string
}

// NewShellConfig creates a ShellConfig with default values.
func NewShellConfig() *ShellConfig {
	return &ShellConfig{
		Prompt:      "variantboard> ",
		HistoryFile: ".variantboard_history",
	}
}
