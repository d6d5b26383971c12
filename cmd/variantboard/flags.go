// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/variantboard-go/internal/config"
)

var (
	// Board options
	variantName = flag.String("variant", "standard", "Variant to play (see the 'variants' command)")
	fenString   = flag.String("fen", "", "Starting position (default: the variant's)")
	notation    = flag.String("notation", config.NotationSAN, "Move notation for output: san, lan")

	// Perft options
	perftDepth = flag.Int("depth", 4, "Default perft and divide depth")
	workers    = flag.Int("workers", 0, "Divide workers (0 = one per CPU)")
	cacheSize  = flag.Int("cache", 1<<20, "Perft cache entries (0 = no cache)")

	// Shell options
	prompt      = flag.String("prompt", "variantboard> ", "Interactive prompt")
	historyFile = flag.String("history", ".variantboard_history", "Shell history file (empty = none)")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	logFile    = flag.String("log", "", "Log file (default: stderr)")
	verbosity  = flag.Int("v", 1, "Verbosity: 0=errors only, 1=summaries, 2=commentary")
	quiet      = flag.Bool("q", false, "Quiet mode, same as -v 0")

	// Info
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Board.Variant = *variantName
	cfg.Board.FEN = *fenString
	cfg.Board.Notation = *notation

	cfg.Perft.Depth = *perftDepth
	cfg.Perft.Workers = *workers
	cfg.Perft.CacheSize = *cacheSize

	cfg.Shell.Prompt = *prompt
	cfg.Shell.HistoryFile = *historyFile

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}
}
