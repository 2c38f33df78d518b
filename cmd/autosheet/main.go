// Command autosheet is a minimal CLI front-end over the engine package: it
// loads an optional YAML config, applies a sequence of "Sheet!A1=formula"
// assignments, and prints the evaluated result of one target cell.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/groq/groq-autosheet/engine"
)

func main() {
	var (
		configPath string
		target     string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "path to a YAML config provisioning sheets")
	flag.StringVar(&target, "eval", "", "Sheet!A1 address to evaluate and print")
	flag.BoolVar(&verbose, "verbose", false, "log parse and evaluation diagnostics")
	flag.Parse()

	logger := engine.NewConsoleLogger("autosheet")
	if !verbose {
		logger = logger.Level(zerolog.Disabled)
	}

	wb := engine.NewWorkbook()
	if configPath != "" {
		cfg, err := engine.LoadConfig(configPath)
		if err != nil {
			logger.Error().Err(err).Msg("failed to load config")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg.Apply(wb)
		if cfg.Verbose {
			logger = engine.NewConsoleLogger("autosheet")
		}
	}

	for _, assignment := range flag.Args() {
		sheet, address, formula, ok := splitAssignment(assignment)
		if !ok {
			fmt.Fprintf(os.Stderr, "ignoring malformed assignment %q (want Sheet!A1=value)\n", assignment)
			continue
		}
		if err := wb.SetCell(sheet, address, formula); err != nil {
			logger.Error().Err(err).Str("assignment", assignment).Msg("failed to set cell")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if target == "" {
		return
	}

	sheet, address, err := splitTarget(target)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ev := engine.NewEvaluator(wb)
	ev.SetLogger(logger)
	result := ev.EvaluateCell(sheet, address)
	fmt.Println(result)
}

// splitAssignment parses "Sheet!A1=value" into its sheet, address, and raw
// value (parsed as a float64 when possible, a formula string when it
// begins with '=', otherwise kept as text).
func splitAssignment(s string) (sheet, address string, value engine.Value, ok bool) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return "", "", nil, false
	}
	lhs, rhs := s[:eq], s[eq+1:]
	bang := strings.LastIndexByte(lhs, '!')
	if bang < 0 {
		return "", "", nil, false
	}
	sheet, address = lhs[:bang], lhs[bang+1:]
	if strings.HasPrefix(rhs, "=") {
		return sheet, address, rhs, true
	}
	if n, err := strconv.ParseFloat(rhs, 64); err == nil {
		return sheet, address, n, true
	}
	return sheet, address, rhs, true
}

func splitTarget(s string) (sheet, address string, err error) {
	bang := strings.LastIndexByte(s, '!')
	if bang < 0 {
		return "", "", fmt.Errorf("invalid -eval target %q (want Sheet!A1)", s)
	}
	return s[:bang], s[bang+1:], nil
}
