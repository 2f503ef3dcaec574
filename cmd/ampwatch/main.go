// cmd/ampwatch/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tamzrod/amp-bridge/internal/config"
	"github.com/tamzrod/amp-bridge/internal/logging"
	"github.com/tamzrod/amp-bridge/internal/monitor"
	"github.com/tamzrod/amp-bridge/internal/poller"
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `ampwatch: live view of an amplifier feed

Usage:
  ampwatch [OPTIONS] <config.yaml>

Options:
  -log PATH         Write logs to PATH (default: discard)
  -level LEVEL      Override log.level from the config
`)
}

func main() {
	logPath := flag.String("log", "", "log file path")
	level := flag.String("level", "", "log level override")
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() != 1 {
		printUsage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *logPath, *level); err != nil {
		fmt.Fprintf(os.Stderr, "ampwatch: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, logPath, level string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if level != "" {
		cfg.Bridge.Log.Level = level
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	b := cfg.Bridge

	// The terminal belongs to the view; logs go to a file or nowhere.
	logger := zap.NewNop().Sugar()
	if logPath != "" {
		logger, err = logging.New(b.Log.Level, logPath)
		if err != nil {
			return err
		}
		defer logger.Sync()
	}

	p, closePoller, err := poller.Build(b, logger.Named("poller"))
	if err != nil {
		return fmt.Errorf("poller build failed: %w", err)
	}
	defer closePoller()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan poller.PollResult)
	go func() {
		p.Run(ctx, results)
		close(results)
	}()

	name := b.Source.Kind + ":" + b.Source.Address
	prog := tea.NewProgram(monitor.New(name, results), tea.WithAltScreen())
	_, err = prog.Run()
	return err
}
