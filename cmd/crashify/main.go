// SPDX-License-Identifier: EPL-2.0

// Command crashify generates drum one-shots with the diffusion engine.
//
// Usage:
//
//	crashify [flags] generate
//	crashify [flags] drumify <seed>
//	crashify [flags] variation <seed>
//	crashify [flags] prepare <input> <output.wav>
//
// Every flag can also be set through a CRASHIFY_* environment variable; see
// internal/config. prepare only converts a file into a model ready seed and
// needs no models.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ik5/crashify/internal/config"
)

const usage = `usage:
  crashify [flags] generate
  crashify [flags] drumify <seed>
  crashify [flags] variation <seed>
  crashify [flags] prepare <input> <output.wav>

flags:
`

var errUsage = errors.New("invalid usage")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("crashify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	cfg.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cmd, err := parseCommand(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return 2
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if err := execute(ctx, cfg, cmd, log); err != nil {
		log.WithError(err).Error("crashify failed")
		return 1
	}

	return 0
}

func newLogger(level, format string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)

	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("log format %q: want text or json", format)
	}

	return log, nil
}
