// SPDX-License-Identifier: EPL-2.0

// Command audsniff identifies, decodes and plays audio files.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ik5/audsniff"
	"github.com/ik5/audsniff/internal/config"
)

// version is set via ldflags at build time
var version = "dev"

const description = "Sniff the format of audio files, decode them to WAV or play them."

type Globals struct {
	Config  string `help:"Configuration file." type:"path" placeholder:"FILE"`
	Verbose bool   `short:"v" help:"Log decoder diagnostics."`
}

type cli struct {
	Globals

	Probe  probeCmd  `cmd:"" help:"Identify audio files."`
	Decode decodeCmd `cmd:"" help:"Decode a file to 16-bit PCM WAV."`
	Play   playCmd   `cmd:"" help:"Play a file on the default output device."`

	Version kong.VersionFlag `help:"Show version information."`
}

// app carries what every command needs.
type app struct {
	cfg     *config.Config
	factory *audsniff.Factory
	logger  *slog.Logger
	stdout  io.Writer
}

func newApp(g Globals, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if g.Verbose {
		cfg.LogLevel = "debug"
	}

	logger := cfg.Logger(stderr)
	return &app{
		cfg:     cfg,
		factory: audsniff.New(cfg.FactoryOptions(logger)...),
		logger:  logger,
		stdout:  stdout,
	}, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var c cli
	exitCode := -1

	parser, err := kong.New(&c,
		kong.Name("audsniff"),
		kong.Description(description),
		kong.Vars{"version": version},
		kong.Help(styledHelp),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
	)
	if err != nil {
		printError(stderr, err.Error())
		return 1
	}

	kctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		printError(stderr, err.Error())
		return 1
	}

	a, err := newApp(c.Globals, stdout, stderr)
	if err != nil {
		printError(stderr, err.Error())
		return 1
	}

	if err := kctx.Run(a); err != nil {
		printError(stderr, err.Error())
		if errors.Is(err, audsniff.ErrUnsupportedFormat) {
			return 2
		}
		return 1
	}
	return 0
}
