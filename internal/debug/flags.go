// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package debug wires the logging flags shared by the command line tools.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	VerbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	LogJSONFlag = &cli.BoolFlag{
		Name:  "log.json",
		Usage: "Format logs with JSON",
	}
	LogFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "Write logs to a file instead of stderr",
	}
	LogMaxSizeFlag = &cli.IntFlag{
		Name:  "log.maxsize",
		Usage: "Maximum size in MBs of a single log file",
		Value: 100,
	}
	LogMaxBackupsFlag = &cli.IntFlag{
		Name:  "log.maxbackups",
		Usage: "Maximum number of log files to retain",
		Value: 10,
	}
	LogCompressFlag = &cli.BoolFlag{
		Name:  "log.compress",
		Usage: "Compress the rotated log files",
	}
)

// Flags holds all command-line flags required for debugging.
var Flags = []cli.Flag{
	VerbosityFlag,
	LogJSONFlag,
	LogFileFlag,
	LogMaxSizeFlag,
	LogMaxBackupsFlag,
	LogCompressFlag,
}

// LogConfig describes where and how logs are written.
type LogConfig struct {
	Verbosity  int    // 0..5
	JSON       bool   // JSON 格式输出
	File       string // 为空时写 stderr
	MaxSize    int    // MB
	MaxBackups int
	Compress   bool
}

var rotator *lumberjack.Logger

// Setup initializes logging from the command line flags.
func Setup(ctx *cli.Context) error {
	return SetupLogging(&LogConfig{
		Verbosity:  ctx.Int(VerbosityFlag.Name),
		JSON:       ctx.Bool(LogJSONFlag.Name),
		File:       ctx.String(LogFileFlag.Name),
		MaxSize:    ctx.Int(LogMaxSizeFlag.Name),
		MaxBackups: ctx.Int(LogMaxBackupsFlag.Name),
		Compress:   ctx.Bool(LogCompressFlag.Name),
	})
}

// SetupLogging installs the root logger described by cfg.
func SetupLogging(cfg *LogConfig) error {
	handler, err := NewHandler(cfg, os.Stderr)
	if err != nil {
		return err
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

// NewHandler builds the log handler described by cfg. Terminal output is
// coloured only when stderr is a terminal and JSON is off.
func NewHandler(cfg *LogConfig, stderr *os.File) (slog.Handler, error) {
	if cfg.Verbosity < 0 || cfg.Verbosity > 5 {
		return nil, fmt.Errorf("invalid verbosity %d", cfg.Verbosity)
	}
	level := log.FromLegacyLevel(cfg.Verbosity)

	var (
		output   io.Writer = stderr
		useColor           = false
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		Exit()
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		}
		output = rotator
	} else if !cfg.JSON && stderr != nil {
		useColor = (isatty.IsTerminal(stderr.Fd()) || isatty.IsCygwinTerminal(stderr.Fd())) && os.Getenv("TERM") != "dumb"
		if useColor {
			output = colorable.NewColorable(stderr)
		}
	}

	if cfg.JSON {
		return log.JSONHandlerWithLevel(output, level), nil
	}
	return log.NewTerminalHandlerWithLevel(output, level, useColor), nil
}

// Exit closes the rotating log file, if any.
func Exit() {
	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
}
