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

// govsim deploys the governance system on an in-process chain, drives a
// proposal through its lifecycle and inspects the recorded events.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/sailakshmidurga/dao-governance/internal/config"
	"github.com/sailakshmidurga/dao-governance/internal/debug"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "TOML configuration file",
		EnvVars: []string{"DAOGOV_CONFIG"},
	}
	dataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory for the event database",
	}
)

func newApp() *cli.App {
	app := &cli.App{
		Name:  "govsim",
		Usage: "DAO governance simulator",
		Flags: append([]cli.Flag{configFileFlag, dataDirFlag}, debug.Flags...),
		Commands: []*cli.Command{
			simulateCommand,
			hashCommand,
			eventsCommand,
			dumpConfigCommand,
		},
		Before: func(ctx *cli.Context) error {
			return debug.Setup(ctx)
		},
		After: func(ctx *cli.Context) error {
			debug.Exit()
			return nil
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration named on the command line. The
// --datadir flag takes precedence over the file and the environment.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String(configFileFlag.Name))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.Node.DataDir = ctx.String(dataDirFlag.Name)
	}
	return cfg, nil
}

var dumpConfigCommand = &cli.Command{
	Name:  "dumpconfig",
	Usage: "Print the effective configuration",
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		out, err := cfg.Encode()
		if err != nil {
			return err
		}
		_, err = ctx.App.Writer.Write(out)
		return err
	},
}
