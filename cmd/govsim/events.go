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

package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/sailakshmidurga/dao-governance/eventlog"
	"github.com/sailakshmidurga/dao-governance/governance"
)

var summaryFlag = &cli.BoolFlag{
	Name:  "summary",
	Usage: "Only print the replayed state, not every log",
}

var eventsCommand = &cli.Command{
	Name:  "events",
	Usage: "Dump persisted events and the state rebuilt from them",
	Flags: []cli.Flag{summaryFlag},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		store, err := eventlog.OpenStore(cfg.Node.DataDir, cfg.Node.DatabaseCache, cfg.Node.DatabaseHandles)
		if err != nil {
			return err
		}
		defer store.Close()

		logs, err := store.Logs()
		if err != nil {
			return err
		}
		w := ctx.App.Writer
		if !ctx.Bool(summaryFlag.Name) {
			printTitle(w, fmt.Sprintf("事件 (%d)", len(logs)))
			for _, l := range logs {
				fmt.Fprintf(w, "  #%-4d block %-6d %-22s id=%s actor=%s\n", l.Index, l.BlockNumber, l.Name, l.ID.TerminalString(), l.Actor.Hex())
			}
		}
		view, err := eventlog.Replay(logs)
		if err != nil {
			return err
		}
		var now uint64
		if len(logs) > 0 {
			now = logs[len(logs)-1].Time
		}
		printView(w, view, now)
		return nil
	},
}

// printView renders proposals and operations as of timestamp now.
func printView(w io.Writer, view *eventlog.View, now uint64) {
	printTitle(w, "提案")
	for _, p := range view.Proposals() {
		fmt.Fprintf(w, "  %s %q\n", p.ID.Hex(), p.Description)
		fmt.Fprintf(w, "    proposer %s, votes for=%s against=%s abstain=%s (%d voters)\n",
			p.Proposer.Hex(), p.ForVotes, p.Against, p.Abstain, len(p.Voters))
		printState(w, "  stage", p.Stage())
	}
	printTitle(w, "时间锁操作")
	for _, op := range view.Operations() {
		fmt.Fprintf(w, "  %s calls=%d ready=%d\n", op.ID.Hex(), op.Calls, op.ReadyAt)
		printState(w, "  state", op.State(now).String())
	}
	if len(view.Proposals()) > 0 {
		executed := 0
		for _, p := range view.Proposals() {
			if p.Stage() == governance.StateExecuted.String() {
				executed++
			}
		}
		fmt.Fprintf(w, "\n%d of %d proposals executed\n", executed, len(view.Proposals()))
	}
}
