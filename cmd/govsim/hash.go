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

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/sailakshmidurga/dao-governance/governance"
	"github.com/sailakshmidurga/dao-governance/timelock"
)

var (
	targetFlag = &cli.StringSliceFlag{
		Name:     "target",
		Usage:    "Call target address (repeat for a batch)",
		Required: true,
	}
	valueFlag = &cli.StringSliceFlag{
		Name:  "value",
		Usage: "Wei sent with each call, decimal or 0x hex (defaults to 0)",
	}
	calldataFlag = &cli.StringSliceFlag{
		Name:  "calldata",
		Usage: "Hex calldata of each call (defaults to empty)",
	}
	descriptionFlag = &cli.StringFlag{
		Name:     "description",
		Usage:    "Proposal description",
		Required: true,
	}
	predecessorFlag = &cli.StringFlag{
		Name:  "predecessor",
		Usage: "Operation that must execute first",
	}
	saltFlag = &cli.StringFlag{
		Name:  "salt",
		Usage: "Operation salt",
	}
)

var hashCommand = &cli.Command{
	Name:  "hash",
	Usage: "Compute proposal and timelock operation ids offline",
	Subcommands: []*cli.Command{
		{
			Name:  "proposal",
			Usage: "Proposal id of a batch and description",
			Flags: []cli.Flag{targetFlag, valueFlag, calldataFlag, descriptionFlag},
			Action: func(ctx *cli.Context) error {
				targets, values, calldatas, err := parseBatch(ctx)
				if err != nil {
					return err
				}
				descHash := governance.DescriptionHash(ctx.String(descriptionFlag.Name))
				fmt.Fprintf(ctx.App.Writer, "description hash: %s\n", descHash.Hex())
				fmt.Fprintf(ctx.App.Writer, "proposal id:      %s\n", governance.HashProposal(targets, values, calldatas, descHash).Hex())
				return nil
			},
		},
		{
			Name:  "operation",
			Usage: "Timelock operation id of a call or batch",
			Flags: []cli.Flag{targetFlag, valueFlag, calldataFlag, predecessorFlag, saltFlag},
			Action: func(ctx *cli.Context) error {
				targets, values, calldatas, err := parseBatch(ctx)
				if err != nil {
					return err
				}
				predecessor, err := parseHash(ctx.String(predecessorFlag.Name))
				if err != nil {
					return fmt.Errorf("invalid predecessor: %w", err)
				}
				salt, err := parseHash(ctx.String(saltFlag.Name))
				if err != nil {
					return fmt.Errorf("invalid salt: %w", err)
				}
				var id common.Hash
				if len(targets) == 1 {
					id = timelock.HashOperation(targets[0], values[0], calldatas[0], predecessor, salt)
				} else {
					id = timelock.HashOperationBatch(targets, values, calldatas, predecessor, salt)
				}
				fmt.Fprintf(ctx.App.Writer, "operation id: %s\n", id.Hex())
				return nil
			},
		},
	},
}

// parseBatch reads the call batch flags. Missing values and calldata
// default to zero and empty; given lists must match the targets.
func parseBatch(ctx *cli.Context) ([]common.Address, []*uint256.Int, [][]byte, error) {
	rawTargets := ctx.StringSlice(targetFlag.Name)
	rawValues := ctx.StringSlice(valueFlag.Name)
	rawData := ctx.StringSlice(calldataFlag.Name)
	if len(rawValues) > 0 && len(rawValues) != len(rawTargets) {
		return nil, nil, nil, fmt.Errorf("%d values for %d targets", len(rawValues), len(rawTargets))
	}
	if len(rawData) > 0 && len(rawData) != len(rawTargets) {
		return nil, nil, nil, fmt.Errorf("%d calldatas for %d targets", len(rawData), len(rawTargets))
	}

	targets := make([]common.Address, len(rawTargets))
	values := make([]*uint256.Int, len(rawTargets))
	calldatas := make([][]byte, len(rawTargets))
	for i, raw := range rawTargets {
		if !common.IsHexAddress(raw) {
			return nil, nil, nil, fmt.Errorf("invalid target %q", raw)
		}
		targets[i] = common.HexToAddress(raw)
		values[i] = new(uint256.Int)
		if len(rawValues) > 0 {
			v, err := uint256.FromDecimal(rawValues[i])
			if err != nil {
				if v, err = uint256.FromHex(rawValues[i]); err != nil {
					return nil, nil, nil, fmt.Errorf("invalid value %q", rawValues[i])
				}
			}
			values[i] = v
		}
		calldatas[i] = []byte{}
		if len(rawData) > 0 {
			data, err := hexutil.Decode(rawData[i])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("invalid calldata %q: %w", rawData[i], err)
			}
			calldatas[i] = data
		}
	}
	return targets, values, calldatas, nil
}

func parseHash(s string) (common.Hash, error) {
	if s == "" {
		return common.Hash{}, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) > common.HashLength {
		return common.Hash{}, fmt.Errorf("%d bytes, want at most %d", len(b), common.HashLength)
	}
	return common.BytesToHash(b), nil
}
