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
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/sailakshmidurga/dao-governance/governance"
	"github.com/sailakshmidurga/dao-governance/timelock"
	"github.com/sailakshmidurga/dao-governance/treasury"
)

func runApp(args ...string) (string, error) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"govsim", "--verbosity", "1"}, args...))
	return out.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runApp(args...)
	require.NoError(t, err, out)
	return out
}

func TestSimulateAndReplay(t *testing.T) {
	dir := t.TempDir()
	out := run(t, "--datadir", dir, "simulate")
	for _, want := range []string{"Pending", "Succeeded", "Queued", "execute before eta rejected", "Executed", "voter1 received 1000000000000000000 wei"} {
		require.Contains(t, out, want)
	}

	out = run(t, "--datadir", dir, "events")
	require.Contains(t, out, "ProposalCreated")
	require.Contains(t, out, "Withdraw 1 ETH from treasury")
	require.Contains(t, out, "1 of 1 proposals executed")

	out = run(t, "--datadir", dir, "events", "--summary")
	require.NotContains(t, out, "ProposalCreated")
	require.Contains(t, out, "1 of 1 proposals executed")

	// A second chain would reuse the same addresses and ids.
	_, err := runApp("--datadir", dir, "simulate")
	require.ErrorContains(t, err, "already holds")

	run(t, "--datadir", dir, "simulate", "--noindex")
}

func TestHashProposal(t *testing.T) {
	target := common.HexToAddress("0x5FC8d32690cc91D4c39d9d3abcBD16989F875707")
	data, err := treasury.ABI().Pack("withdrawFunds", voter1, big.NewInt(1e18))
	require.NoError(t, err)

	_, err = runApp("hash", "proposal", "--target", target.Hex(), "--calldata", common.Bytes2Hex(data), "--description", proposalDescription)
	require.Error(t, err, "calldata needs a 0x prefix")

	out := run(t, "hash", "proposal", "--target", target.Hex(), "--value", "0", "--calldata", "0x"+common.Bytes2Hex(data), "--description", proposalDescription)

	want := governance.HashProposal([]common.Address{target}, []*uint256.Int{new(uint256.Int)}, [][]byte{data}, governance.DescriptionHash(proposalDescription))
	require.Contains(t, out, want.Hex())
}

func TestHashOperation(t *testing.T) {
	target := common.HexToAddress("0x1")
	salt := common.HexToHash("0x2a")
	out := run(t, "hash", "operation", "--target", target.Hex(), "--value", "0x10", "--salt", salt.Hex())
	want := timelock.HashOperation(target, uint256.NewInt(16), []byte{}, common.Hash{}, salt)
	require.Contains(t, out, want.Hex())
}

func TestDumpConfig(t *testing.T) {
	out := run(t, "dumpconfig")
	require.True(t, strings.Contains(out, "[Governor]"), out)
	require.Contains(t, out, "MinDelay = 60")
}
