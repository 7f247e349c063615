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
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/params"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/eventlog"
	"github.com/sailakshmidurga/dao-governance/genesis"
	"github.com/sailakshmidurga/dao-governance/governance"
	"github.com/sailakshmidurga/dao-governance/timelock"
	"github.com/sailakshmidurga/dao-governance/treasury"
)

const proposalDescription = "Withdraw 1 ETH from treasury"

var (
	// Second and third development accounts.
	voter1 = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	voter2 = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

	noIndexFlag = &cli.BoolFlag{
		Name:  "noindex",
		Usage: "Do not persist events to the data directory",
	}
)

var simulateCommand = &cli.Command{
	Name:  "simulate",
	Usage: "Deploy the system and run a treasury withdrawal proposal end to end",
	Flags: []cli.Flag{noIndexFlag},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		c, err := chain.New(cfg.ChainConfig())
		if err != nil {
			return err
		}
		defer c.Close()

		if !ctx.Bool(noIndexFlag.Name) {
			store, err := eventlog.OpenStore(cfg.Node.DataDir, cfg.Node.DatabaseCache, cfg.Node.DatabaseHandles)
			if err != nil {
				return err
			}
			defer store.Close()
			if n := store.Len(); n > 0 {
				return fmt.Errorf("event database in %s already holds %d logs", cfg.Node.DataDir, n)
			}
			ix := eventlog.NewIndexer(c, store)
			ix.Start()
			defer ix.Stop()
		}

		boot, err := cfg.BootstrapConfig()
		if err != nil {
			return err
		}
		return simulate(ctx.App.Writer, c, cfg.Chain.Deployer, boot)
	},
}

// simulate replays the reference scenario: two holders with 1000 tokens
// each pass a proposal that withdraws 1 ETH from the treasury to voter1.
func simulate(w io.Writer, c *chain.Chain, deployer common.Address, boot *genesis.BootstrapConfig) error {
	ether := big.NewInt(params.Ether)
	grant := new(big.Int).Mul(big.NewInt(1000), ether)
	boot.Allocations = append(boot.Allocations,
		genesis.Allocation{Account: voter1, Amount: grant, SelfDelegate: true},
		genesis.Allocation{Account: voter2, Amount: grant, SelfDelegate: true},
	)
	if boot.TreasuryDeposit == nil {
		deposit := new(uint256.Int).Mul(uint256.NewInt(5), uint256.NewInt(params.Ether))
		boot.TreasuryDeposit = deposit
		boot.Alloc = map[common.Address]*uint256.Int{deployer: deposit.Clone()}
	}

	printTitle(w, "部署")
	sys, err := genesis.Deploy(c, deployer, boot)
	if err != nil {
		return err
	}
	addrs := sys.Addresses()
	printOK(w, "token     %s", addrs.Token.Hex())
	printOK(w, "timelock  %s (min delay %ds)", addrs.Timelock.Hex(), sys.Timelock.GetMinDelay())
	printOK(w, "governor  %s", addrs.Governor.Hex())
	printOK(w, "treasury  %s (balance %s wei)", addrs.Treasury.Hex(), sys.Treasury.Balance())
	c.Mine(12)

	gov := sys.Governor
	withdraw, err := treasury.ABI().Pack("withdrawFunds", voter1, ether)
	if err != nil {
		return err
	}
	targets := []common.Address{addrs.Treasury}
	values := []*uint256.Int{new(uint256.Int)}
	calldatas := [][]byte{withdraw}
	descHash := governance.DescriptionHash(proposalDescription)

	printTitle(w, "提案")
	id, err := gov.Propose(voter1, targets, values, calldatas, proposalDescription)
	if err != nil {
		return err
	}
	printOK(w, "proposal %s by %s", id.Hex(), voter1.Hex())
	if err := report(w, gov, id, "after propose"); err != nil {
		return err
	}

	printTitle(w, "投票")
	c.Mine(gov.VotingDelay() + 1)
	for _, voter := range []common.Address{voter1, voter2} {
		weight, err := gov.CastVote(voter, id, governance.VoteFor)
		if err != nil {
			return err
		}
		printOK(w, "%s voted For with weight %s", voter.Hex(), weight)
	}
	against, forVotes, abstain := gov.ProposalVotes(id)
	fmt.Fprintf(w, "  tally: for=%s against=%s abstain=%s\n", forVotes, against, abstain)
	c.Mine(gov.VotingPeriod() + 1)
	if err := report(w, gov, id, "after voting period"); err != nil {
		return err
	}

	printTitle(w, "排队")
	if _, err := gov.Queue(deployer, targets, values, calldatas, descHash); err != nil {
		return err
	}
	printOK(w, "queued, eta %d", gov.ProposalEta(id))
	if err := report(w, gov, id, "after queue"); err != nil {
		return err
	}

	printTitle(w, "执行")
	if _, err := gov.Execute(deployer, targets, values, calldatas, descHash); errors.Is(err, timelock.ErrNotReady) {
		printFail(w, "execute before eta rejected: %v", err)
	} else {
		return fmt.Errorf("premature execution was not rejected: %v", err)
	}
	c.IncreaseTime(sys.Timelock.GetMinDelay() + 1)
	before := c.BalanceOf(voter1)
	if _, err := gov.Execute(deployer, targets, values, calldatas, descHash); err != nil {
		return err
	}
	if err := report(w, gov, id, "after execute"); err != nil {
		return err
	}
	received := new(uint256.Int).Sub(c.BalanceOf(voter1), before)
	printOK(w, "voter1 received %s wei, treasury holds %s wei", received, sys.Treasury.Balance())

	log.Info("Simulation finished", "proposal", id, "logs", len(c.Logs()))
	return nil
}

func report(w io.Writer, gov *governance.Governor, id common.Hash, label string) error {
	state, err := gov.State(id)
	if err != nil {
		return err
	}
	printState(w, label, state.String())
	return nil
}
