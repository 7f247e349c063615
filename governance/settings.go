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

package governance

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/sailakshmidurga/dao-governance/chain"
)

// VotingDelay returns the delay between proposal and snapshot in clock units.
func (g *Governor) VotingDelay() uint64 { return g.votingDelay }

// VotingPeriod returns the length of the vote in clock units.
func (g *Governor) VotingPeriod() uint64 { return g.votingPeriod }

// ProposalThreshold returns the weight needed to propose.
func (g *Governor) ProposalThreshold() *big.Int { return new(big.Int).Set(g.proposalThreshold) }

// GracePeriod returns how long a succeeded proposal may wait to be queued.
func (g *Governor) GracePeriod() uint64 { return g.gracePeriod }

func checkWindows(delay, period, grace uint64) error {
	if delay > MaxVotingDelay {
		return fmt.Errorf("%w: %d > %d", ErrInvalidVotingDelay, delay, uint64(MaxVotingDelay))
	}
	if period == 0 || period > MaxVotingPeriod {
		return fmt.Errorf("%w: %d", ErrInvalidVotingPeriod, period)
	}
	if grace > MaxGracePeriod {
		return fmt.Errorf("%w: %d > %d", ErrInvalidGracePeriod, grace, uint64(MaxGracePeriod))
	}
	return nil
}

func (g *Governor) onlyGovernance(caller common.Address) error {
	if caller != g.Executor() {
		return fmt.Errorf("%w: %s", ErrOnlyGovernance, caller.Hex())
	}
	return nil
}

func (g *Governor) emitSetting(caller common.Address, name string, old, updated *big.Int) {
	g.chain.Emit(chain.NewLog(g.address, name, common.Hash{}, caller, common.Address{}, &SettingChangedEvent{Old: old, New: updated}))
	log.Info("Governor setting changed", "setting", name, "old", old, "new", updated)
}

// SetVotingDelay changes the voting delay, at most MaxVotingDelay.
func (g *Governor) SetVotingDelay(caller common.Address, delay uint64) error {
	if err := g.onlyGovernance(caller); err != nil {
		return err
	}
	if err := checkWindows(delay, g.votingPeriod, g.gracePeriod); err != nil {
		return err
	}
	return g.chain.Atomic(func() error {
		old := g.votingDelay
		chain.SetValue(g.chain, &g.votingDelay, delay)
		g.emitSetting(caller, EventVotingDelaySet, new(big.Int).SetUint64(old), new(big.Int).SetUint64(delay))
		return nil
	})
}

// SetVotingPeriod changes the voting period, which must be positive and at
// most MaxVotingPeriod.
func (g *Governor) SetVotingPeriod(caller common.Address, period uint64) error {
	if err := g.onlyGovernance(caller); err != nil {
		return err
	}
	if err := checkWindows(g.votingDelay, period, g.gracePeriod); err != nil {
		return err
	}
	return g.chain.Atomic(func() error {
		old := g.votingPeriod
		chain.SetValue(g.chain, &g.votingPeriod, period)
		g.emitSetting(caller, EventVotingPeriodSet, new(big.Int).SetUint64(old), new(big.Int).SetUint64(period))
		return nil
	})
}

// SetProposalThreshold changes the weight needed to propose.
func (g *Governor) SetProposalThreshold(caller common.Address, threshold *big.Int) error {
	if err := g.onlyGovernance(caller); err != nil {
		return err
	}
	if threshold.Sign() < 0 {
		return ErrInvalidProposalThreshold
	}
	return g.chain.Atomic(func() error {
		old := g.proposalThreshold
		chain.SetValue(g.chain, &g.proposalThreshold, new(big.Int).Set(threshold))
		g.emitSetting(caller, EventProposalThresholdSet, old, new(big.Int).Set(threshold))
		return nil
	})
}

// UpdateQuorumNumerator changes the quorum numerator from the current clock
// on. Proposals whose snapshot is already past keep their quorum.
func (g *Governor) UpdateQuorumNumerator(caller common.Address, numerator uint64) error {
	if err := g.onlyGovernance(caller); err != nil {
		return err
	}
	if numerator > QuorumDenominator {
		return fmt.Errorf("%w: %d > %d", ErrInvalidQuorumFraction, numerator, QuorumDenominator)
	}
	return g.chain.Atomic(func() error {
		old := g.quorumNumerator.Latest()
		undo, err := g.quorumNumerator.Push(g.token.Clock(), new(big.Int).SetUint64(numerator))
		if err != nil {
			return err
		}
		g.chain.Journal(undo)
		g.emitSetting(caller, EventQuorumNumeratorUpdated, old, new(big.Int).SetUint64(numerator))
		return nil
	})
}

// UpdateTimelock moves governance to another timelock. Proposals queued on
// the old one are reported as canceled from then on.
func (g *Governor) UpdateTimelock(caller common.Address, tl Timelock) error {
	if err := g.onlyGovernance(caller); err != nil {
		return err
	}
	return g.chain.Atomic(func() error {
		old := g.timelock
		chain.SetValue(g.chain, &g.timelock, tl)
		g.chain.Emit(chain.NewLog(g.address, EventTimelockChange, common.Hash{}, caller, tl.Address(), &TimelockChangeEvent{Old: old.Address(), New: tl.Address()}))
		log.Info("Governor timelock changed", "old", old.Address(), "new", tl.Address())
		return nil
	})
}
