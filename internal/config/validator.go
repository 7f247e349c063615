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

package config

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sailakshmidurga/dao-governance/governance"
	"github.com/sailakshmidurga/dao-governance/votes"
)

var logLevels = map[string]int{
	"crit":  0,
	"error": 1,
	"warn":  2,
	"info":  3,
	"debug": 4,
	"trace": 5,
}

// Verbosity converts a level name or number to a verbosity between 0 (crit)
// and 5 (trace).
func Verbosity(level string) (int, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if v, ok := logLevels[level]; ok {
		return v, nil
	}
	v, err := strconv.Atoi(level)
	if err != nil || v < 0 || v > 5 {
		return 0, fmt.Errorf("invalid log level %q", level)
	}
	return v, nil
}

// Validate checks parameter consistency before anything is deployed.
func (cfg *Config) Validate() error {
	if cfg.Chain.ChainID == 0 {
		return fmt.Errorf("chain id must be non-zero")
	}
	if cfg.Chain.BlockTime == 0 {
		return fmt.Errorf("block time must be positive")
	}
	if cfg.Chain.Deployer == (common.Address{}) {
		return fmt.Errorf("deployer address is required")
	}
	if _, err := votes.ParseClockMode(cfg.Token.Clock); err != nil {
		return fmt.Errorf("token clock: %w", err)
	}
	if cfg.Token.InitialSupply == nil || (*big.Int)(cfg.Token.InitialSupply).Sign() <= 0 {
		return fmt.Errorf("initial supply must be positive")
	}
	if cfg.Governor.VotingDelay > governance.MaxVotingDelay {
		return fmt.Errorf("voting delay %d exceeds %d: %w", cfg.Governor.VotingDelay, uint64(governance.MaxVotingDelay), governance.ErrInvalidVotingDelay)
	}
	if cfg.Governor.VotingPeriod == 0 {
		return fmt.Errorf("voting period must be positive: %w", governance.ErrInvalidVotingPeriod)
	}
	if cfg.Governor.VotingPeriod > governance.MaxVotingPeriod {
		return fmt.Errorf("voting period %d exceeds %d: %w", cfg.Governor.VotingPeriod, uint64(governance.MaxVotingPeriod), governance.ErrInvalidVotingPeriod)
	}
	if cfg.Governor.GracePeriod > governance.MaxGracePeriod {
		return fmt.Errorf("grace period %d exceeds %d: %w", cfg.Governor.GracePeriod, uint64(governance.MaxGracePeriod), governance.ErrInvalidGracePeriod)
	}
	if cfg.Governor.QuorumNumerator > governance.QuorumDenominator {
		return fmt.Errorf(
			"quorum numerator %d exceeds denominator %d: %w",
			cfg.Governor.QuorumNumerator,
			governance.QuorumDenominator,
			governance.ErrInvalidQuorumFraction,
		)
	}
	if cfg.Governor.ProposalThreshold != nil && (*big.Int)(cfg.Governor.ProposalThreshold).Sign() < 0 {
		return fmt.Errorf("proposal threshold must not be negative")
	}
	if cfg.Governor.ProposalThreshold != nil && (*big.Int)(cfg.Governor.ProposalThreshold).Cmp((*big.Int)(cfg.Token.InitialSupply)) > 0 {
		return fmt.Errorf(
			"proposal threshold %v exceeds initial supply %v. No account could propose",
			(*big.Int)(cfg.Governor.ProposalThreshold),
			(*big.Int)(cfg.Token.InitialSupply),
		)
	}
	for i, e := range cfg.Timelock.Executors {
		for _, other := range cfg.Timelock.Executors[:i] {
			if e == other {
				return fmt.Errorf("duplicate executor %s", e.Hex())
			}
		}
	}
	if cfg.Treasury.Deposit != nil && (*big.Int)(cfg.Treasury.Deposit).Sign() < 0 {
		return fmt.Errorf("treasury deposit must not be negative")
	}
	if _, err := Verbosity(cfg.Node.LogLevel); err != nil {
		return err
	}
	if cfg.Node.DatabaseCache < 0 || cfg.Node.DatabaseHandles < 0 {
		return fmt.Errorf("database cache and handles must not be negative")
	}
	return nil
}
