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

package genesis

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/accesscontrol"
	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/governance"
	"github.com/sailakshmidurga/dao-governance/timelock"
	"github.com/sailakshmidurga/dao-governance/treasury"
	"github.com/sailakshmidurga/dao-governance/votes"
)

var (
	ErrNoDeployer   = errors.New("deployer address is required")
	ErrNoSupply     = errors.New("initial supply must be positive")
	ErrOverAllotted = errors.New("token allocations exceed the initial supply")
)

// Allocation moves tokens from the deployer to a holder at genesis.
type Allocation struct {
	Account      common.Address
	Amount       *big.Int
	SelfDelegate bool // 是否自我委托以激活投票权
}

// BootstrapConfig holds the network bootstrap configuration
type BootstrapConfig struct {
	Token    *votes.Config
	Governor *governance.Config

	// InitialSupply is minted to the deployer
	InitialSupply *big.Int

	// MinDelay is the timelock delay in seconds
	MinDelay uint64

	// Executors receive EXECUTOR_ROLE. Empty means anyone may execute.
	Executors []common.Address

	// RevokeDeployerAdmin drops the deployer's admin role on the timelock
	// once the roles are wired, leaving the timelock self-governed.
	RevokeDeployerAdmin bool

	// TreasuryDeposit is transferred from the deployer to the treasury
	TreasuryDeposit *uint256.Int

	Alloc       map[common.Address]*uint256.Int // 原生币初始余额
	Allocations []Allocation
}

// DefaultBootstrapConfig returns the default bootstrap configuration
func DefaultBootstrapConfig() *BootstrapConfig {
	return &BootstrapConfig{
		Token:               votes.DefaultConfig(),
		Governor:            governance.DefaultConfig(),
		InitialSupply:       new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18)),
		MinDelay:            60,
		RevokeDeployerAdmin: true,
	}
}

func (cfg *BootstrapConfig) validate(deployer common.Address) error {
	if deployer == (common.Address{}) {
		return ErrNoDeployer
	}
	if cfg.InitialSupply == nil || cfg.InitialSupply.Sign() <= 0 {
		return ErrNoSupply
	}
	total := new(big.Int)
	for _, a := range cfg.Allocations {
		if a.Amount == nil || a.Amount.Sign() < 0 {
			return fmt.Errorf("invalid allocation for %s", a.Account.Hex())
		}
		total.Add(total, a.Amount)
	}
	if total.Cmp(cfg.InitialSupply) > 0 {
		return fmt.Errorf("%w: %v > %v", ErrOverAllotted, total, cfg.InitialSupply)
	}
	return nil
}

// System is a deployed governance system.
type System struct {
	Token    *votes.Token
	Timelock *timelock.Controller
	Governor *governance.Governor
	Treasury *treasury.Treasury
}

// Addresses returns the contract addresses of the system.
func (s *System) Addresses() Addresses {
	return Addresses{
		Token:    s.Token.Address(),
		Timelock: s.Timelock.Address(),
		Governor: s.Governor.Address(),
		Treasury: s.Treasury.Address(),
	}
}

// Deploy bootstraps the governance system from deployer: token, timelock,
// governor and a treasury owned by the timelock. The whole bootstrap is one
// atomic step; on failure nothing is deployed.
func Deploy(c *chain.Chain, deployer common.Address, cfg *BootstrapConfig) (*System, error) {
	if cfg == nil {
		cfg = DefaultBootstrapConfig()
	}
	if err := cfg.validate(deployer); err != nil {
		return nil, err
	}
	sys := new(System)
	err := c.Atomic(func() error {
		for addr, amount := range cfg.Alloc {
			c.Fund(addr, amount)
		}

		token, err := chain.Deploy(c, deployer, func(addr common.Address) (*votes.Token, error) {
			return votes.New(c, addr, cfg.Token), nil
		})
		if err != nil {
			return fmt.Errorf("failed to deploy token: %w", err)
		}
		if err := token.Mint(deployer, cfg.InitialSupply); err != nil {
			return err
		}

		tl, err := chain.Deploy(c, deployer, func(addr common.Address) (*timelock.Controller, error) {
			return timelock.New(c, addr, cfg.MinDelay, nil, nil, deployer), nil
		})
		if err != nil {
			return fmt.Errorf("failed to deploy timelock: %w", err)
		}

		gov, err := chain.Deploy(c, deployer, func(addr common.Address) (*governance.Governor, error) {
			return governance.New(c, addr, token, tl, cfg.Governor)
		})
		if err != nil {
			return fmt.Errorf("failed to deploy governor: %w", err)
		}

		if err := tl.GrantRole(deployer, timelock.ProposerRole, gov.Address()); err != nil {
			return err
		}
		if err := tl.GrantRole(deployer, timelock.CancellerRole, gov.Address()); err != nil {
			return err
		}
		executors := cfg.Executors
		if len(executors) == 0 {
			executors = []common.Address{timelock.OpenExecutor}
		}
		for _, e := range executors {
			if err := tl.GrantRole(deployer, timelock.ExecutorRole, e); err != nil {
				return err
			}
		}
		if cfg.RevokeDeployerAdmin {
			if err := tl.RevokeRole(deployer, accesscontrol.DefaultAdminRole, deployer); err != nil {
				return err
			}
		}

		tr, err := chain.Deploy(c, deployer, func(addr common.Address) (*treasury.Treasury, error) {
			return treasury.New(c, addr, tl.Address()), nil
		})
		if err != nil {
			return fmt.Errorf("failed to deploy treasury: %w", err)
		}
		if cfg.TreasuryDeposit != nil && !cfg.TreasuryDeposit.IsZero() {
			if _, err := c.Call(deployer, tr.Address(), cfg.TreasuryDeposit, nil); err != nil {
				return fmt.Errorf("failed to fund treasury: %w", err)
			}
		}

		for _, a := range cfg.Allocations {
			if err := token.Transfer(deployer, a.Account, a.Amount); err != nil {
				return err
			}
			if a.SelfDelegate {
				if err := token.Delegate(a.Account, a.Account); err != nil {
					return err
				}
			}
		}

		sys.Token, sys.Timelock, sys.Governor, sys.Treasury = token, tl, gov, tr
		return nil
	})
	if err != nil {
		return nil, err
	}
	addrs := sys.Addresses()
	log.Info("Governance system deployed", "token", addrs.Token, "timelock", addrs.Timelock,
		"governor", addrs.Governor, "treasury", addrs.Treasury, "minDelay", cfg.MinDelay)
	if !cfg.RevokeDeployerAdmin {
		log.Warn("Deployer keeps timelock admin role", "deployer", deployer, "timelock", addrs.Timelock)
	}
	return sys, nil
}
