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
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/accesscontrol"
	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/timelock"
)

var deployer = common.HexToAddress("0x1234567890123456789012345678901234567890")

func TestCalculateContractAddress(t *testing.T) {
	addr0 := CalculateContractAddress(deployer, 0)
	addr1 := CalculateContractAddress(deployer, 1)
	if addr0 == addr1 {
		t.Error("different nonces should produce different addresses")
	}
	// Must agree with the CREATE rule used by the chain.
	for nonce := uint64(0); nonce < 4; nonce++ {
		if got, want := CalculateContractAddress(deployer, nonce), crypto.CreateAddress(deployer, nonce); got != want {
			t.Errorf("nonce %d: got %s, want %s", nonce, got.Hex(), want.Hex())
		}
	}
}

func TestDeployMatchesPrediction(t *testing.T) {
	c, err := chain.New(nil)
	if err != nil {
		t.Fatalf("chain.New failed: %v", err)
	}
	predicted := PredictAddresses(deployer, 0)
	sys, err := Deploy(c, deployer, nil)
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if got := sys.Addresses(); got != predicted {
		t.Errorf("addresses = %+v, predicted %+v", got, predicted)
	}
}

func TestDeployWiresRoles(t *testing.T) {
	c, err := chain.New(nil)
	if err != nil {
		t.Fatalf("chain.New failed: %v", err)
	}
	sys, err := Deploy(c, deployer, nil)
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	tl := sys.Timelock
	gov := sys.Governor.Address()

	if !tl.HasRole(timelock.ProposerRole, gov) {
		t.Error("governor should be proposer")
	}
	if !tl.HasRole(timelock.CancellerRole, gov) {
		t.Error("governor should be canceller")
	}
	if !tl.HasRole(timelock.ExecutorRole, timelock.OpenExecutor) {
		t.Error("executor role should be open")
	}
	if tl.HasRole(accesscontrol.DefaultAdminRole, deployer) {
		t.Error("deployer admin should be revoked")
	}
	if !tl.HasRole(accesscontrol.DefaultAdminRole, tl.Address()) {
		t.Error("timelock should administer itself")
	}
	if sys.Treasury.Owner() != tl.Address() {
		t.Errorf("treasury owner = %s, want timelock", sys.Treasury.Owner().Hex())
	}
	if sys.Governor.Executor() != tl.Address() {
		t.Errorf("governor executor = %s, want timelock", sys.Governor.Executor().Hex())
	}
	if sys.Token.BalanceOf(deployer).Cmp(DefaultBootstrapConfig().InitialSupply) != 0 {
		t.Errorf("deployer balance = %v", sys.Token.BalanceOf(deployer))
	}
}

func TestDeployWithAllocations(t *testing.T) {
	c, err := chain.New(nil)
	if err != nil {
		t.Fatalf("chain.New failed: %v", err)
	}
	voter := common.HexToAddress("0x1001")
	executor := common.HexToAddress("0xe0e")

	cfg := DefaultBootstrapConfig()
	cfg.InitialSupply = big.NewInt(10000)
	cfg.Executors = []common.Address{executor}
	cfg.RevokeDeployerAdmin = false
	cfg.Alloc = map[common.Address]*uint256.Int{deployer: uint256.NewInt(9000)}
	cfg.TreasuryDeposit = uint256.NewInt(5000)
	cfg.Allocations = []Allocation{{Account: voter, Amount: big.NewInt(1000), SelfDelegate: true}}

	sys, err := Deploy(c, deployer, cfg)
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if got := sys.Treasury.Balance().Uint64(); got != 5000 {
		t.Errorf("treasury balance = %d, want 5000", got)
	}
	if got := c.BalanceOf(deployer).Uint64(); got != 4000 {
		t.Errorf("deployer native balance = %d, want 4000", got)
	}
	if got := sys.Token.Votes(voter).Int64(); got != 1000 {
		t.Errorf("voter votes = %d, want 1000", got)
	}
	if got := sys.Token.BalanceOf(deployer).Int64(); got != 9000 {
		t.Errorf("deployer tokens = %d, want 9000", got)
	}
	if sys.Timelock.HasRole(timelock.ExecutorRole, timelock.OpenExecutor) {
		t.Error("executor role should be restricted")
	}
	if !sys.Timelock.HasRole(timelock.ExecutorRole, executor) {
		t.Error("configured executor missing")
	}
	if !sys.Timelock.HasRole(accesscontrol.DefaultAdminRole, deployer) {
		t.Error("deployer admin should be kept")
	}
}

func TestDeployIsAtomic(t *testing.T) {
	c, err := chain.New(nil)
	if err != nil {
		t.Fatalf("chain.New failed: %v", err)
	}
	cfg := DefaultBootstrapConfig()
	// The deployer cannot pay for the deposit, so the whole bootstrap fails.
	cfg.TreasuryDeposit = uint256.NewInt(1)

	if _, err := Deploy(c, deployer, cfg); !errors.Is(err, chain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if _, ok := c.ContractAt(PredictAddresses(deployer, 0).Token); ok {
		t.Error("token survived a failed bootstrap")
	}
	if c.NextAddress(deployer) != CalculateContractAddress(deployer, 0) {
		t.Error("deployer nonce advanced")
	}
	if len(c.Logs()) != 0 {
		t.Errorf("%d logs published by a failed bootstrap", len(c.Logs()))
	}
}

func TestDeployValidation(t *testing.T) {
	c, _ := chain.New(nil)
	if _, err := Deploy(c, common.Address{}, nil); !errors.Is(err, ErrNoDeployer) {
		t.Errorf("expected ErrNoDeployer, got %v", err)
	}
	cfg := DefaultBootstrapConfig()
	cfg.InitialSupply = big.NewInt(10)
	cfg.Allocations = []Allocation{{Account: common.HexToAddress("0x1"), Amount: big.NewInt(11)}}
	if _, err := Deploy(c, deployer, cfg); !errors.Is(err, ErrOverAllotted) {
		t.Errorf("expected ErrOverAllotted, got %v", err)
	}
}
