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

// Package treasury implements a native value vault whose withdrawals are
// controlled by a single owner, normally the timelock.
package treasury

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/internal/abiutil"
)

// Event names
const (
	EventFundsReceived  = "FundsReceived"
	EventFundsWithdrawn = "FundsWithdrawn"
)

// Treasury errors
var (
	ErrNotOwner          = fmt.Errorf("%w: caller is not the owner", chain.ErrUnauthorized)
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient treasury funds", chain.ErrInvalidState)
)

// FundsEvent is the payload of FundsReceived and FundsWithdrawn logs.
type FundsEvent struct {
	Amount *big.Int
}

var treasuryABI = abiutil.MustNewABI(
	abiutil.MethodSpec{Name: "withdrawFunds", Inputs: []string{"address", "uint256"}},
	abiutil.MethodSpec{Name: "owner", Outputs: []string{"address"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "balance", Outputs: []string{"uint256"}, Mutability: abiutil.View},
)

// ABI returns the treasury's method table, for building calldata.
func ABI() abi.ABI { return treasuryABI }

// Treasury holds native value on behalf of its owner.
type Treasury struct {
	chain   *chain.Chain
	address common.Address
	owner   common.Address

	dispatcher *abiutil.Dispatcher
}

// New creates a treasury at address self owned by owner.
func New(c *chain.Chain, self, owner common.Address) *Treasury {
	t := &Treasury{chain: c, address: self, owner: owner}
	d := abiutil.NewDispatcher(treasuryABI)
	d.OnReceive(func(caller common.Address, value *uint256.Int) error {
		t.chain.Emit(chain.NewLog(t.address, EventFundsReceived, common.Hash{}, caller, caller, &FundsEvent{Amount: value.ToBig()}))
		return nil
	})
	d.Handle("withdrawFunds", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		amount, overflow := uint256.FromBig(args[1].(*big.Int))
		if overflow {
			return nil, abiutil.ErrValueOverflow
		}
		return nil, t.WithdrawFunds(caller, args[0].(common.Address), amount)
	})
	d.Handle("owner", func(common.Address, *uint256.Int, []interface{}) ([]interface{}, error) {
		return []interface{}{t.owner}, nil
	})
	d.Handle("balance", func(common.Address, *uint256.Int, []interface{}) ([]interface{}, error) {
		return []interface{}{t.Balance().ToBig()}, nil
	})
	t.dispatcher = d
	return t
}

// Address returns the treasury's address.
func (t *Treasury) Address() common.Address { return t.address }

// Owner returns the account allowed to withdraw.
func (t *Treasury) Owner() common.Address { return t.owner }

// Balance returns the native balance held.
func (t *Treasury) Balance() *uint256.Int {
	return t.chain.BalanceOf(t.address)
}

// WithdrawFunds sends amount to `to`. Only the owner may withdraw.
func (t *Treasury) WithdrawFunds(caller, to common.Address, amount *uint256.Int) error {
	if caller != t.owner {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller.Hex())
	}
	return t.chain.Atomic(func() error {
		if balance := t.Balance(); balance.Lt(amount) {
			return fmt.Errorf("%w: have %s, want %s", ErrInsufficientFunds, balance, amount)
		}
		if _, err := t.chain.Call(t.address, to, amount, nil); err != nil {
			return err
		}
		t.chain.Emit(chain.NewLog(t.address, EventFundsWithdrawn, common.Hash{}, caller, to, &FundsEvent{Amount: amount.ToBig()}))
		log.Info("Treasury withdrawal", "to", to, "amount", amount)
		return nil
	})
}

// Call implements chain.Contract.
func (t *Treasury) Call(caller common.Address, value *uint256.Int, input []byte) ([]byte, error) {
	return t.dispatcher.Dispatch(caller, value, input)
}
