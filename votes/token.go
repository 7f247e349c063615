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

// Package votes implements the voting weight source: a token ledger whose
// holders delegate their balance, with every delegate's weight checkpointed
// so that weight at any past timepoint can be read back exactly.
package votes

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/internal/abiutil"
	"github.com/sailakshmidurga/dao-governance/internal/eip712"
)

// Event names
const (
	EventTransfer             = "Transfer"
	EventDelegateChanged      = "DelegateChanged"
	EventDelegateVotesChanged = "DelegateVotesChanged"
)

// TransferEvent is the payload of a Transfer log. Actor is the sender and
// Account the receiver; a mint has the zero address as actor.
type TransferEvent struct {
	Value *big.Int
}

// DelegateChangedEvent is the payload of a DelegateChanged log. Actor is the
// delegator.
type DelegateChangedEvent struct {
	From common.Address
	To   common.Address
}

// DelegateVotesChangedEvent is the payload of a DelegateVotesChanged log.
// Account is the delegate.
type DelegateVotesChangedEvent struct {
	Previous *big.Int
	New      *big.Int
}

var delegationTypeHash = eip712.TypeHash("Delegation(address delegatee,uint256 nonce,uint256 expiry)")

var tokenABI = abiutil.MustNewABI(
	abiutil.MethodSpec{Name: "transfer", Inputs: []string{"address", "uint256"}, Outputs: []string{"bool"}},
	abiutil.MethodSpec{Name: "delegate", Inputs: []string{"address"}},
	abiutil.MethodSpec{Name: "balanceOf", Inputs: []string{"address"}, Outputs: []string{"uint256"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "totalSupply", Outputs: []string{"uint256"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "getVotes", Inputs: []string{"address"}, Outputs: []string{"uint256"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "getPastVotes", Inputs: []string{"address", "uint256"}, Outputs: []string{"uint256"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "delegates", Inputs: []string{"address"}, Outputs: []string{"address"}, Mutability: abiutil.View},
)

// Config holds token parameters
type Config struct {
	Name   string    // 代币名称（EIP-712 域名）
	Symbol string    // 代币符号
	Clock  ClockMode // 检查点时钟
}

// DefaultConfig returns the default token configuration
func DefaultConfig() *Config {
	return &Config{
		Name:   "GovernanceToken",
		Symbol: "GT",
		Clock:  ClockBlockNumber,
	}
}

// Token is a checkpointed delegation ledger deployed on a chain. Balances do
// not count as weight until their holder delegates, possibly to itself.
type Token struct {
	chain   *chain.Chain
	address common.Address
	config  *Config
	domain  *eip712.Domain

	balances    map[common.Address]*big.Int
	totalSupply *big.Int
	delegates   map[common.Address]common.Address
	checkpoints map[common.Address]*Trace
	supply      Trace
	nonces      map[common.Address]uint64

	dispatcher *abiutil.Dispatcher
}

// New creates a token living at address self.
func New(c *chain.Chain, self common.Address, config *Config) *Token {
	if config == nil {
		config = DefaultConfig()
	}
	t := &Token{
		chain:   c,
		address: self,
		config:  config,
		domain: &eip712.Domain{
			Name:              config.Name,
			Version:           "1",
			ChainID:           c.ChainID(),
			VerifyingContract: self,
		},
		balances:    make(map[common.Address]*big.Int),
		totalSupply: new(big.Int),
		delegates:   make(map[common.Address]common.Address),
		checkpoints: make(map[common.Address]*Trace),
		nonces:      make(map[common.Address]uint64),
	}
	t.dispatcher = t.newDispatcher()
	return t
}

// Address returns the token's address.
func (t *Token) Address() common.Address { return t.address }

// Name returns the token name.
func (t *Token) Name() string { return t.config.Name }

// Symbol returns the token symbol.
func (t *Token) Symbol() string { return t.config.Symbol }

// Clock returns the current checkpoint key: the block number or the block
// timestamp depending on the clock mode.
func (t *Token) Clock() uint64 {
	if t.config.Clock == ClockTimestamp {
		return t.chain.Time()
	}
	return t.chain.Number()
}

// ClockMode returns the checkpoint clock mode.
func (t *Token) ClockMode() ClockMode { return t.config.Clock }

// BalanceOf returns the token balance of account.
func (t *Token) BalanceOf(account common.Address) *big.Int {
	if b, ok := t.balances[account]; ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// TotalSupply returns the current total supply.
func (t *Token) TotalSupply() *big.Int {
	return new(big.Int).Set(t.totalSupply)
}

// CurrentDelegate returns who account delegates to, or the zero address.
func (t *Token) CurrentDelegate(account common.Address) common.Address {
	return t.delegates[account]
}

// Votes returns the current weight delegated to account.
func (t *Token) Votes(account common.Address) *big.Int {
	if tr, ok := t.checkpoints[account]; ok {
		return tr.Latest()
	}
	return new(big.Int)
}

// WeightAt returns the weight delegated to account at the end of timepoint.
// Only finished timepoints can be read.
func (t *Token) WeightAt(account common.Address, timepoint uint64) (*big.Int, error) {
	if clock := t.Clock(); timepoint >= clock {
		return nil, fmt.Errorf("%w: %d >= clock %d", ErrFutureLookup, timepoint, clock)
	}
	tr, ok := t.checkpoints[account]
	if !ok {
		return new(big.Int), nil
	}
	return tr.UpperLookupRecent(timepoint), nil
}

// TotalWeightAt returns the total supply at the end of timepoint.
func (t *Token) TotalWeightAt(timepoint uint64) (*big.Int, error) {
	if clock := t.Clock(); timepoint >= clock {
		return nil, fmt.Errorf("%w: %d >= clock %d", ErrFutureLookup, timepoint, clock)
	}
	return t.supply.UpperLookupRecent(timepoint), nil
}

// Nonces returns the next delegation signature nonce of account.
func (t *Token) Nonces(account common.Address) uint64 {
	return t.nonces[account]
}

// Mint creates amount new tokens for to. It is not reachable through calldata
// and is meant for bootstrap.
func (t *Token) Mint(to common.Address, amount *big.Int) error {
	if to == (common.Address{}) {
		return ErrInvalidReceiver
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: negative amount", chain.ErrMalformedInput)
	}
	return t.chain.Atomic(func() error {
		supply := new(big.Int).Add(t.totalSupply, amount)
		chain.SetValue(t.chain, &t.totalSupply, supply)
		if err := t.push(&t.supply, supply); err != nil {
			return err
		}
		t.setBalance(to, new(big.Int).Add(t.BalanceOf(to), amount))
		t.chain.Emit(chain.NewLog(t.address, EventTransfer, common.Hash{}, common.Address{}, to, &TransferEvent{Value: new(big.Int).Set(amount)}))
		return t.moveDelegateVotes(common.Address{}, t.delegates[to], amount)
	})
}

// Transfer moves amount tokens from caller to to, carrying the delegated
// weight along with them.
func (t *Token) Transfer(caller, to common.Address, amount *big.Int) error {
	if to == (common.Address{}) {
		return ErrInvalidReceiver
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: negative amount", chain.ErrMalformedInput)
	}
	return t.chain.Atomic(func() error {
		balance := t.BalanceOf(caller)
		if balance.Cmp(amount) < 0 {
			return fmt.Errorf("%w: %s has %v, needs %v", ErrInsufficientBalance, caller.Hex(), balance, amount)
		}
		t.setBalance(caller, balance.Sub(balance, amount))
		t.setBalance(to, new(big.Int).Add(t.BalanceOf(to), amount))
		t.chain.Emit(chain.NewLog(t.address, EventTransfer, common.Hash{}, caller, to, &TransferEvent{Value: new(big.Int).Set(amount)}))
		return t.moveDelegateVotes(t.delegates[caller], t.delegates[to], amount)
	})
}

// Delegate makes delegatee the delegate of caller's whole balance.
func (t *Token) Delegate(caller, delegatee common.Address) error {
	return t.chain.Atomic(func() error {
		return t.delegate(caller, delegatee)
	})
}

// DelegationDigest returns the EIP-712 digest a holder signs to delegate by
// signature.
func (t *Token) DelegationDigest(delegatee common.Address, nonce, expiry uint64) (common.Hash, error) {
	structHash, err := eip712.HashStruct(delegationTypeHash,
		[]string{"address", "uint256", "uint256"},
		delegatee, new(big.Int).SetUint64(nonce), new(big.Int).SetUint64(expiry))
	if err != nil {
		return common.Hash{}, err
	}
	return t.domain.Digest(structHash), nil
}

// DelegateBySig delegates on behalf of the signer of sig. expiry is a block
// timestamp; the nonce must be the signer's next one.
func (t *Token) DelegateBySig(delegatee common.Address, nonce, expiry uint64, sig []byte) error {
	if now := t.chain.Time(); now > expiry {
		return fmt.Errorf("%w: expired at %d, now %d", ErrSignatureExpired, expiry, now)
	}
	digest, err := t.DelegationDigest(delegatee, nonce, expiry)
	if err != nil {
		return err
	}
	signer, err := eip712.Recover(digest, sig)
	if err != nil {
		return err
	}
	return t.chain.Atomic(func() error {
		if current := t.nonces[signer]; current != nonce {
			return fmt.Errorf("%w: %s expects %d, got %d", ErrInvalidNonce, signer.Hex(), current, nonce)
		}
		chain.SetEntry(t.chain, t.nonces, signer, nonce+1)
		return t.delegate(signer, delegatee)
	})
}

func (t *Token) delegate(account, delegatee common.Address) error {
	old := t.delegates[account]
	chain.SetEntry(t.chain, t.delegates, account, delegatee)
	t.chain.Emit(chain.NewLog(t.address, EventDelegateChanged, common.Hash{}, account, delegatee, &DelegateChangedEvent{From: old, To: delegatee}))
	log.Debug("Delegate changed", "delegator", account, "from", old, "to", delegatee)
	return t.moveDelegateVotes(old, delegatee, t.BalanceOf(account))
}

func (t *Token) moveDelegateVotes(from, to common.Address, amount *big.Int) error {
	if from == to || amount.Sign() == 0 {
		return nil
	}
	if from != (common.Address{}) {
		if err := t.adjustVotes(from, new(big.Int).Neg(amount)); err != nil {
			return err
		}
	}
	if to != (common.Address{}) {
		if err := t.adjustVotes(to, amount); err != nil {
			return err
		}
	}
	return nil
}

func (t *Token) adjustVotes(delegate common.Address, delta *big.Int) error {
	tr, ok := t.checkpoints[delegate]
	if !ok {
		tr = new(Trace)
		chain.SetEntry(t.chain, t.checkpoints, delegate, tr)
	}
	previous := tr.Latest()
	updated := new(big.Int).Add(previous, delta)
	if updated.Sign() < 0 {
		return fmt.Errorf("%w: weight of %s would become negative", chain.ErrInvalidState, delegate.Hex())
	}
	if err := t.push(tr, updated); err != nil {
		return err
	}
	t.chain.Emit(chain.NewLog(t.address, EventDelegateVotesChanged, common.Hash{}, delegate, delegate, &DelegateVotesChangedEvent{Previous: previous, New: updated}))
	return nil
}

func (t *Token) push(tr *Trace, value *big.Int) error {
	undo, err := tr.Push(t.Clock(), value)
	if err != nil {
		return err
	}
	t.chain.Journal(undo)
	return nil
}

func (t *Token) setBalance(account common.Address, balance *big.Int) {
	chain.SetEntry(t.chain, t.balances, account, balance)
}

// Call implements chain.Contract.
func (t *Token) Call(caller common.Address, value *uint256.Int, input []byte) ([]byte, error) {
	return t.dispatcher.Dispatch(caller, value, input)
}

// ABI returns the token's method table, for building calldata.
func ABI() abi.ABI { return tokenABI }

func (t *Token) newDispatcher() *abiutil.Dispatcher {
	d := abiutil.NewDispatcher(tokenABI)
	d.Handle("transfer", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		if err := t.Transfer(caller, args[0].(common.Address), args[1].(*big.Int)); err != nil {
			return nil, err
		}
		return []interface{}{true}, nil
	})
	d.Handle("delegate", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return nil, t.Delegate(caller, args[0].(common.Address))
	})
	d.Handle("balanceOf", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return []interface{}{t.BalanceOf(args[0].(common.Address))}, nil
	})
	d.Handle("totalSupply", func(common.Address, *uint256.Int, []interface{}) ([]interface{}, error) {
		return []interface{}{t.TotalSupply()}, nil
	})
	d.Handle("getVotes", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return []interface{}{t.Votes(args[0].(common.Address))}, nil
	})
	d.Handle("getPastVotes", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		timepoint, err := abiutil.Uint64(args[1].(*big.Int))
		if err != nil {
			return nil, err
		}
		weight, err := t.WeightAt(args[0].(common.Address), timepoint)
		if err != nil {
			return nil, err
		}
		return []interface{}{weight}, nil
	})
	d.Handle("delegates", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return []interface{}{t.CurrentDelegate(args[0].(common.Address))}, nil
	})
	return d
}
