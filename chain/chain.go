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

package chain

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/ethereum/go-ethereum/core/tracing"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/triedb"
	"github.com/holiman/uint256"
)

const maxCallDepth = 64

// Contract is a callable account. The chain has already moved value from
// caller to the contract when Call runs; returning an error reverts that
// transfer together with everything the contract did.
type Contract interface {
	Call(caller common.Address, value *uint256.Int, input []byte) ([]byte, error)
}

// Config holds the execution environment parameters
type Config struct {
	ChainID     uint64 // 链 ID
	GenesisTime uint64 // 创世时间戳（秒）
	BlockTime   uint64 // 出块间隔（秒）
}

// DefaultConfig returns the default chain configuration
func DefaultConfig() *Config {
	return &Config{
		ChainID:     31337,
		GenesisTime: 1700000000,
		BlockTime:   12,
	}
}

// Chain is a single-writer execution environment: native balances live in a
// go-ethereum StateDB, contract state lives in Go structures that record undo
// closures on the chain journal. Like state.StateDB, a Chain is not safe for
// concurrent use; the goroutine driving it defines the global transaction
// order.
type Chain struct {
	config *Config

	state   *state.StateDB
	journal *journal
	depth   int

	number uint64
	time   uint64

	contracts map[common.Address]Contract
	nonces    map[common.Address]uint64

	pending  []*Log
	history  []*Log
	logIndex uint64

	logFeed event.Feed
	scope   event.SubscriptionScope
}

type revision struct {
	state   int
	journal int
	logs    int
}

// New creates a chain at genesis with an empty in-memory state.
func New(config *Config) (*Chain, error) {
	if config == nil {
		config = DefaultConfig()
	}
	db := rawdb.NewMemoryDatabase()
	statedb, err := state.New(types.EmptyRootHash, state.NewDatabase(triedb.NewDatabase(db, nil), nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create state: %w", err)
	}
	return &Chain{
		config:    config,
		state:     statedb,
		journal:   newJournal(),
		time:      config.GenesisTime,
		contracts: make(map[common.Address]Contract),
		nonces:    make(map[common.Address]uint64),
	}, nil
}

// ChainID returns the chain id used in signature domains.
func (c *Chain) ChainID() *big.Int {
	return new(big.Int).SetUint64(c.config.ChainID)
}

// Number returns the current block number.
func (c *Chain) Number() uint64 { return c.number }

// Time returns the current block timestamp.
func (c *Chain) Time() uint64 { return c.time }

// Mine advances the chain by n blocks, each BlockTime seconds apart.
func (c *Chain) Mine(n uint64) {
	c.number += n
	c.time += n * c.config.BlockTime
}

// IncreaseTime moves the clock forward by the given number of seconds and
// mines one block at the new time.
func (c *Chain) IncreaseTime(seconds uint64) {
	c.time += seconds
	c.number++
}

// Atomic runs fn as one indivisible step. If fn fails, balances, journaled
// contract state and logs emitted inside fn are rolled back. The outermost
// successful frame commits and publishes its logs.
func (c *Chain) Atomic(fn func() error) error {
	rev := revision{
		state:   c.state.Snapshot(),
		journal: c.journal.length(),
		logs:    len(c.pending),
	}
	c.depth++
	err := fn()
	c.depth--

	if err != nil {
		c.journal.revert(rev.journal)
		c.state.RevertToSnapshot(rev.state)
		c.pending = c.pending[:rev.logs]
		return err
	}
	if c.depth == 0 {
		c.commit()
	}
	return nil
}

func (c *Chain) commit() {
	c.state.Finalise(false)
	c.journal.reset()

	logs := c.pending
	c.pending = nil
	for _, l := range logs {
		l.Index = c.logIndex
		c.logIndex++
		c.history = append(c.history, l)
	}
	for _, l := range logs {
		c.logFeed.Send(l)
	}
}

// Journal records an undo closure for a mutation made inside Atomic.
// Mutations outside Atomic are already final and are not recorded.
func (c *Chain) Journal(undo func()) {
	if c.depth == 0 {
		return
	}
	c.journal.append(undo)
}

// Emit stamps a log with the current block and buffers it until commit.
func (c *Chain) Emit(l *Log) {
	l.BlockNumber = c.number
	l.Time = c.time
	if c.depth == 0 {
		c.pending = append(c.pending, l)
		c.commit()
		return
	}
	c.pending = append(c.pending, l)
}

// Logs returns every committed log in emission order.
func (c *Chain) Logs() []*Log {
	logs := make([]*Log, len(c.history))
	copy(logs, c.history)
	return logs
}

// SubscribeLogs delivers committed logs to ch.
func (c *Chain) SubscribeLogs(ch chan<- *Log) event.Subscription {
	return c.scope.Track(c.logFeed.Subscribe(ch))
}

// Close terminates all log subscriptions.
func (c *Chain) Close() {
	c.scope.Close()
}

// BalanceOf returns the native balance of addr.
func (c *Chain) BalanceOf(addr common.Address) *uint256.Int {
	return c.state.GetBalance(addr).Clone()
}

// Fund credits addr with amount out of thin air. Used at genesis and in tests.
func (c *Chain) Fund(addr common.Address, amount *uint256.Int) {
	c.Atomic(func() error {
		c.state.AddBalance(addr, amount, tracing.BalanceIncreaseGenesisBalance)
		return nil
	})
}

// Call transfers value from `from` to `to` and, if a contract lives at `to`,
// runs it with input. The whole call is atomic.
func (c *Chain) Call(from, to common.Address, value *uint256.Int, input []byte) ([]byte, error) {
	if value == nil {
		value = new(uint256.Int)
	}
	var ret []byte
	err := c.Atomic(func() error {
		if c.depth > maxCallDepth {
			return ErrCallDepth
		}
		if !value.IsZero() {
			if c.state.GetBalance(from).Lt(value) {
				return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientBalance, from.Hex(), c.state.GetBalance(from), value)
			}
			c.state.SubBalance(from, value, tracing.BalanceChangeTransfer)
			c.state.AddBalance(to, value, tracing.BalanceChangeTransfer)
		}
		contract, ok := c.contracts[to]
		if !ok {
			return nil
		}
		out, err := contract.Call(from, value, input)
		if err != nil {
			return err
		}
		ret = out
		return nil
	})
	if err != nil {
		log.Debug("Call reverted", "from", from, "to", to, "value", value, "err", err)
	}
	return ret, err
}

// ContractAt returns the contract deployed at addr.
func (c *Chain) ContractAt(addr common.Address) (Contract, bool) {
	contract, ok := c.contracts[addr]
	return contract, ok
}

// NextAddress returns the address the next contract created by deployer
// will get.
func (c *Chain) NextAddress(deployer common.Address) common.Address {
	return crypto.CreateAddress(deployer, c.nonces[deployer])
}

// Register installs contract at addr.
func (c *Chain) Register(addr common.Address, contract Contract) error {
	return c.Atomic(func() error {
		if _, exists := c.contracts[addr]; exists {
			return fmt.Errorf("%w: %s", ErrContractExists, addr.Hex())
		}
		c.contracts[addr] = contract
		c.Journal(func() { delete(c.contracts, addr) })
		return nil
	})
}

// Deploy creates a contract at the CREATE address derived from the deployer
// and its deployment count.
func Deploy[T Contract](c *Chain, deployer common.Address, ctor func(addr common.Address) (T, error)) (T, error) {
	var deployed T
	err := c.Atomic(func() error {
		nonce := c.nonces[deployer]
		addr := crypto.CreateAddress(deployer, nonce)
		contract, err := ctor(addr)
		if err != nil {
			return err
		}
		if err := c.Register(addr, contract); err != nil {
			return err
		}
		c.nonces[deployer] = nonce + 1
		c.Journal(func() { c.nonces[deployer] = nonce })
		deployed = contract
		log.Debug("Contract deployed", "deployer", deployer, "nonce", nonce, "address", addr)
		return nil
	})
	return deployed, err
}
