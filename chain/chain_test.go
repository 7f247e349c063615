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
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// counter is a minimal contract: every call increments n and emits a log.
// Input "fail" reverts after the increment, input "recurse" calls itself.
type counter struct {
	c    *Chain
	self common.Address
	n    uint64
}

func (k *counter) Call(caller common.Address, value *uint256.Int, input []byte) ([]byte, error) {
	SetValue(k.c, &k.n, k.n+1)
	k.c.Emit(NewLog(k.self, "Inc", common.Hash{}, caller, common.Address{}, nil))
	switch string(input) {
	case "fail":
		return nil, errors.New("fail")
	case "recurse":
		return k.c.Call(k.self, k.self, nil, input)
	}
	return []byte{byte(k.n)}, nil
}

var (
	alice = common.HexToAddress("0xa11ce")
	bob   = common.HexToAddress("0xb0b")
)

func newTestChain(t *testing.T) *Chain {
	t.Helper()
	c, err := New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func deployCounter(t *testing.T, c *Chain) *counter {
	t.Helper()
	k, err := Deploy(c, alice, func(addr common.Address) (*counter, error) {
		return &counter{c: c, self: addr}, nil
	})
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	return k
}

func TestClock(t *testing.T) {
	c := newTestChain(t)
	start := c.Time()
	c.Mine(3)
	if c.Number() != 3 || c.Time() != start+36 {
		t.Errorf("after Mine(3): number %d time %d", c.Number(), c.Time()-start)
	}
	c.IncreaseTime(61)
	if c.Number() != 4 || c.Time() != start+97 {
		t.Errorf("after IncreaseTime(61): number %d time %d", c.Number(), c.Time()-start)
	}
}

func TestDeployAddresses(t *testing.T) {
	c := newTestChain(t)
	want := c.NextAddress(alice)
	if want != crypto.CreateAddress(alice, 0) {
		t.Fatalf("NextAddress = %s", want.Hex())
	}
	k := deployCounter(t, c)
	if k.self != want {
		t.Errorf("deployed at %s, want %s", k.self.Hex(), want.Hex())
	}
	if c.NextAddress(alice) != crypto.CreateAddress(alice, 1) {
		t.Error("nonce did not advance")
	}
	if err := c.Register(k.self, k); !errors.Is(err, ErrContractExists) {
		t.Errorf("expected ErrContractExists, got %v", err)
	}
}

func TestCallTransfersValue(t *testing.T) {
	c := newTestChain(t)
	k := deployCounter(t, c)
	c.Fund(bob, uint256.NewInt(100))

	if _, err := c.Call(bob, k.self, uint256.NewInt(40), nil); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if c.BalanceOf(bob).Uint64() != 60 || c.BalanceOf(k.self).Uint64() != 40 {
		t.Errorf("balances bob=%v counter=%v", c.BalanceOf(bob), c.BalanceOf(k.self))
	}
	if _, err := c.Call(bob, alice, uint256.NewInt(61), nil); !errors.Is(err, ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
	if !errors.Is(ErrInsufficientBalance, ErrInvalidState) {
		t.Error("ErrInsufficientBalance should be an invalid state error")
	}
}

func TestFailedCallReverts(t *testing.T) {
	c := newTestChain(t)
	k := deployCounter(t, c)
	c.Fund(bob, uint256.NewInt(100))
	logs := len(c.Logs())

	if _, err := c.Call(bob, k.self, uint256.NewInt(50), []byte("fail")); err == nil {
		t.Fatal("expected failure")
	}
	if k.n != 0 {
		t.Errorf("counter = %d after revert", k.n)
	}
	if c.BalanceOf(bob).Uint64() != 100 {
		t.Errorf("bob balance = %v after revert", c.BalanceOf(bob))
	}
	if len(c.Logs()) != logs {
		t.Error("reverted call published logs")
	}
}

func TestNestedAtomic(t *testing.T) {
	c := newTestChain(t)
	k := deployCounter(t, c)

	err := c.Atomic(func() error {
		if _, err := c.Call(bob, k.self, nil, nil); err != nil {
			return err
		}
		// The inner failure only undoes its own frame.
		c.Call(bob, k.self, nil, []byte("fail"))
		if k.n != 1 {
			t.Errorf("counter = %d inside frame, want 1", k.n)
		}
		if len(c.Logs()) != 0 {
			t.Error("logs published before the outer frame committed")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Atomic failed: %v", err)
	}
	if k.n != 1 || len(c.Logs()) != 1 {
		t.Errorf("counter %d logs %d, want 1 and 1", k.n, len(c.Logs()))
	}
	if c.Logs()[0].Index != 0 {
		t.Errorf("log index = %d", c.Logs()[0].Index)
	}
}

func TestCallDepth(t *testing.T) {
	c := newTestChain(t)
	k := deployCounter(t, c)
	if _, err := c.Call(bob, k.self, nil, []byte("recurse")); !errors.Is(err, ErrCallDepth) {
		t.Fatalf("expected ErrCallDepth, got %v", err)
	}
	if k.n != 0 {
		t.Errorf("counter = %d after unwinding", k.n)
	}
}

func TestSubscribeLogs(t *testing.T) {
	c := newTestChain(t)
	k := deployCounter(t, c)
	ch := make(chan *Log, 4)
	sub := c.SubscribeLogs(ch)
	defer sub.Unsubscribe()

	c.Mine(5)
	c.Call(bob, k.self, nil, []byte("fail"))
	if _, err := c.Call(bob, k.self, nil, nil); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	select {
	case l := <-ch:
		if l.Name != "Inc" || l.Actor != bob || l.BlockNumber != 5 || l.Address != k.self {
			t.Errorf("unexpected log %+v", l)
		}
	default:
		t.Fatal("no log delivered")
	}
	if len(ch) != 0 {
		t.Errorf("%d extra logs delivered", len(ch))
	}
}

func TestSetEntry(t *testing.T) {
	c := newTestChain(t)
	m := map[string]int{"a": 1}
	c.Atomic(func() error {
		SetEntry(c, m, "a", 2)
		SetEntry(c, m, "b", 3)
		return errors.New("undo")
	})
	if len(m) != 1 || m["a"] != 1 {
		t.Errorf("map = %v after revert", m)
	}
	// Outside a frame writes are final.
	SetEntry(c, m, "b", 3)
	if m["b"] != 3 {
		t.Errorf("map = %v", m)
	}
}
