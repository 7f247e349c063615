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

package abiutil

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/chain"
)

var testABI = MustNewABI(
	MethodSpec{Name: "add", Inputs: []string{"uint256", "uint256"}, Outputs: []string{"uint256"}},
	MethodSpec{Name: "deposit", Mutability: Payable},
	MethodSpec{Name: "unhandled"},
)

func newTestDispatcher(received *uint256.Int) *Dispatcher {
	d := NewDispatcher(testABI)
	d.Handle("add", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return []interface{}{new(big.Int).Add(args[0].(*big.Int), args[1].(*big.Int))}, nil
	})
	d.Handle("deposit", func(_ common.Address, value *uint256.Int, _ []interface{}) ([]interface{}, error) {
		received.Add(received, value)
		return nil, nil
	})
	return d
}

func TestDispatch(t *testing.T) {
	received := new(uint256.Int)
	d := newTestDispatcher(received)
	caller := common.HexToAddress("0xca11")

	input, err := testABI.Pack("add", big.NewInt(2), big.NewInt(40))
	if err != nil {
		t.Fatalf("Pack failed: %v", err)
	}
	out, err := d.Dispatch(caller, nil, input)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	res, err := testABI.Unpack("add", out)
	if err != nil {
		t.Fatalf("Unpack failed: %v", err)
	}
	if res[0].(*big.Int).Int64() != 42 {
		t.Errorf("add = %v, want 42", res[0])
	}

	deposit, _ := testABI.Pack("deposit")
	if _, err := d.Dispatch(caller, uint256.NewInt(7), deposit); err != nil {
		t.Fatalf("payable call failed: %v", err)
	}
	if received.Uint64() != 7 {
		t.Errorf("received = %v", received)
	}
}

func TestDispatchErrors(t *testing.T) {
	d := newTestDispatcher(new(uint256.Int))
	caller := common.HexToAddress("0xca11")
	add, _ := testABI.Pack("add", big.NewInt(1), big.NewInt(1))
	unhandled, _ := testABI.Pack("unhandled")

	tests := []struct {
		name  string
		value *uint256.Int
		input []byte
		want  error
	}{
		{"empty without receive", nil, nil, ErrNoReceive},
		{"short", nil, []byte{1, 2}, ErrShortInput},
		{"unknown selector", nil, []byte{0xde, 0xad, 0xbe, 0xef}, ErrUnknownMethod},
		{"no handler", nil, unhandled, ErrUnknownMethod},
		{"value to non-payable", uint256.NewInt(1), add, ErrNonPayable},
		{"truncated arguments", nil, add[:20], ErrBadArguments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Dispatch(caller, tt.value, tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, chain.ErrMalformedInput) {
				t.Errorf("%v is not a malformed input error", err)
			}
		})
	}
}

func TestReceive(t *testing.T) {
	d := NewDispatcher(testABI)
	var got uint64
	d.OnReceive(func(_ common.Address, value *uint256.Int) error {
		got = value.Uint64()
		return nil
	})
	if _, err := d.Dispatch(common.Address{}, uint256.NewInt(9), nil); err != nil {
		t.Fatalf("receive failed: %v", err)
	}
	if got != 9 {
		t.Errorf("received %d, want 9", got)
	}
}

func TestConvert(t *testing.T) {
	big256 := new(big.Int).Lsh(big.NewInt(1), 256)
	if _, err := FromBig([]*big.Int{big.NewInt(1), big256}); !errors.Is(err, ErrValueOverflow) {
		t.Errorf("expected ErrValueOverflow, got %v", err)
	}
	vals := ToBig([]*uint256.Int{uint256.NewInt(5), nil})
	if vals[0].Int64() != 5 || vals[1].Sign() != 0 {
		t.Errorf("ToBig = %v", vals)
	}
	if _, err := Uint64(new(big.Int).Lsh(big.NewInt(1), 64)); err == nil {
		t.Error("expected overflow for 2^64")
	}
}

func TestEncode(t *testing.T) {
	enc, err := Encode([]string{"address", "uint256"}, common.HexToAddress("0x1"), big.NewInt(2))
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(enc) != 64 || enc[31] != 1 || enc[63] != 2 {
		t.Errorf("unexpected encoding %x", enc)
	}
}
