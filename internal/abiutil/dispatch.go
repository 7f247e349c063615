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
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/chain"
)

// Dispatch errors
var (
	ErrShortInput    = fmt.Errorf("%w: calldata shorter than a method selector", chain.ErrMalformedInput)
	ErrUnknownMethod = fmt.Errorf("%w: unknown method selector", chain.ErrMalformedInput)
	ErrNoReceive     = fmt.Errorf("%w: contract does not accept plain transfers", chain.ErrMalformedInput)
	ErrNonPayable    = fmt.Errorf("%w: method is not payable", chain.ErrMalformedInput)
	ErrBadArguments  = fmt.Errorf("%w: cannot decode arguments", chain.ErrMalformedInput)
)

// Handler serves one method. args are the decoded inputs in declaration
// order; the returned values are packed against the method outputs.
type Handler func(caller common.Address, value *uint256.Int, args []interface{}) ([]interface{}, error)

// Dispatcher routes calldata to handlers by method selector.
type Dispatcher struct {
	abi      abi.ABI
	handlers map[string]Handler
	receive  func(caller common.Address, value *uint256.Int) error
}

// NewDispatcher creates a dispatcher for the given method table.
func NewDispatcher(contract abi.ABI) *Dispatcher {
	return &Dispatcher{
		abi:      contract,
		handlers: make(map[string]Handler),
	}
}

// ABI returns the method table.
func (d *Dispatcher) ABI() abi.ABI {
	return d.abi
}

// Handle registers the handler for a method.
func (d *Dispatcher) Handle(name string, h Handler) {
	if _, ok := d.abi.Methods[name]; !ok {
		panic(fmt.Sprintf("abiutil: no method %q in table", name))
	}
	d.handlers[name] = h
}

// OnReceive registers the handler for calls with empty calldata.
func (d *Dispatcher) OnReceive(fn func(caller common.Address, value *uint256.Int) error) {
	d.receive = fn
}

// Dispatch decodes input, runs the matching handler and encodes its result.
func (d *Dispatcher) Dispatch(caller common.Address, value *uint256.Int, input []byte) ([]byte, error) {
	if len(input) == 0 {
		if d.receive == nil {
			return nil, ErrNoReceive
		}
		return nil, d.receive(caller, value)
	}
	if len(input) < 4 {
		return nil, ErrShortInput
	}
	method, err := d.abi.MethodById(input[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %x", ErrUnknownMethod, input[:4])
	}
	handler, ok := d.handlers[method.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method.Sig)
	}
	if !method.IsPayable() && value != nil && !value.IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrNonPayable, method.Sig)
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadArguments, method.Sig, err)
	}
	out, err := handler(caller, value, args)
	if err != nil {
		return nil, err
	}
	if len(method.Outputs) == 0 {
		return nil, nil
	}
	return method.Outputs.Pack(out...)
}
