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

// Package abiutil builds contract method tables from canonical Solidity type
// strings and routes ABI encoded calldata to Go handlers.
package abiutil

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Mutability values accepted in MethodSpec.
const (
	NonPayable = "nonpayable"
	Payable    = "payable"
	View       = "view"
)

// MethodSpec describes one contract method by name and canonical argument
// types, e.g. {Name: "withdrawFunds", Inputs: []string{"address", "uint256"}}.
type MethodSpec struct {
	Name       string
	Inputs     []string
	Outputs    []string
	Mutability string
}

// MustNewABI builds an ABI from method specs. It panics on an unknown type,
// which is a programming error in a package level table.
func MustNewABI(specs ...MethodSpec) abi.ABI {
	methods := make(map[string]abi.Method, len(specs))
	for _, spec := range specs {
		mutability := spec.Mutability
		if mutability == "" {
			mutability = NonPayable
		}
		methods[spec.Name] = abi.NewMethod(
			spec.Name,
			spec.Name,
			abi.Function,
			mutability,
			mutability == View,
			mutability == Payable,
			MustArguments(spec.Inputs...),
			MustArguments(spec.Outputs...),
		)
	}
	return abi.ABI{Methods: methods}
}

// MustArguments builds an unnamed argument list from type strings.
func MustArguments(types ...string) abi.Arguments {
	args := make(abi.Arguments, len(types))
	for i, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(fmt.Sprintf("abiutil: invalid type %q: %v", t, err))
		}
		args[i] = abi.Argument{Type: typ}
	}
	return args
}

// Encode is the equivalent of Solidity's abi.encode over the given types.
func Encode(types []string, values ...interface{}) ([]byte, error) {
	return MustArguments(types...).Pack(values...)
}
