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
	"math/big"

	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/chain"
)

// ErrValueOverflow is returned when an ABI uint256 does not fit a native value.
var ErrValueOverflow = fmt.Errorf("%w: value overflows 256 bits", chain.ErrMalformedInput)

// ToBig converts native values to the *big.Int form the ABI packer expects.
// Nil entries become zero.
func ToBig(values []*uint256.Int) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = new(big.Int)
			continue
		}
		out[i] = v.ToBig()
	}
	return out
}

// FromBig converts decoded ABI uint256 values back to native values.
func FromBig(values []*big.Int) ([]*uint256.Int, error) {
	out := make([]*uint256.Int, len(values))
	for i, v := range values {
		u, overflow := uint256.FromBig(v)
		if overflow {
			return nil, fmt.Errorf("%w: index %d", ErrValueOverflow, i)
		}
		out[i] = u
	}
	return out, nil
}

// Uint64 narrows a decoded uint256 argument.
func Uint64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 || !v.IsUint64() {
		return 0, fmt.Errorf("%w: %v does not fit in 64 bits", chain.ErrMalformedInput, v)
	}
	return v.Uint64(), nil
}
