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

package timelock

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/internal/abiutil"
)

// HashOperation returns the id of a single call operation,
// keccak256(abi.encode(target, value, data, predecessor, salt)).
func HashOperation(target common.Address, value *uint256.Int, data []byte, predecessor, salt common.Hash) common.Hash {
	if value == nil {
		value = new(uint256.Int)
	}
	enc, err := abiutil.Encode(
		[]string{"address", "uint256", "bytes", "bytes32", "bytes32"},
		target, value.ToBig(), data, [32]byte(predecessor), [32]byte(salt),
	)
	if err != nil {
		panic(fmt.Sprintf("timelock: encode operation: %v", err))
	}
	return crypto.Keccak256Hash(enc)
}

// HashOperationBatch returns the id of a batch operation,
// keccak256(abi.encode(targets, values, payloads, predecessor, salt)).
func HashOperationBatch(targets []common.Address, values []*uint256.Int, payloads [][]byte, predecessor, salt common.Hash) common.Hash {
	enc, err := abiutil.Encode(
		[]string{"address[]", "uint256[]", "bytes[]", "bytes32", "bytes32"},
		targets, abiutil.ToBig(values), payloads, [32]byte(predecessor), [32]byte(salt),
	)
	if err != nil {
		panic(fmt.Sprintf("timelock: encode batch operation: %v", err))
	}
	return crypto.Keccak256Hash(enc)
}
