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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// CalculateContractAddress deterministically calculates a contract address
// based on the deployer address and nonce using CREATE opcode rules
func CalculateContractAddress(deployer common.Address, nonce uint64) common.Address {
	// keccak256(rlp([deployer, nonce]))[12:]
	data, _ := rlp.EncodeToBytes([]interface{}{deployer, nonce})
	hash := crypto.Keccak256Hash(data)

	var addr common.Address
	copy(addr[:], hash[12:])
	return addr
}

// Addresses are the contract addresses a bootstrap produces.
type Addresses struct {
	Token    common.Address
	Timelock common.Address
	Governor common.Address
	Treasury common.Address
}

// PredictAddresses returns where Deploy will place the system when the
// deployer has already created nonce contracts. Deploy creates the token,
// timelock, governor and treasury in that order.
func PredictAddresses(deployer common.Address, nonce uint64) Addresses {
	return Addresses{
		Token:    CalculateContractAddress(deployer, nonce),
		Timelock: CalculateContractAddress(deployer, nonce+1),
		Governor: CalculateContractAddress(deployer, nonce+2),
		Treasury: CalculateContractAddress(deployer, nonce+3),
	}
}
