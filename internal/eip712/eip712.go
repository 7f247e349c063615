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

// Package eip712 hashes typed structured data and recovers signers, for
// voting and delegating by signature.
package eip712

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/internal/abiutil"
)

// ErrInvalidSignature is returned when a signature cannot be recovered.
var ErrInvalidSignature = fmt.Errorf("%w: invalid signature", chain.ErrUnauthorized)

var domainTypeHash = crypto.Keccak256Hash([]byte("EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))

// Domain is the EIP-712 signing domain of a contract.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// Separator returns the domain separator hash.
func (d *Domain) Separator() common.Hash {
	enc, _ := abiutil.Encode(
		[]string{"bytes32", "bytes32", "bytes32", "uint256", "address"},
		[32]byte(domainTypeHash),
		[32]byte(crypto.Keccak256Hash([]byte(d.Name))),
		[32]byte(crypto.Keccak256Hash([]byte(d.Version))),
		d.ChainID,
		d.VerifyingContract,
	)
	return crypto.Keccak256Hash(enc)
}

// TypeHash hashes a struct type string such as
// "Ballot(uint256 proposalId,uint8 support,address voter,uint256 nonce)".
func TypeHash(typ string) common.Hash {
	return crypto.Keccak256Hash([]byte(typ))
}

// HashStruct computes keccak256(abi.encode(typeHash, fields...)).
func HashStruct(typeHash common.Hash, types []string, fields ...interface{}) (common.Hash, error) {
	enc, err := abiutil.Encode(append([]string{"bytes32"}, types...), append([]interface{}{[32]byte(typeHash)}, fields...)...)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(enc), nil
}

// Digest returns the final message hash "\x19\x01" ‖ domainSeparator ‖ structHash.
func (d *Domain) Digest(structHash common.Hash) common.Hash {
	sep := d.Separator()
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, sep[:], structHash[:])
}

// Sign signs a digest, producing a 65 byte [R || S || V] signature with V in {27, 28}.
func Sign(digest common.Hash, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(digest[:], key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// Recover returns the address that produced sig over digest. Both the 0/1
// and 27/28 recovery id conventions are accepted.
func Recover(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(digest[:], normalized)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}
