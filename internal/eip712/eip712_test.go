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

package eip712

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var testDomain = Domain{
	Name:              "DAOGovernor",
	Version:           "1",
	ChainID:           big.NewInt(31337),
	VerifyingContract: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
}

func ballotHash(t *testing.T, proposal common.Hash, support uint8, voter common.Address, nonce uint64) common.Hash {
	t.Helper()
	h, err := HashStruct(
		TypeHash("Ballot(uint256 proposalId,uint8 support,address voter,uint256 nonce)"),
		[]string{"uint256", "uint8", "address", "uint256"},
		new(big.Int).SetBytes(proposal[:]), support, voter, new(big.Int).SetUint64(nonce),
	)
	if err != nil {
		t.Fatalf("HashStruct failed: %v", err)
	}
	return h
}

func TestSignRecover(t *testing.T) {
	key, _ := crypto.GenerateKey()
	signer := crypto.PubkeyToAddress(key.PublicKey)
	digest := testDomain.Digest(ballotHash(t, common.HexToHash("0x01"), 1, signer, 0))

	sig, err := Sign(digest, key)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if v := sig[crypto.RecoveryIDOffset]; v != 27 && v != 28 {
		t.Fatalf("v = %d, want 27 or 28", v)
	}
	got, err := Recover(digest, sig)
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}
	if got != signer {
		t.Errorf("recovered %x, want %x", got, signer)
	}

	// Raw 0/1 recovery ids are accepted too, and the input is left untouched.
	raw := common.CopyBytes(sig)
	raw[crypto.RecoveryIDOffset] -= 27
	got, err = Recover(digest, raw)
	if err != nil {
		t.Fatalf("Recover(raw) failed: %v", err)
	}
	if got != signer {
		t.Errorf("recovered %x from raw signature, want %x", got, signer)
	}
	if raw[crypto.RecoveryIDOffset] > 1 {
		t.Errorf("Recover modified its input")
	}
}

func TestRecoverRejectsMalformed(t *testing.T) {
	digest := testDomain.Digest(common.Hash{})
	if _, err := Recover(digest, make([]byte, 64)); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("short signature: expected ErrInvalidSignature, got %v", err)
	}
	bad := make([]byte, crypto.SignatureLength)
	bad[crypto.RecoveryIDOffset] = 27
	if _, err := Recover(digest, bad); !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("zero signature: expected ErrInvalidSignature, got %v", err)
	}
}

func TestDigestBindsDomain(t *testing.T) {
	structHash := ballotHash(t, common.HexToHash("0x02"), 0, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), 3)
	base := testDomain.Digest(structHash)

	other := testDomain
	other.ChainID = big.NewInt(1)
	if other.Digest(structHash) == base {
		t.Error("digest ignores chain id")
	}
	other = testDomain
	other.VerifyingContract = common.HexToAddress("0x01")
	if other.Digest(structHash) == base {
		t.Error("digest ignores verifying contract")
	}
	if testDomain.Digest(structHash) != base {
		t.Error("digest is not deterministic")
	}
}
