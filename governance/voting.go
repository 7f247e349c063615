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

package governance

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/internal/eip712"
)

var ballotTypeHash = eip712.TypeHash("Ballot(uint256 proposalId,uint8 support,address voter,uint256 nonce)")

// CastVote records voter's ballot with the weight delegated to voter at the
// proposal snapshot, and returns that weight.
func (g *Governor) CastVote(voter common.Address, id common.Hash, support VoteType) (*big.Int, error) {
	return g.CastVoteWithReason(voter, id, support, "")
}

// CastVoteWithReason is CastVote with a free-form reason attached to the
// VoteCast log.
func (g *Governor) CastVoteWithReason(voter common.Address, id common.Hash, support VoteType, reason string) (*big.Int, error) {
	var weight *big.Int
	err := g.chain.Atomic(func() error {
		var err error
		weight, err = g.castVote(voter, id, support, reason)
		return err
	})
	return weight, err
}

// BallotDigest returns the EIP-712 digest voter signs to vote by signature.
func (g *Governor) BallotDigest(id common.Hash, support VoteType, voter common.Address, nonce uint64) (common.Hash, error) {
	structHash, err := eip712.HashStruct(ballotTypeHash,
		[]string{"uint256", "uint8", "address", "uint256"},
		new(big.Int).SetBytes(id[:]), uint8(support), voter, new(big.Int).SetUint64(nonce))
	if err != nil {
		return common.Hash{}, err
	}
	return g.domain.Digest(structHash), nil
}

// CastVoteBySig casts a vote signed by voter. The signature covers voter's
// current nonce, which is consumed.
func (g *Governor) CastVoteBySig(id common.Hash, support VoteType, voter common.Address, sig []byte) (*big.Int, error) {
	var weight *big.Int
	err := g.chain.Atomic(func() error {
		nonce := g.nonces[voter]
		digest, err := g.BallotDigest(id, support, voter, nonce)
		if err != nil {
			return err
		}
		signer, err := eip712.Recover(digest, sig)
		if err != nil {
			return err
		}
		if signer != voter {
			return fmt.Errorf("%w: signed by %s, not %s", eip712.ErrInvalidSignature, signer.Hex(), voter.Hex())
		}
		chain.SetEntry(g.chain, g.nonces, voter, nonce+1)
		weight, err = g.castVote(voter, id, support, "")
		return err
	})
	return weight, err
}

func (g *Governor) castVote(voter common.Address, id common.Hash, support VoteType, reason string) (*big.Int, error) {
	state, err := g.State(id)
	if err != nil {
		return nil, err
	}
	if state != StateActive {
		return nil, fmt.Errorf("%w: %s is %s", ErrVotingClosed, id.Hex(), state)
	}
	if support > VoteAbstain {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVoteType, support)
	}
	if g.HasVoted(id, voter) {
		return nil, fmt.Errorf("%w: %s on %s", ErrAlreadyVoted, voter.Hex(), id.Hex())
	}
	p := g.proposals[id]
	weight, err := g.token.WeightAt(voter, p.Snapshot)
	if err != nil {
		return nil, err
	}

	switch support {
	case VoteAgainst:
		chain.SetValue(g.chain, &p.AgainstVotes, new(big.Int).Add(p.AgainstVotes, weight))
	case VoteFor:
		chain.SetValue(g.chain, &p.ForVotes, new(big.Int).Add(p.ForVotes, weight))
	case VoteAbstain:
		chain.SetValue(g.chain, &p.AbstainVotes, new(big.Int).Add(p.AbstainVotes, weight))
	}
	ballots, ok := g.receipts[id]
	if !ok {
		ballots = make(map[common.Address]*Receipt)
		chain.SetEntry(g.chain, g.receipts, id, ballots)
	}
	chain.SetEntry(g.chain, ballots, voter, &Receipt{
		HasVoted: true,
		Support:  support,
		Weight:   new(big.Int).Set(weight),
		Reason:   reason,
	})

	g.chain.Emit(chain.NewLog(g.address, EventVoteCast, id, voter, voter, &VoteCastEvent{
		Support: uint8(support),
		Weight:  new(big.Int).Set(weight),
		Reason:  reason,
	}))
	log.Debug("Vote cast", "id", id, "voter", voter, "support", support, "weight", weight)
	return weight, nil
}

// HasVoted reports whether account has voted on proposal id.
func (g *Governor) HasVoted(id common.Hash, account common.Address) bool {
	_, ok := g.receipts[id][account]
	return ok
}

// Receipt returns a copy of account's ballot on proposal id.
func (g *Governor) Receipt(id common.Hash, account common.Address) (*Receipt, bool) {
	r, ok := g.receipts[id][account]
	if !ok {
		return nil, false
	}
	cpy := *r
	cpy.Weight = new(big.Int).Set(r.Weight)
	return &cpy, true
}

// Nonces returns the next ballot signature nonce of account.
func (g *Governor) Nonces(account common.Address) uint64 {
	return g.nonces[account]
}

// ProposalVotes returns the against, for and abstain tallies of id.
func (g *Governor) ProposalVotes(id common.Hash) (against, forVotes, abstain *big.Int) {
	p, ok := g.proposals[id]
	if !ok {
		return new(big.Int), new(big.Int), new(big.Int)
	}
	return new(big.Int).Set(p.AgainstVotes), new(big.Int).Set(p.ForVotes), new(big.Int).Set(p.AbstainVotes)
}

// QuorumNumerator returns the current quorum numerator.
func (g *Governor) QuorumNumerator() uint64 {
	return g.quorumNumerator.Latest().Uint64()
}

// QuorumNumeratorAt returns the quorum numerator in force at timepoint.
func (g *Governor) QuorumNumeratorAt(timepoint uint64) uint64 {
	return g.quorumNumerator.UpperLookupRecent(timepoint).Uint64()
}

// Quorum returns the minimum For plus Abstain weight a proposal with
// snapshot timepoint needs.
func (g *Governor) Quorum(timepoint uint64) (*big.Int, error) {
	total, err := g.token.TotalWeightAt(timepoint)
	if err != nil {
		return nil, err
	}
	q := new(big.Int).Mul(total, new(big.Int).SetUint64(g.QuorumNumeratorAt(timepoint)))
	return q.Div(q, big.NewInt(QuorumDenominator)), nil
}

// succeeded reports whether a finished vote reached quorum with more For
// than Against weight.
func (g *Governor) succeeded(p *Proposal) (bool, error) {
	quorum, err := g.Quorum(p.Snapshot)
	if err != nil {
		return false, err
	}
	participation := new(big.Int).Add(p.ForVotes, p.AbstainVotes)
	return participation.Cmp(quorum) >= 0 && p.ForVotes.Cmp(p.AgainstVotes) > 0, nil
}
