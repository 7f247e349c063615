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

	"github.com/sailakshmidurga/dao-governance/chain"
)

// Proposal errors
var (
	ErrUnknownProposal            = fmt.Errorf("%w: unknown proposal", chain.ErrMalformedInput)
	ErrMalformedProposal          = fmt.Errorf("%w: invalid proposal length", chain.ErrMalformedInput)
	ErrDuplicateProposal          = fmt.Errorf("%w: proposal already exists", chain.ErrDuplicate)
	ErrInsufficientProposerWeight = fmt.Errorf("%w: proposer weight below threshold", chain.ErrUnauthorized)
	ErrProposalWindowOverflow     = fmt.Errorf("%w: voting window overflows the clock", chain.ErrMalformedInput)
)

// Voting errors
var (
	ErrVotingClosed    = fmt.Errorf("%w: voting is closed", chain.ErrInvalidState)
	ErrInvalidVoteType = fmt.Errorf("%w: invalid vote type", chain.ErrMalformedInput)
	ErrAlreadyVoted    = fmt.Errorf("%w: voter has already voted on this proposal", chain.ErrDuplicate)
)

// Lifecycle errors
var (
	ErrNotSucceeded            = fmt.Errorf("%w: proposal has not succeeded", chain.ErrInvalidState)
	ErrNotQueued               = fmt.Errorf("%w: proposal is not queued", chain.ErrInvalidState)
	ErrProposalAlreadyExecuted = fmt.Errorf("%w: proposal already executed", chain.ErrInvalidState)
	ErrNotCancelable           = fmt.Errorf("%w: proposal cannot be canceled", chain.ErrInvalidState)
	ErrOnlyProposer            = fmt.Errorf("%w: only the proposer or governance can cancel", chain.ErrUnauthorized)
)

// Settings errors
var (
	ErrOnlyGovernance           = fmt.Errorf("%w: caller is not governance", chain.ErrUnauthorized)
	ErrInvalidVotingDelay       = fmt.Errorf("%w: voting delay out of range", chain.ErrMalformedInput)
	ErrInvalidVotingPeriod      = fmt.Errorf("%w: voting period out of range", chain.ErrMalformedInput)
	ErrInvalidGracePeriod       = fmt.Errorf("%w: grace period out of range", chain.ErrMalformedInput)
	ErrInvalidQuorumFraction    = fmt.Errorf("%w: quorum numerator exceeds denominator", chain.ErrMalformedInput)
	ErrInvalidTimelock          = fmt.Errorf("%w: address is not a timelock", chain.ErrMalformedInput)
	ErrInvalidProposalThreshold = fmt.Errorf("%w: negative proposal threshold", chain.ErrMalformedInput)
)
