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

// Package governance implements the governor: token weighted proposals whose
// successful call batches are queued on a timelock and executed from it.
package governance

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/internal/abiutil"
	"github.com/sailakshmidurga/dao-governance/internal/eip712"
	"github.com/sailakshmidurga/dao-governance/timelock"
	"github.com/sailakshmidurga/dao-governance/votes"
)

// Governor is the proposal state machine deployed on a chain. Settings can
// only be changed by governance itself, i.e. by calls executed from the
// timelock.
type Governor struct {
	chain   *chain.Chain
	address common.Address
	name    string
	domain  *eip712.Domain

	token    WeightSource
	timelock Timelock

	votingDelay       uint64
	votingPeriod      uint64
	proposalThreshold *big.Int
	gracePeriod       uint64
	quorumNumerator   votes.Trace

	proposals map[common.Hash]*Proposal
	order     []common.Hash
	receipts  map[common.Hash]map[common.Address]*Receipt
	nonces    map[common.Address]uint64

	dispatcher *abiutil.Dispatcher
}

// New creates a governor at address self.
func New(c *chain.Chain, self common.Address, token WeightSource, tl Timelock, config *Config) (*Governor, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := checkWindows(config.VotingDelay, config.VotingPeriod, config.GracePeriod); err != nil {
		return nil, err
	}
	if config.QuorumNumerator > QuorumDenominator {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidQuorumFraction, config.QuorumNumerator, QuorumDenominator)
	}
	threshold := new(big.Int)
	if config.ProposalThreshold != nil {
		if config.ProposalThreshold.Sign() < 0 {
			return nil, ErrInvalidProposalThreshold
		}
		threshold.Set(config.ProposalThreshold)
	}
	g := &Governor{
		chain:   c,
		address: self,
		name:    config.Name,
		domain: &eip712.Domain{
			Name:              config.Name,
			Version:           Version,
			ChainID:           c.ChainID(),
			VerifyingContract: self,
		},
		token:             token,
		timelock:          tl,
		votingDelay:       config.VotingDelay,
		votingPeriod:      config.VotingPeriod,
		proposalThreshold: threshold,
		gracePeriod:       config.GracePeriod,
		proposals:         make(map[common.Hash]*Proposal),
		receipts:          make(map[common.Hash]map[common.Address]*Receipt),
		nonces:            make(map[common.Address]uint64),
	}
	// The first numerator covers every timepoint.
	g.quorumNumerator.Push(0, new(big.Int).SetUint64(config.QuorumNumerator))
	g.dispatcher = g.newDispatcher()
	return g, nil
}

// Version is the EIP-712 domain version.
const Version = "1"

// Address returns the governor's address.
func (g *Governor) Address() common.Address { return g.address }

// Name returns the governor's name.
func (g *Governor) Name() string { return g.name }

// Version returns the EIP-712 domain version.
func (g *Governor) Version() string { return Version }

// Token returns the weight source.
func (g *Governor) Token() WeightSource { return g.token }

// Timelock returns the timelock proposals are queued on.
func (g *Governor) Timelock() Timelock { return g.timelock }

// Executor returns the address through which governance acts.
func (g *Governor) Executor() common.Address { return g.timelock.Address() }

// Clock returns the weight source clock.
func (g *Governor) Clock() uint64 { return g.token.Clock() }

// CountingMode describes the ballot options and what counts towards quorum.
func (g *Governor) CountingMode() string { return "support=bravo&quorum=for,abstain" }

// ProposalNeedsQueuing reports that proposals go through the timelock.
func (g *Governor) ProposalNeedsQueuing(common.Hash) bool { return true }

// HashProposal returns keccak256(abi.encode(targets, values, calldatas,
// descriptionHash)).
func HashProposal(targets []common.Address, values []*uint256.Int, calldatas [][]byte, descriptionHash common.Hash) common.Hash {
	enc, err := abiutil.Encode(
		[]string{"address[]", "uint256[]", "bytes[]", "bytes32"},
		targets, abiutil.ToBig(values), calldatas, [32]byte(descriptionHash),
	)
	if err != nil {
		panic(fmt.Sprintf("governance: encode proposal: %v", err))
	}
	return crypto.Keccak256Hash(enc)
}

// DescriptionHash returns keccak256 of a proposal description.
func DescriptionHash(description string) common.Hash {
	return crypto.Keccak256Hash([]byte(description))
}

// HashProposal returns the id a proposal with these actions would get.
func (g *Governor) HashProposal(targets []common.Address, values []*uint256.Int, calldatas [][]byte, descriptionHash common.Hash) common.Hash {
	return HashProposal(targets, values, calldatas, descriptionHash)
}

// Propose creates a proposal. The proposer's weight at the last finished
// timepoint must reach the proposal threshold.
func (g *Governor) Propose(proposer common.Address, targets []common.Address, values []*uint256.Int, calldatas [][]byte, description string) (common.Hash, error) {
	if len(targets) == 0 || len(targets) != len(values) || len(targets) != len(calldatas) {
		return common.Hash{}, fmt.Errorf("%w: targets %d, values %d, calldatas %d", ErrMalformedProposal, len(targets), len(values), len(calldatas))
	}
	values = normalizeValues(values)
	descHash := DescriptionHash(description)
	id := HashProposal(targets, values, calldatas, descHash)

	err := g.chain.Atomic(func() error {
		clock := g.token.Clock()
		if g.proposalThreshold.Sign() > 0 {
			weight, err := g.proposerWeight(proposer, clock)
			if err != nil {
				return err
			}
			if weight.Cmp(g.proposalThreshold) < 0 {
				return fmt.Errorf("%w: %s has %v, needs %v", ErrInsufficientProposerWeight, proposer.Hex(), weight, g.proposalThreshold)
			}
		}
		if _, exists := g.proposals[id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateProposal, id.Hex())
		}
		if g.votingDelay > math.MaxUint64-clock || g.votingPeriod > math.MaxUint64-clock-g.votingDelay {
			return fmt.Errorf("%w: clock %d, delay %d, period %d", ErrProposalWindowOverflow, clock, g.votingDelay, g.votingPeriod)
		}
		snapshot := clock + g.votingDelay
		p := &Proposal{
			ID:              id,
			Proposer:        proposer,
			Targets:         targets,
			Values:          values,
			Calldatas:       calldatas,
			Description:     description,
			DescriptionHash: descHash,
			Snapshot:        snapshot,
			Deadline:        snapshot + g.votingPeriod,
			ForVotes:        new(big.Int),
			AgainstVotes:    new(big.Int),
			AbstainVotes:    new(big.Int),
		}
		p = p.Copy()
		chain.SetEntry(g.chain, g.proposals, id, p)
		chain.SetValue(g.chain, &g.order, append(g.order[:len(g.order):len(g.order)], id))

		g.chain.Emit(chain.NewLog(g.address, EventProposalCreated, id, proposer, common.Address{}, &ProposalCreatedEvent{
			Targets:     p.Targets,
			Values:      abiutil.ToBig(p.Values),
			Calldatas:   p.Calldatas,
			Description: description,
			VoteStart:   p.Snapshot,
			VoteEnd:     p.Deadline,
		}))
		log.Info("Proposal created", "id", id, "proposer", proposer, "calls", len(targets), "snapshot", p.Snapshot, "deadline", p.Deadline)
		return nil
	})
	if err != nil {
		return common.Hash{}, err
	}
	return id, nil
}

func (g *Governor) proposerWeight(proposer common.Address, clock uint64) (*big.Int, error) {
	if clock == 0 {
		return new(big.Int), nil
	}
	return g.token.WeightAt(proposer, clock-1)
}

// State computes the state of proposal id. Both window ends are inclusive:
// the proposal is Pending while clock <= snapshot and Active while
// snapshot < clock <= deadline.
func (g *Governor) State(id common.Hash) (ProposalState, error) {
	p, ok := g.proposals[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownProposal, id.Hex())
	}
	if p.Executed {
		return StateExecuted, nil
	}
	if p.Canceled {
		return StateCanceled, nil
	}
	now := g.token.Clock()
	if now <= p.Snapshot {
		return StatePending, nil
	}
	if now <= p.Deadline {
		return StateActive, nil
	}
	succeeded, err := g.succeeded(p)
	if err != nil {
		return 0, err
	}
	if !succeeded {
		return StateDefeated, nil
	}
	if p.OperationID == (common.Hash{}) {
		if g.gracePeriod > 0 && now-p.Deadline > g.gracePeriod {
			return StateExpired, nil
		}
		return StateSucceeded, nil
	}
	switch g.timelock.GetOperationState(p.OperationID) {
	case timelock.OperationExecuted:
		return StateExecuted, nil
	case timelock.OperationPending, timelock.OperationReady:
		return StateQueued, nil
	default:
		// Cancelled directly at the timelock.
		return StateCanceled, nil
	}
}

// Queue schedules the actions of a succeeded proposal on the timelock with
// its minimum delay.
func (g *Governor) Queue(caller common.Address, targets []common.Address, values []*uint256.Int, calldatas [][]byte, descriptionHash common.Hash) (common.Hash, error) {
	values = normalizeValues(values)
	id := HashProposal(targets, values, calldatas, descriptionHash)
	err := g.chain.Atomic(func() error {
		state, err := g.State(id)
		if err != nil {
			return err
		}
		if state != StateSucceeded {
			return fmt.Errorf("%w: %s is %s", ErrNotSucceeded, id.Hex(), state)
		}
		tl := g.timelock
		salt := g.timelockSalt(descriptionHash)
		delay := tl.GetMinDelay()
		opID, err := tl.ScheduleBatch(g.address, targets, values, calldatas, common.Hash{}, salt, delay)
		if err != nil {
			return fmt.Errorf("failed to schedule proposal %s: %w", id.Hex(), err)
		}
		p := g.proposals[id]
		chain.SetValue(g.chain, &p.OperationID, opID)
		chain.SetValue(g.chain, &p.ETA, tl.GetTimestamp(opID))

		g.chain.Emit(chain.NewLog(g.address, EventProposalQueued, id, caller, common.Address{}, &ProposalQueuedEvent{OperationID: opID, ETA: p.ETA}))
		log.Info("Proposal queued", "id", id, "operation", opID, "eta", p.ETA)
		return nil
	})
	if err != nil {
		return common.Hash{}, err
	}
	return id, nil
}

// Execute runs the actions of a queued proposal through the timelock. If the
// timelock rejects the batch, the proposal stays queued.
func (g *Governor) Execute(caller common.Address, targets []common.Address, values []*uint256.Int, calldatas [][]byte, descriptionHash common.Hash) (common.Hash, error) {
	values = normalizeValues(values)
	id := HashProposal(targets, values, calldatas, descriptionHash)
	err := g.chain.Atomic(func() error {
		state, err := g.State(id)
		if err != nil {
			return err
		}
		switch state {
		case StateQueued:
		case StateExecuted:
			return fmt.Errorf("%w: %s", ErrProposalAlreadyExecuted, id.Hex())
		default:
			return fmt.Errorf("%w: %s is %s", ErrNotQueued, id.Hex(), state)
		}
		p := g.proposals[id]
		chain.SetValue(g.chain, &p.Executed, true)
		if err := g.timelock.ExecuteBatch(g.address, targets, values, calldatas, common.Hash{}, g.timelockSalt(descriptionHash)); err != nil {
			return err
		}
		g.chain.Emit(chain.NewLog(g.address, EventProposalExecuted, id, caller, common.Address{}, nil))
		log.Info("Proposal executed", "id", id, "executor", caller)
		return nil
	})
	if err != nil {
		return common.Hash{}, err
	}
	return id, nil
}

// Cancel cancels a proposal before its vote has ended. Only the proposer and
// governance may cancel.
func (g *Governor) Cancel(caller common.Address, id common.Hash) error {
	return g.chain.Atomic(func() error {
		state, err := g.State(id)
		if err != nil {
			return err
		}
		p := g.proposals[id]
		if caller != p.Proposer && caller != g.Executor() {
			return fmt.Errorf("%w: %s", ErrOnlyProposer, caller.Hex())
		}
		if state != StatePending && state != StateActive {
			return fmt.Errorf("%w: %s is %s", ErrNotCancelable, id.Hex(), state)
		}
		chain.SetValue(g.chain, &p.Canceled, true)
		g.chain.Emit(chain.NewLog(g.address, EventProposalCanceled, id, caller, common.Address{}, nil))
		log.Info("Proposal canceled", "id", id, "by", caller)
		return nil
	})
}

// timelockSalt is bytes20(governor) XOR descriptionHash, so that two
// governors sharing a timelock never collide on operation ids.
func (g *Governor) timelockSalt(descriptionHash common.Hash) common.Hash {
	salt := descriptionHash
	for i := 0; i < common.AddressLength; i++ {
		salt[i] ^= g.address[i]
	}
	return salt
}

// Proposal returns a copy of proposal id.
func (g *Governor) Proposal(id common.Hash) (*Proposal, bool) {
	p, ok := g.proposals[id]
	if !ok {
		return nil, false
	}
	return p.Copy(), true
}

// Proposals returns copies of all proposals in creation order.
func (g *Governor) Proposals() []*Proposal {
	out := make([]*Proposal, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.proposals[id].Copy())
	}
	return out
}

// ProposalSnapshot returns the timepoint weights are read at, or zero for an
// unknown proposal.
func (g *Governor) ProposalSnapshot(id common.Hash) uint64 {
	if p, ok := g.proposals[id]; ok {
		return p.Snapshot
	}
	return 0
}

// ProposalDeadline returns the last timepoint of the vote, or zero for an
// unknown proposal.
func (g *Governor) ProposalDeadline(id common.Hash) uint64 {
	if p, ok := g.proposals[id]; ok {
		return p.Deadline
	}
	return 0
}

// ProposalProposer returns the proposer of id.
func (g *Governor) ProposalProposer(id common.Hash) common.Address {
	if p, ok := g.proposals[id]; ok {
		return p.Proposer
	}
	return common.Address{}
}

// ProposalEta returns when a queued proposal can be executed, or zero.
func (g *Governor) ProposalEta(id common.Hash) uint64 {
	if p, ok := g.proposals[id]; ok {
		return p.ETA
	}
	return 0
}

func normalizeValues(values []*uint256.Int) []*uint256.Int {
	out := make([]*uint256.Int, len(values))
	for i, v := range values {
		if v == nil {
			v = new(uint256.Int)
		}
		out[i] = v
	}
	return out
}
