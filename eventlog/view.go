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

package eventlog

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"

	"github.com/sailakshmidurga/dao-governance/accesscontrol"
	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/governance"
	"github.com/sailakshmidurga/dao-governance/timelock"
)

// ProposalView is a proposal as seen through its logs.
type ProposalView struct {
	ID          common.Hash
	Governor    common.Address
	Proposer    common.Address
	Description string
	Calls       int
	Snapshot    uint64
	Deadline    uint64
	ForVotes    *big.Int
	Against     *big.Int
	Abstain     *big.Int
	Voters      map[common.Address]governance.VoteType
	OperationID common.Hash
	ETA         uint64
	Queued      bool
	Executed    bool
	Canceled    bool
}

// Stage names the last lifecycle step the logs show.
func (p *ProposalView) Stage() string {
	switch {
	case p.Executed:
		return "Executed"
	case p.Canceled:
		return "Canceled"
	case p.Queued:
		return "Queued"
	case len(p.Voters) > 0:
		return "Voting"
	default:
		return "Created"
	}
}

// OperationView is a timelock operation as seen through its logs.
type OperationView struct {
	ID          common.Hash
	Timelock    common.Address
	Calls       int
	Predecessor common.Hash
	ReadyAt     uint64
	Executed    bool
	Canceled    bool
}

// State returns the operation state at timestamp now.
func (op *OperationView) State(now uint64) timelock.OperationState {
	switch {
	case op.Executed:
		return timelock.OperationExecuted
	case op.Canceled:
		return timelock.OperationCanceled
	case now >= op.ReadyAt:
		return timelock.OperationReady
	default:
		return timelock.OperationPending
	}
}

// entryKey scopes an id to the contract that logged it.
type entryKey struct {
	contract common.Address
	id       common.Hash
}

// View is governance state rebuilt purely from logs.
type View struct {
	proposals     map[entryKey]*ProposalView
	proposalOrder []entryKey
	operations    map[entryKey]*OperationView
	roles         map[entryKey]mapset.Set[common.Address]
	minDelays     map[common.Address]uint64
	applied       uint64
}

// NewView creates an empty view.
func NewView() *View {
	return &View{
		proposals:  make(map[entryKey]*ProposalView),
		operations: make(map[entryKey]*OperationView),
		roles:      make(map[entryKey]mapset.Set[common.Address]),
		minDelays:  make(map[common.Address]uint64),
	}
}

// Replay builds a view from logs in commit order.
func Replay(logs []*chain.Log) (*View, error) {
	v := NewView()
	for _, l := range logs {
		if err := v.Apply(l); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Apply folds one log into the view. Logs of unknown events are skipped.
func (v *View) Apply(l *chain.Log) error {
	if err := v.apply(l); err != nil {
		return fmt.Errorf("failed to apply %s log %d: %w", l.Name, l.Index, err)
	}
	v.applied++
	return nil
}

func (v *View) apply(l *chain.Log) error {
	switch l.Name {
	case governance.EventProposalCreated:
		var ev governance.ProposalCreatedEvent
		if err := l.DecodeData(&ev); err != nil {
			return err
		}
		key := entryKey{l.Address, l.ID}
		if _, ok := v.proposals[key]; !ok {
			v.proposalOrder = append(v.proposalOrder, key)
		}
		v.proposals[key] = &ProposalView{
			ID:          l.ID,
			Governor:    l.Address,
			Proposer:    l.Actor,
			Description: ev.Description,
			Calls:       len(ev.Targets),
			Snapshot:    ev.VoteStart,
			Deadline:    ev.VoteEnd,
			ForVotes:    new(big.Int),
			Against:     new(big.Int),
			Abstain:     new(big.Int),
			Voters:      make(map[common.Address]governance.VoteType),
		}

	case governance.EventVoteCast:
		p, err := v.proposal(l.Address, l.ID)
		if err != nil {
			return err
		}
		var ev governance.VoteCastEvent
		if err := l.DecodeData(&ev); err != nil {
			return err
		}
		switch governance.VoteType(ev.Support) {
		case governance.VoteAgainst:
			p.Against.Add(p.Against, ev.Weight)
		case governance.VoteFor:
			p.ForVotes.Add(p.ForVotes, ev.Weight)
		case governance.VoteAbstain:
			p.Abstain.Add(p.Abstain, ev.Weight)
		default:
			return fmt.Errorf("unknown support %d", ev.Support)
		}
		p.Voters[l.Actor] = governance.VoteType(ev.Support)

	case governance.EventProposalQueued:
		p, err := v.proposal(l.Address, l.ID)
		if err != nil {
			return err
		}
		var ev governance.ProposalQueuedEvent
		if err := l.DecodeData(&ev); err != nil {
			return err
		}
		p.Queued, p.OperationID, p.ETA = true, ev.OperationID, ev.ETA

	case governance.EventProposalExecuted:
		p, err := v.proposal(l.Address, l.ID)
		if err != nil {
			return err
		}
		p.Executed = true

	case governance.EventProposalCanceled:
		p, err := v.proposal(l.Address, l.ID)
		if err != nil {
			return err
		}
		p.Canceled = true

	case timelock.EventCallScheduled:
		var ev timelock.CallScheduledEvent
		if err := l.DecodeData(&ev); err != nil {
			return err
		}
		key := entryKey{l.Address, l.ID}
		op, ok := v.operations[key]
		if !ok {
			op = &OperationView{ID: l.ID, Timelock: l.Address, Predecessor: ev.Predecessor, ReadyAt: l.Time + ev.Delay}
			v.operations[key] = op
		}
		op.Calls++

	case timelock.EventCallExecuted:
		op, err := v.operation(l.Address, l.ID)
		if err != nil {
			return err
		}
		op.Executed = true

	case timelock.EventCancelled:
		op, err := v.operation(l.Address, l.ID)
		if err != nil {
			return err
		}
		op.Canceled = true

	case timelock.EventMinDelayChange:
		var ev timelock.MinDelayChangeEvent
		if err := l.DecodeData(&ev); err != nil {
			return err
		}
		v.minDelays[l.Address] = ev.NewDuration

	case accesscontrol.EventRoleGranted:
		key := entryKey{l.Address, l.ID}
		members, ok := v.roles[key]
		if !ok {
			members = mapset.NewThreadUnsafeSet[common.Address]()
			v.roles[key] = members
		}
		members.Add(l.Account)

	case accesscontrol.EventRoleRevoked:
		if members, ok := v.roles[entryKey{l.Address, l.ID}]; ok {
			members.Remove(l.Account)
		}
	}
	return nil
}

func (v *View) proposal(governor common.Address, id common.Hash) (*ProposalView, error) {
	p, ok := v.proposals[entryKey{governor, id}]
	if !ok {
		return nil, fmt.Errorf("proposal %s not created by %s", id.Hex(), governor.Hex())
	}
	return p, nil
}

func (v *View) operation(timelockAddr common.Address, id common.Hash) (*OperationView, error) {
	op, ok := v.operations[entryKey{timelockAddr, id}]
	if !ok {
		return nil, fmt.Errorf("operation %s not scheduled on %s", id.Hex(), timelockAddr.Hex())
	}
	return op, nil
}

// Applied returns the number of logs folded in.
func (v *View) Applied() uint64 { return v.applied }

// Proposal returns the view of proposal id created by governor.
func (v *View) Proposal(governor common.Address, id common.Hash) (*ProposalView, bool) {
	p, ok := v.proposals[entryKey{governor, id}]
	return p, ok
}

// Proposals returns every proposal in creation order.
func (v *View) Proposals() []*ProposalView {
	out := make([]*ProposalView, 0, len(v.proposalOrder))
	for _, key := range v.proposalOrder {
		out = append(out, v.proposals[key])
	}
	return out
}

// Operation returns the view of operation id scheduled on timelockAddr.
func (v *View) Operation(timelockAddr common.Address, id common.Hash) (*OperationView, bool) {
	op, ok := v.operations[entryKey{timelockAddr, id}]
	return op, ok
}

// Operations returns every operation ordered by ready time, then id, then
// timelock address.
func (v *View) Operations() []*OperationView {
	out := make([]*OperationView, 0, len(v.operations))
	for _, op := range v.operations {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReadyAt != out[j].ReadyAt {
			return out[i].ReadyAt < out[j].ReadyAt
		}
		if out[i].ID != out[j].ID {
			return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
		}
		return bytes.Compare(out[i].Timelock[:], out[j].Timelock[:]) < 0
	})
	return out
}

// Members returns the holders of role at contract, in address order.
func (v *View) Members(contract common.Address, role common.Hash) []common.Address {
	members, ok := v.roles[entryKey{contract, role}]
	if !ok {
		return nil
	}
	out := members.ToSlice()
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}

// HasRole reports whether the logs leave account holding role at contract.
func (v *View) HasRole(contract common.Address, role common.Hash, account common.Address) bool {
	members, ok := v.roles[entryKey{contract, role}]
	return ok && members.Contains(account)
}

// MinDelay returns the last minimum delay logged by a timelock.
func (v *View) MinDelay(timelockAddr common.Address) (uint64, bool) {
	d, ok := v.minDelays[timelockAddr]
	return d, ok
}
