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

// Package timelock implements a controller that holds scheduled call batches
// for at least a minimum delay before a permitted executor may run them.
package timelock

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/accesscontrol"
	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/internal/abiutil"
)

// Controller is a timelock deployed on a chain. Its role table is embedded:
// grant and revoke go through the usual admin checks, and the timelock holds
// the admin role itself so executed operations can reconfigure it.
type Controller struct {
	*accesscontrol.Registry

	chain      *chain.Chain
	address    common.Address
	minDelay   uint64
	operations map[common.Hash]*Operation

	dispatcher *abiutil.Dispatcher
}

// New creates a timelock at address self. The timelock and the optional admin
// get the default admin role; every proposer also becomes a canceller.
func New(c *chain.Chain, self common.Address, minDelay uint64, proposers, executors []common.Address, admin common.Address) *Controller {
	t := &Controller{
		Registry:   accesscontrol.New(c, self),
		chain:      c,
		address:    self,
		operations: make(map[common.Hash]*Operation),
	}
	c.Atomic(func() error {
		t.SetupRole(accesscontrol.DefaultAdminRole, self)
		if admin != (common.Address{}) {
			t.SetupRole(accesscontrol.DefaultAdminRole, admin)
		}
		for _, p := range proposers {
			t.SetupRole(ProposerRole, p)
			t.SetupRole(CancellerRole, p)
		}
		for _, e := range executors {
			t.SetupRole(ExecutorRole, e)
		}
		t.setMinDelay(self, minDelay)
		return nil
	})
	t.dispatcher = t.newDispatcher()
	return t
}

// Address returns the timelock's address.
func (t *Controller) Address() common.Address { return t.address }

// GetMinDelay returns the minimum delay in seconds.
func (t *Controller) GetMinDelay() uint64 { return t.minDelay }

// Proposers returns the holders of the proposer role.
func (t *Controller) Proposers() []common.Address { return t.GetRoleMembers(ProposerRole) }

// Executors returns the holders of the executor role.
func (t *Controller) Executors() []common.Address { return t.GetRoleMembers(ExecutorRole) }

// Cancellers returns the holders of the canceller role.
func (t *Controller) Cancellers() []common.Address { return t.GetRoleMembers(CancellerRole) }

// HashOperation returns the id of a single call operation.
func (t *Controller) HashOperation(target common.Address, value *uint256.Int, data []byte, predecessor, salt common.Hash) common.Hash {
	return HashOperation(target, value, data, predecessor, salt)
}

// HashOperationBatch returns the id of a batch operation.
func (t *Controller) HashOperationBatch(targets []common.Address, values []*uint256.Int, payloads [][]byte, predecessor, salt common.Hash) common.Hash {
	return HashOperationBatch(targets, values, payloads, predecessor, salt)
}

// GetOperationState returns the state of operation id at the current time.
func (t *Controller) GetOperationState(id common.Hash) OperationState {
	op, ok := t.operations[id]
	switch {
	case !ok:
		return OperationUnset
	case op.Executed:
		return OperationExecuted
	case op.Canceled:
		return OperationCanceled
	case t.chain.Time() >= op.ReadyAt:
		return OperationReady
	default:
		return OperationPending
	}
}

// GetTimestamp returns when operation id becomes ready, or zero if it was
// never scheduled.
func (t *Controller) GetTimestamp(id common.Hash) uint64 {
	if op, ok := t.operations[id]; ok {
		return op.ReadyAt
	}
	return 0
}

// IsOperation reports whether id was ever scheduled.
func (t *Controller) IsOperation(id common.Hash) bool {
	return t.GetOperationState(id) != OperationUnset
}

// IsOperationPending reports whether id is scheduled and not yet executed
// or cancelled, ready or not.
func (t *Controller) IsOperationPending(id common.Hash) bool {
	state := t.GetOperationState(id)
	return state == OperationPending || state == OperationReady
}

// IsOperationReady reports whether id can be executed now.
func (t *Controller) IsOperationReady(id common.Hash) bool {
	return t.GetOperationState(id) == OperationReady
}

// IsOperationDone reports whether id was executed.
func (t *Controller) IsOperationDone(id common.Hash) bool {
	return t.GetOperationState(id) == OperationExecuted
}

// Operation returns a copy of the scheduled operation id.
func (t *Controller) Operation(id common.Hash) (*Operation, bool) {
	op, ok := t.operations[id]
	if !ok {
		return nil, false
	}
	return op.Copy(), true
}

// Schedule schedules a single call.
func (t *Controller) Schedule(caller, target common.Address, value *uint256.Int, data []byte, predecessor, salt common.Hash, delay uint64) (common.Hash, error) {
	id := HashOperation(target, value, data, predecessor, salt)
	return id, t.schedule(caller, id, []common.Address{target}, []*uint256.Int{value}, [][]byte{data}, predecessor, salt, delay)
}

// ScheduleBatch schedules a batch of calls that will execute atomically.
func (t *Controller) ScheduleBatch(caller common.Address, targets []common.Address, values []*uint256.Int, payloads [][]byte, predecessor, salt common.Hash, delay uint64) (common.Hash, error) {
	if err := checkLengths(targets, values, payloads); err != nil {
		return common.Hash{}, err
	}
	id := HashOperationBatch(targets, values, payloads, predecessor, salt)
	return id, t.schedule(caller, id, targets, values, payloads, predecessor, salt, delay)
}

func (t *Controller) schedule(caller common.Address, id common.Hash, targets []common.Address, values []*uint256.Int, payloads [][]byte, predecessor, salt common.Hash, delay uint64) error {
	return t.chain.Atomic(func() error {
		if err := t.CheckRole(ProposerRole, caller); err != nil {
			return err
		}
		if state := t.GetOperationState(id); state != OperationUnset {
			return fmt.Errorf("%w: %s is %s", ErrAlreadyQueued, id.Hex(), state)
		}
		if delay < t.minDelay {
			return fmt.Errorf("%w: %d < %d", ErrDelayTooShort, delay, t.minDelay)
		}
		now := t.chain.Time()
		if delay > math.MaxUint64-now {
			return fmt.Errorf("%w: delay %d overflows", chain.ErrMalformedInput, delay)
		}
		op := &Operation{
			ID:          id,
			Targets:     targets,
			Values:      normalizeValues(values),
			Payloads:    payloads,
			Predecessor: predecessor,
			Salt:        salt,
			Proposer:    caller,
			ReadyAt:     now + delay,
		}
		op = op.Copy()
		chain.SetEntry(t.chain, t.operations, id, op)

		for i := range op.Targets {
			t.chain.Emit(chain.NewLog(t.address, EventCallScheduled, id, caller, op.Targets[i], &CallScheduledEvent{
				Index:       uint64(i),
				Value:       op.Values[i].ToBig(),
				Data:        op.Payloads[i],
				Predecessor: predecessor,
				Delay:       delay,
			}))
		}
		if salt != (common.Hash{}) {
			t.chain.Emit(chain.NewLog(t.address, EventCallSalt, id, caller, common.Address{}, &CallSaltEvent{Salt: salt}))
		}
		log.Info("Operation scheduled", "id", id, "calls", len(op.Targets), "readyAt", op.ReadyAt, "proposer", caller)
		return nil
	})
}

// Execute runs a ready single call operation.
func (t *Controller) Execute(caller, target common.Address, value *uint256.Int, data []byte, predecessor, salt common.Hash) error {
	id := HashOperation(target, value, data, predecessor, salt)
	return t.execute(caller, id)
}

// ExecuteBatch runs a ready batch operation. The calls run in order from the
// timelock's address; if any fails, nothing of the batch is kept and the
// operation stays ready.
func (t *Controller) ExecuteBatch(caller common.Address, targets []common.Address, values []*uint256.Int, payloads [][]byte, predecessor, salt common.Hash) error {
	if err := checkLengths(targets, values, payloads); err != nil {
		return err
	}
	id := HashOperationBatch(targets, values, payloads, predecessor, salt)
	return t.execute(caller, id)
}

func (t *Controller) execute(caller common.Address, id common.Hash) error {
	if !t.HasRole(ExecutorRole, OpenExecutor) {
		if err := t.CheckRole(ExecutorRole, caller); err != nil {
			return err
		}
	}
	return t.chain.Atomic(func() error {
		switch state := t.GetOperationState(id); state {
		case OperationReady:
		case OperationExecuted:
			return fmt.Errorf("%w: %s", ErrAlreadyExecuted, id.Hex())
		default:
			return fmt.Errorf("%w: %s is %s", ErrNotReady, id.Hex(), state)
		}
		op := t.operations[id]
		if op.Predecessor != (common.Hash{}) && !t.IsOperationDone(op.Predecessor) {
			return fmt.Errorf("%w: %s", ErrPredecessorNotExecuted, op.Predecessor.Hex())
		}
		// Marked first so a call in the batch cannot execute it again.
		chain.SetValue(t.chain, &op.Executed, true)

		for i, target := range op.Targets {
			if _, err := t.chain.Call(t.address, target, op.Values[i], op.Payloads[i]); err != nil {
				return fmt.Errorf("call %d to %s failed: %w", i, target.Hex(), err)
			}
			t.chain.Emit(chain.NewLog(t.address, EventCallExecuted, id, caller, target, &CallExecutedEvent{
				Index: uint64(i),
				Value: op.Values[i].ToBig(),
				Data:  op.Payloads[i],
			}))
		}
		log.Info("Operation executed", "id", id, "calls", len(op.Targets), "executor", caller)
		return nil
	})
}

// Cancel cancels a scheduled operation that has not been executed.
func (t *Controller) Cancel(caller common.Address, id common.Hash) error {
	return t.chain.Atomic(func() error {
		if err := t.CheckRole(CancellerRole, caller); err != nil {
			return err
		}
		if !t.IsOperationPending(id) {
			return fmt.Errorf("%w: %s is %s", ErrNotCancelable, id.Hex(), t.GetOperationState(id))
		}
		chain.SetValue(t.chain, &t.operations[id].Canceled, true)
		t.chain.Emit(chain.NewLog(t.address, EventCancelled, id, caller, common.Address{}, nil))
		log.Info("Operation cancelled", "id", id, "canceller", caller)
		return nil
	})
}

// UpdateDelay changes the minimum delay. Only the timelock itself may call
// it, i.e. through an executed operation.
func (t *Controller) UpdateDelay(caller common.Address, newDelay uint64) error {
	if caller != t.address {
		return fmt.Errorf("%w: got %s", ErrUnauthorizedCaller, caller.Hex())
	}
	return t.chain.Atomic(func() error {
		t.setMinDelay(caller, newDelay)
		return nil
	})
}

func (t *Controller) setMinDelay(caller common.Address, delay uint64) {
	old := t.minDelay
	chain.SetValue(t.chain, &t.minDelay, delay)
	t.chain.Emit(chain.NewLog(t.address, EventMinDelayChange, common.Hash{}, caller, common.Address{}, &MinDelayChangeEvent{OldDuration: old, NewDuration: delay}))
	log.Info("Timelock delay changed", "old", old, "new", delay)
}

func checkLengths(targets []common.Address, values []*uint256.Int, payloads [][]byte) error {
	if len(targets) == 0 || len(targets) != len(values) || len(targets) != len(payloads) {
		return fmt.Errorf("%w: targets %d, values %d, payloads %d", ErrInvalidOperationLength, len(targets), len(values), len(payloads))
	}
	return nil
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
