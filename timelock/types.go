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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/accesscontrol"
	"github.com/sailakshmidurga/dao-governance/chain"
)

// Roles
var (
	ProposerRole  = accesscontrol.RoleID("PROPOSER_ROLE")
	ExecutorRole  = accesscontrol.RoleID("EXECUTOR_ROLE")
	CancellerRole = accesscontrol.RoleID("CANCELLER_ROLE")
)

// OpenExecutor holding ExecutorRole lets anyone execute ready operations.
var OpenExecutor = common.Address{}

// OperationState is the lifecycle state of a scheduled operation.
type OperationState uint8

const (
	OperationUnset OperationState = iota
	OperationPending
	OperationReady
	OperationExecuted
	OperationCanceled
)

func (s OperationState) String() string {
	switch s {
	case OperationUnset:
		return "Unset"
	case OperationPending:
		return "Pending"
	case OperationReady:
		return "Ready"
	case OperationExecuted:
		return "Executed"
	case OperationCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("OperationState(%d)", uint8(s))
	}
}

// Operation is a scheduled batch of calls.
type Operation struct {
	ID          common.Hash
	Targets     []common.Address
	Values      []*uint256.Int
	Payloads    [][]byte
	Predecessor common.Hash
	Salt        common.Hash
	Proposer    common.Address
	ReadyAt     uint64 // 可执行时间戳
	Executed    bool
	Canceled    bool
}

// Copy returns a deep copy of the operation.
func (op *Operation) Copy() *Operation {
	cpy := *op
	cpy.Targets = append([]common.Address(nil), op.Targets...)
	cpy.Values = make([]*uint256.Int, len(op.Values))
	for i, v := range op.Values {
		cpy.Values[i] = v.Clone()
	}
	cpy.Payloads = make([][]byte, len(op.Payloads))
	for i, p := range op.Payloads {
		cpy.Payloads[i] = common.CopyBytes(p)
	}
	return &cpy
}

// Event names
const (
	EventCallScheduled  = "CallScheduled"
	EventCallSalt       = "CallSalt"
	EventCallExecuted   = "CallExecuted"
	EventCancelled      = "Cancelled"
	EventMinDelayChange = "MinDelayChange"
)

// CallScheduledEvent is the payload of a CallScheduled log. One is emitted
// per call of the operation; Account is the call target.
type CallScheduledEvent struct {
	Index       uint64
	Value       *big.Int
	Data        []byte
	Predecessor common.Hash
	Delay       uint64
}

// CallSaltEvent is the payload of a CallSalt log.
type CallSaltEvent struct {
	Salt common.Hash
}

// CallExecutedEvent is the payload of a CallExecuted log. Account is the
// call target.
type CallExecutedEvent struct {
	Index uint64
	Value *big.Int
	Data  []byte
}

// MinDelayChangeEvent is the payload of a MinDelayChange log.
type MinDelayChangeEvent struct {
	OldDuration uint64
	NewDuration uint64
}

// Timelock errors
var (
	ErrUnauthorizedCaller     = fmt.Errorf("%w: caller must be the timelock itself", chain.ErrUnauthorized)
	ErrInvalidOperationLength = fmt.Errorf("%w: invalid operation length", chain.ErrMalformedInput)
	ErrDelayTooShort          = fmt.Errorf("%w: delay below minimum", chain.ErrMalformedInput)
	ErrAlreadyQueued          = fmt.Errorf("%w: operation already scheduled", chain.ErrInvalidState)
	ErrNotReady               = fmt.Errorf("%w: operation is not ready", chain.ErrInvalidState)
	ErrPredecessorNotExecuted = fmt.Errorf("%w: predecessor operation not executed", chain.ErrInvalidState)
	ErrAlreadyExecuted        = fmt.Errorf("%w: operation already executed", chain.ErrInvalidState)
	ErrNotCancelable          = fmt.Errorf("%w: operation cannot be cancelled", chain.ErrInvalidState)
)
