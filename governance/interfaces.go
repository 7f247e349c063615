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
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/timelock"
	"github.com/sailakshmidurga/dao-governance/votes"
)

// WeightSource provides checkpointed voting weight
type WeightSource interface {
	// Clock returns the current checkpoint key
	Clock() uint64

	// ClockMode describes what the clock measures
	ClockMode() votes.ClockMode

	// WeightAt returns the weight delegated to account at a past timepoint
	WeightAt(account common.Address, timepoint uint64) (*big.Int, error)

	// TotalWeightAt returns the total weight at a past timepoint
	TotalWeightAt(timepoint uint64) (*big.Int, error)

	// CurrentDelegate returns who account delegates to
	CurrentDelegate(account common.Address) common.Address
}

// Timelock holds queued proposals until their delay has passed
type Timelock interface {
	// Address returns the timelock address, which is also the governance executor
	Address() common.Address

	// GetMinDelay returns the minimum delay in seconds
	GetMinDelay() uint64

	// HashOperationBatch returns the id of a batch operation
	HashOperationBatch(targets []common.Address, values []*uint256.Int, payloads [][]byte, predecessor, salt common.Hash) common.Hash

	// ScheduleBatch schedules a batch operation
	ScheduleBatch(caller common.Address, targets []common.Address, values []*uint256.Int, payloads [][]byte, predecessor, salt common.Hash, delay uint64) (common.Hash, error)

	// ExecuteBatch executes a ready batch operation
	ExecuteBatch(caller common.Address, targets []common.Address, values []*uint256.Int, payloads [][]byte, predecessor, salt common.Hash) error

	// GetOperationState returns the state of an operation
	GetOperationState(id common.Hash) timelock.OperationState

	// GetTimestamp returns when an operation becomes ready
	GetTimestamp(id common.Hash) uint64
}
