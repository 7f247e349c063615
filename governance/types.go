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
	"github.com/holiman/uint256"
)

// ProposalState is the computed lifecycle state of a proposal. Only the
// executed and canceled flags are stored; everything else follows from the
// clock, the tally and the timelock.
type ProposalState uint8

const (
	StatePending   ProposalState = 0x00 // 等待投票开始
	StateActive    ProposalState = 0x01 // 投票中
	StateCanceled  ProposalState = 0x02 // 已取消
	StateDefeated  ProposalState = 0x03 // 未通过
	StateSucceeded ProposalState = 0x04 // 已通过
	StateQueued    ProposalState = 0x05 // 已排入时间锁
	StateExpired   ProposalState = 0x06 // 已过期
	StateExecuted  ProposalState = 0x07 // 已执行
)

func (s ProposalState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateActive:
		return "Active"
	case StateCanceled:
		return "Canceled"
	case StateDefeated:
		return "Defeated"
	case StateSucceeded:
		return "Succeeded"
	case StateQueued:
		return "Queued"
	case StateExpired:
		return "Expired"
	case StateExecuted:
		return "Executed"
	default:
		return fmt.Sprintf("ProposalState(%d)", uint8(s))
	}
}

// VoteType is the support value of a ballot.
type VoteType uint8

const (
	VoteAgainst VoteType = 0x00 // 反对
	VoteFor     VoteType = 0x01 // 赞成
	VoteAbstain VoteType = 0x02 // 弃权
)

func (v VoteType) String() string {
	switch v {
	case VoteAgainst:
		return "Against"
	case VoteFor:
		return "For"
	case VoteAbstain:
		return "Abstain"
	default:
		return fmt.Sprintf("VoteType(%d)", uint8(v))
	}
}

// ParseVoteType accepts "for", "against" or "abstain".
func ParseVoteType(s string) (VoteType, error) {
	switch s {
	case "against", "Against", "0":
		return VoteAgainst, nil
	case "for", "For", "1":
		return VoteFor, nil
	case "abstain", "Abstain", "2":
		return VoteAbstain, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVoteType, s)
}

// Proposal is a governance proposal: a batch of calls plus its vote.
type Proposal struct {
	ID              common.Hash      // 提案 ID
	Proposer        common.Address   // 提案者
	Targets         []common.Address // 调用目标
	Values          []*uint256.Int   // 调用金额
	Calldatas       [][]byte         // 调用数据
	Description     string           // 描述
	DescriptionHash common.Hash      // 描述哈希
	Snapshot        uint64           // 权重快照点
	Deadline        uint64           // 投票截止点
	ForVotes        *big.Int         // 赞成票
	AgainstVotes    *big.Int         // 反对票
	AbstainVotes    *big.Int         // 弃权票
	Executed        bool             // 已执行
	Canceled        bool             // 已取消
	OperationID     common.Hash      // 时间锁操作 ID
	ETA             uint64           // 可执行时间戳
}

// Copy returns a deep copy of the proposal.
func (p *Proposal) Copy() *Proposal {
	cpy := *p
	cpy.Targets = append([]common.Address(nil), p.Targets...)
	cpy.Values = make([]*uint256.Int, len(p.Values))
	for i, v := range p.Values {
		cpy.Values[i] = v.Clone()
	}
	cpy.Calldatas = make([][]byte, len(p.Calldatas))
	for i, d := range p.Calldatas {
		cpy.Calldatas[i] = common.CopyBytes(d)
	}
	cpy.ForVotes = new(big.Int).Set(p.ForVotes)
	cpy.AgainstVotes = new(big.Int).Set(p.AgainstVotes)
	cpy.AbstainVotes = new(big.Int).Set(p.AbstainVotes)
	return &cpy
}

// Receipt records one account's ballot on a proposal.
type Receipt struct {
	HasVoted bool     // 是否已投票
	Support  VoteType // 投票类型
	Weight   *big.Int // 快照点权重
	Reason   string   // 投票理由
}

// Config holds governor parameters
type Config struct {
	Name              string   // 治理合约名称（EIP-712 域名）
	VotingDelay       uint64   // 提案到快照点的间隔（时钟单位）
	VotingPeriod      uint64   // 投票期长度（时钟单位）
	ProposalThreshold *big.Int // 提案门槛权重
	QuorumNumerator   uint64   // 法定人数百分比
	GracePeriod       uint64   // 通过后排队宽限期，0 表示不过期
}

// DefaultConfig returns the default governor configuration
func DefaultConfig() *Config {
	return &Config{
		Name:              "DAO Governor",
		VotingDelay:       1,     // 1 block
		VotingPeriod:      50400, // ~1 week of 12s blocks
		ProposalThreshold: new(big.Int),
		QuorumNumerator:   4,
		GracePeriod:       0,
	}
}

// QuorumDenominator is the denominator of the quorum fraction.
const QuorumDenominator = 100

// Upper bounds of the governor windows, in clock units.
const (
	MaxVotingDelay  = 1<<48 - 1
	MaxVotingPeriod = 1<<32 - 1
	MaxGracePeriod  = 1<<32 - 1
)

// Event names
const (
	EventProposalCreated        = "ProposalCreated"
	EventVoteCast               = "VoteCast"
	EventProposalQueued         = "ProposalQueued"
	EventProposalExecuted       = "ProposalExecuted"
	EventProposalCanceled       = "ProposalCanceled"
	EventVotingDelaySet         = "VotingDelaySet"
	EventVotingPeriodSet        = "VotingPeriodSet"
	EventProposalThresholdSet   = "ProposalThresholdSet"
	EventQuorumNumeratorUpdated = "QuorumNumeratorUpdated"
	EventTimelockChange         = "TimelockChange"
)

// ProposalCreatedEvent is the payload of a ProposalCreated log.
type ProposalCreatedEvent struct {
	Targets     []common.Address
	Values      []*big.Int
	Calldatas   [][]byte
	Description string
	VoteStart   uint64
	VoteEnd     uint64
}

// VoteCastEvent is the payload of a VoteCast log.
type VoteCastEvent struct {
	Support uint8
	Weight  *big.Int
	Reason  string
}

// ProposalQueuedEvent is the payload of a ProposalQueued log.
type ProposalQueuedEvent struct {
	OperationID common.Hash
	ETA         uint64
}

// SettingChangedEvent is the payload of the governor setting logs.
type SettingChangedEvent struct {
	Old *big.Int
	New *big.Int
}

// TimelockChangeEvent is the payload of a TimelockChange log.
type TimelockChangeEvent struct {
	Old common.Address
	New common.Address
}
