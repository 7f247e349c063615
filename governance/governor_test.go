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
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/sailakshmidurga/dao-governance/accesscontrol"
	"github.com/sailakshmidurga/dao-governance/chain"
	"github.com/sailakshmidurga/dao-governance/timelock"
	"github.com/sailakshmidurga/dao-governance/treasury"
	"github.com/sailakshmidurga/dao-governance/votes"
)

const (
	testMinDelay     = 60
	testVotingPeriod = 10
)

var (
	deployer = common.HexToAddress("0xde1")
	voter1   = common.HexToAddress("0x1001")
	voter2   = common.HexToAddress("0x1002")
	voter3   = common.HexToAddress("0x1003")
	stranger = common.HexToAddress("0x5742")
)

type testEnv struct {
	chain    *chain.Chain
	token    *votes.Token
	timelock *timelock.Controller
	governor *Governor
	treasury *treasury.Treasury
}

// newTestEnv deploys the system the way the deploy script does: deployer
// holds 10000 tokens, voter1 and voter2 hold 1000 each and self-delegate,
// voter3 holds 300 and self-delegates.
func newTestEnv(t *testing.T, config *Config) *testEnv {
	t.Helper()
	c, err := chain.New(nil)
	require.NoError(t, err)

	token, err := chain.Deploy(c, deployer, func(addr common.Address) (*votes.Token, error) {
		return votes.New(c, addr, nil), nil
	})
	require.NoError(t, err)
	require.NoError(t, token.Mint(deployer, big.NewInt(10000)))

	tl, err := chain.Deploy(c, deployer, func(addr common.Address) (*timelock.Controller, error) {
		return timelock.New(c, addr, testMinDelay, nil, nil, deployer), nil
	})
	require.NoError(t, err)

	if config == nil {
		config = DefaultConfig()
		config.VotingPeriod = testVotingPeriod
	}
	gov, err := chain.Deploy(c, deployer, func(addr common.Address) (*Governor, error) {
		return New(c, addr, token, tl, config)
	})
	require.NoError(t, err)

	require.NoError(t, tl.GrantRole(deployer, timelock.ProposerRole, gov.Address()))
	require.NoError(t, tl.GrantRole(deployer, timelock.CancellerRole, gov.Address()))
	require.NoError(t, tl.GrantRole(deployer, timelock.ExecutorRole, timelock.OpenExecutor))
	require.NoError(t, tl.RevokeRole(deployer, accesscontrol.DefaultAdminRole, deployer))

	tr, err := chain.Deploy(c, deployer, func(addr common.Address) (*treasury.Treasury, error) {
		return treasury.New(c, addr, tl.Address()), nil
	})
	require.NoError(t, err)
	c.Fund(tr.Address(), uint256.NewInt(5000))

	require.NoError(t, token.Transfer(deployer, voter1, big.NewInt(1000)))
	require.NoError(t, token.Transfer(deployer, voter2, big.NewInt(1000)))
	require.NoError(t, token.Transfer(deployer, voter3, big.NewInt(300)))
	for _, v := range []common.Address{voter1, voter2, voter3} {
		require.NoError(t, token.Delegate(v, v))
	}
	c.Mine(12)

	return &testEnv{chain: c, token: token, timelock: tl, governor: gov, treasury: tr}
}

type action struct {
	targets     []common.Address
	values      []*uint256.Int
	calldatas   [][]byte
	description string
}

func (a *action) descHash() common.Hash { return DescriptionHash(a.description) }

func (env *testEnv) withdrawal(t *testing.T, to common.Address, amount int64, description string) *action {
	t.Helper()
	data, err := treasury.ABI().Pack("withdrawFunds", to, big.NewInt(amount))
	require.NoError(t, err)
	return &action{
		targets:     []common.Address{env.treasury.Address()},
		values:      []*uint256.Int{uint256.NewInt(0)},
		calldatas:   [][]byte{data},
		description: description,
	}
}

func (env *testEnv) propose(t *testing.T, proposer common.Address, a *action) common.Hash {
	t.Helper()
	id, err := env.governor.Propose(proposer, a.targets, a.values, a.calldatas, a.description)
	require.NoError(t, err)
	return id
}

func (env *testEnv) state(t *testing.T, id common.Hash) ProposalState {
	t.Helper()
	state, err := env.governor.State(id)
	require.NoError(t, err)
	return state
}

// passVote moves id into its voting window, votes For with voter1 and voter2
// and ends the vote.
func (env *testEnv) passVote(t *testing.T, id common.Hash) {
	t.Helper()
	env.chain.Mine(env.governor.VotingDelay() + 1)
	_, err := env.governor.CastVote(voter1, id, VoteFor)
	require.NoError(t, err)
	_, err = env.governor.CastVote(voter2, id, VoteFor)
	require.NoError(t, err)
	env.chain.Mine(env.governor.VotingPeriod() + 1)
}

func TestFullLifecycle(t *testing.T) {
	env := newTestEnv(t, DefaultConfig())
	gov := env.governor
	a := env.withdrawal(t, voter1, 1000, "Withdraw 1 ETH from treasury")

	id := env.propose(t, voter1, a)
	require.Equal(t, StatePending, env.state(t, id))

	env.passVote(t, id)
	require.Equal(t, StateSucceeded, env.state(t, id))
	require.Equal(t, uint8(4), uint8(env.state(t, id)))

	_, err := gov.Queue(stranger, a.targets, a.values, a.calldatas, a.descHash())
	require.NoError(t, err)
	require.Equal(t, StateQueued, env.state(t, id))
	require.Equal(t, env.chain.Time()+testMinDelay, gov.ProposalEta(id))

	_, err = gov.Execute(stranger, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, timelock.ErrNotReady)
	require.Equal(t, StateQueued, env.state(t, id))

	env.chain.IncreaseTime(testMinDelay + 1)
	before := env.chain.BalanceOf(voter1).Uint64()
	_, err = gov.Execute(stranger, a.targets, a.values, a.calldatas, a.descHash())
	require.NoError(t, err)
	require.Equal(t, StateExecuted, env.state(t, id))
	require.Equal(t, before+1000, env.chain.BalanceOf(voter1).Uint64())
	require.Equal(t, uint64(4000), env.treasury.Balance().Uint64())

	_, err = gov.Execute(stranger, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, ErrProposalAlreadyExecuted)
}

func TestStateWindows(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.propose(t, voter1, env.withdrawal(t, voter1, 1, "windows"))
	p, _ := env.governor.Proposal(id)
	require.Equal(t, env.chain.Number()+1, p.Snapshot)
	require.Equal(t, p.Snapshot+testVotingPeriod, p.Deadline)

	env.chain.Mine(1) // at snapshot
	require.Equal(t, StatePending, env.state(t, id))
	env.chain.Mine(1)
	require.Equal(t, StateActive, env.state(t, id))
	env.chain.Mine(p.Deadline - env.chain.Number()) // at deadline
	require.Equal(t, StateActive, env.state(t, id))
	env.chain.Mine(1)
	require.Equal(t, StateDefeated, env.state(t, id))
}

func TestVotingRules(t *testing.T) {
	env := newTestEnv(t, nil)
	gov := env.governor
	id := env.propose(t, voter1, env.withdrawal(t, voter1, 1, "rules"))

	_, err := gov.CastVote(voter1, id, VoteFor)
	require.ErrorIs(t, err, ErrVotingClosed, "vote before snapshot")

	env.chain.Mine(2)
	_, err = gov.CastVote(voter1, id, VoteType(3))
	require.ErrorIs(t, err, ErrInvalidVoteType)

	weight, err := gov.CastVoteWithReason(voter1, id, VoteFor, "pay the bills")
	require.NoError(t, err)
	require.Equal(t, int64(1000), weight.Int64())

	_, err = gov.CastVote(voter1, id, VoteAgainst)
	require.ErrorIs(t, err, ErrAlreadyVoted)
	require.ErrorIs(t, err, chain.ErrDuplicate)

	_, err = gov.CastVote(voter2, id, VoteAgainst)
	require.NoError(t, err)
	_, err = gov.CastVote(voter3, id, VoteAbstain)
	require.NoError(t, err)

	against, forVotes, abstain := gov.ProposalVotes(id)
	require.Equal(t, int64(1000), against.Int64())
	require.Equal(t, int64(1000), forVotes.Int64())
	require.Equal(t, int64(300), abstain.Int64())

	receipt, ok := gov.Receipt(id, voter1)
	require.True(t, ok)
	require.Equal(t, VoteFor, receipt.Support)
	require.Equal(t, "pay the bills", receipt.Reason)
	require.True(t, gov.HasVoted(id, voter3))
	require.False(t, gov.HasVoted(id, stranger))

	env.chain.Mine(testVotingPeriod)
	_, err = gov.CastVote(stranger, id, VoteFor)
	require.ErrorIs(t, err, ErrVotingClosed, "vote after deadline")

	// For == Against is not a success.
	require.Equal(t, StateDefeated, env.state(t, id))
}

func TestWeightIsReadAtSnapshot(t *testing.T) {
	env := newTestEnv(t, nil)
	gov := env.governor
	id := env.propose(t, voter1, env.withdrawal(t, voter1, 1, "snapshot"))
	env.chain.Mine(2)

	// Weight moved after the snapshot does not count for the new holder and
	// is not lost for the old one.
	require.NoError(t, env.token.Transfer(voter1, voter3, big.NewInt(1000)))
	env.chain.Mine(1)

	w1, err := gov.CastVote(voter1, id, VoteFor)
	require.NoError(t, err)
	require.Equal(t, int64(1000), w1.Int64())
	w3, err := gov.CastVote(voter3, id, VoteFor)
	require.NoError(t, err)
	require.Equal(t, int64(300), w3.Int64())
}

func TestQuorum(t *testing.T) {
	t.Run("NotReached", func(t *testing.T) {
		env := newTestEnv(t, nil)
		id := env.propose(t, voter3, env.withdrawal(t, voter3, 1, "small"))
		env.chain.Mine(2)
		_, err := env.governor.CastVote(voter3, id, VoteFor)
		require.NoError(t, err)
		env.chain.Mine(testVotingPeriod)

		q, err := env.governor.Quorum(env.governor.ProposalSnapshot(id))
		require.NoError(t, err)
		require.Equal(t, int64(400), q.Int64()) // 4% of 10000
		require.Equal(t, StateDefeated, env.state(t, id))
	})
	t.Run("AbstainCounts", func(t *testing.T) {
		env := newTestEnv(t, nil)
		id := env.propose(t, voter3, env.withdrawal(t, voter3, 1, "abstain"))
		env.chain.Mine(2)
		_, err := env.governor.CastVote(voter3, id, VoteFor)
		require.NoError(t, err)
		_, err = env.governor.CastVote(voter1, id, VoteAbstain)
		require.NoError(t, err)
		env.chain.Mine(testVotingPeriod)
		require.Equal(t, StateSucceeded, env.state(t, id))
	})
}

func TestProposeValidation(t *testing.T) {
	config := DefaultConfig()
	config.VotingPeriod = testVotingPeriod
	config.ProposalThreshold = big.NewInt(500)
	env := newTestEnv(t, config)
	gov := env.governor
	a := env.withdrawal(t, voter1, 1, "validation")

	_, err := gov.Propose(voter3, a.targets, a.values, a.calldatas, a.description)
	require.ErrorIs(t, err, ErrInsufficientProposerWeight)
	require.ErrorIs(t, err, chain.ErrUnauthorized)

	_, err = gov.Propose(voter1, nil, nil, nil, "empty")
	require.ErrorIs(t, err, ErrMalformedProposal)
	_, err = gov.Propose(voter1, a.targets, nil, a.calldatas, "mismatch")
	require.ErrorIs(t, err, chain.ErrMalformedInput)

	id := env.propose(t, voter1, a)
	require.Equal(t, HashProposal(a.targets, a.values, a.calldatas, a.descHash()), id)

	_, err = gov.Propose(voter2, a.targets, a.values, a.calldatas, a.description)
	require.ErrorIs(t, err, ErrDuplicateProposal)
	require.Len(t, gov.Proposals(), 1)

	_, err = gov.State(common.HexToHash("0xbad"))
	require.ErrorIs(t, err, ErrUnknownProposal)
}

func TestQueueAndExecuteRequireState(t *testing.T) {
	env := newTestEnv(t, nil)
	gov := env.governor
	a := env.withdrawal(t, voter1, 1, "order")
	id := env.propose(t, voter1, a)

	_, err := gov.Queue(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, ErrNotSucceeded)
	_, err = gov.Execute(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, ErrNotQueued)

	env.passVote(t, id)
	_, err = gov.Execute(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, ErrNotQueued)

	_, err = gov.Queue(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.NoError(t, err)
	_, err = gov.Queue(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, ErrNotSucceeded)
}

func TestCancel(t *testing.T) {
	env := newTestEnv(t, nil)
	gov := env.governor
	id := env.propose(t, voter1, env.withdrawal(t, voter1, 1, "cancel me"))

	require.ErrorIs(t, gov.Cancel(stranger, id), ErrOnlyProposer)
	require.NoError(t, gov.Cancel(voter1, id))
	require.Equal(t, StateCanceled, env.state(t, id))
	require.ErrorIs(t, gov.Cancel(voter1, id), ErrNotCancelable)

	env.chain.Mine(2)
	_, err := gov.CastVote(voter2, id, VoteFor)
	require.ErrorIs(t, err, ErrVotingClosed)

	a := env.withdrawal(t, voter1, 1, "too late")
	id = env.propose(t, voter1, a)
	env.passVote(t, id)
	require.ErrorIs(t, gov.Cancel(voter1, id), ErrNotCancelable)
}

func TestTimelockCancelShowsCanceled(t *testing.T) {
	env := newTestEnv(t, nil)
	gov := env.governor
	a := env.withdrawal(t, voter1, 1, "vetoed")
	id := env.propose(t, voter1, a)
	env.passVote(t, id)
	_, err := gov.Queue(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.NoError(t, err)

	p, _ := gov.Proposal(id)
	require.NoError(t, env.timelock.Cancel(gov.Address(), p.OperationID))
	require.Equal(t, StateCanceled, env.state(t, id))

	env.chain.IncreaseTime(testMinDelay)
	_, err = gov.Execute(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, ErrNotQueued)
}

func TestFailedExecutionIsRetryable(t *testing.T) {
	env := newTestEnv(t, nil)
	gov := env.governor
	a := env.withdrawal(t, voter2, 6000, "more than we have")
	id := env.propose(t, voter1, a)
	env.passVote(t, id)
	_, err := gov.Queue(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.NoError(t, err)
	env.chain.IncreaseTime(testMinDelay)

	_, err = gov.Execute(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, treasury.ErrInsufficientFunds)
	require.Equal(t, StateQueued, env.state(t, id))
	p, _ := gov.Proposal(id)
	require.False(t, p.Executed)

	env.chain.Fund(env.treasury.Address(), uint256.NewInt(1000))
	_, err = gov.Execute(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.NoError(t, err)
	require.Equal(t, StateExecuted, env.state(t, id))
}

func TestGracePeriodExpiry(t *testing.T) {
	config := DefaultConfig()
	config.VotingPeriod = testVotingPeriod
	config.GracePeriod = 5
	env := newTestEnv(t, config)
	a := env.withdrawal(t, voter1, 1, "stale")
	id := env.propose(t, voter1, a)
	env.passVote(t, id)
	require.Equal(t, StateSucceeded, env.state(t, id))

	env.chain.Mine(5)
	require.Equal(t, StateExpired, env.state(t, id))
	_, err := env.governor.Queue(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.ErrorIs(t, err, ErrNotSucceeded)
}

func TestGovernanceSettings(t *testing.T) {
	env := newTestEnv(t, nil)
	gov := env.governor
	require.ErrorIs(t, gov.SetVotingDelay(voter1, 5), ErrOnlyGovernance)
	require.ErrorIs(t, gov.UpdateQuorumNumerator(deployer, 10), chain.ErrUnauthorized)

	data, err := ABI().Pack("updateQuorumNumerator", big.NewInt(50))
	require.NoError(t, err)
	a := &action{
		targets:     []common.Address{gov.Address()},
		values:      []*uint256.Int{nil},
		calldatas:   [][]byte{data},
		description: "raise quorum",
	}
	id := env.propose(t, voter1, a)
	snapshot := gov.ProposalSnapshot(id)
	env.passVote(t, id)
	_, err = gov.Queue(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.NoError(t, err)
	env.chain.IncreaseTime(testMinDelay)
	_, err = gov.Execute(voter1, a.targets, a.values, a.calldatas, a.descHash())
	require.NoError(t, err)

	require.Equal(t, uint64(50), gov.QuorumNumerator())
	require.Equal(t, uint64(4), gov.QuorumNumeratorAt(snapshot))
	require.Equal(t, StateExecuted, env.state(t, id), "past proposals keep their quorum")

	require.ErrorIs(t, gov.SetVotingPeriod(env.timelock.Address(), 0), ErrInvalidVotingPeriod)
	require.ErrorIs(t, gov.UpdateQuorumNumerator(env.timelock.Address(), 101), ErrInvalidQuorumFraction)
	require.NoError(t, gov.SetVotingDelay(env.timelock.Address(), 3))
	require.Equal(t, uint64(3), gov.VotingDelay())
}

// farClock reports a fixed clock close to the end of the uint64 range.
type farClock struct {
	WeightSource
	now uint64
}

func (f *farClock) Clock() uint64 { return f.now }

func TestVotingWindowBounds(t *testing.T) {
	env := newTestEnv(t, nil)
	gov := env.governor
	executor := env.timelock.Address()

	require.ErrorIs(t, gov.SetVotingDelay(executor, MaxVotingDelay+1), ErrInvalidVotingDelay)
	require.ErrorIs(t, gov.SetVotingDelay(executor, math.MaxUint64-1), chain.ErrMalformedInput)
	require.ErrorIs(t, gov.SetVotingPeriod(executor, MaxVotingPeriod+1), ErrInvalidVotingPeriod)
	require.Equal(t, uint64(1), gov.VotingDelay())
	require.Equal(t, uint64(testVotingPeriod), gov.VotingPeriod())

	cfg := DefaultConfig()
	cfg.VotingDelay = math.MaxUint64 - 1
	_, err := New(env.chain, common.HexToAddress("0xbad"), env.token, env.timelock, cfg)
	require.ErrorIs(t, err, ErrInvalidVotingDelay)
	cfg = DefaultConfig()
	cfg.GracePeriod = math.MaxUint64
	_, err = New(env.chain, common.HexToAddress("0xbad"), env.token, env.timelock, cfg)
	require.ErrorIs(t, err, ErrInvalidGracePeriod)

	// The largest delay still puts the snapshot after the proposal.
	require.NoError(t, gov.SetVotingDelay(executor, MaxVotingDelay))
	a := env.withdrawal(t, voter1, 1, "slow proposal")
	clock := env.token.Clock()
	id, err := gov.Propose(voter1, a.targets, a.values, a.calldatas, a.description)
	require.NoError(t, err)
	require.Equal(t, clock+MaxVotingDelay, gov.ProposalSnapshot(id))
	require.Equal(t, clock+MaxVotingDelay+testVotingPeriod, gov.ProposalDeadline(id))
	require.Equal(t, StatePending, env.state(t, id))

	// A clock near the end of its range cannot fit the voting window.
	far := &farClock{WeightSource: env.token, now: math.MaxUint64 - 2}
	late, err := chain.Deploy(env.chain, deployer, func(addr common.Address) (*Governor, error) {
		return New(env.chain, addr, far, env.timelock, DefaultConfig())
	})
	require.NoError(t, err)
	a = env.withdrawal(t, voter1, 1, "late proposal")
	_, err = late.Propose(voter1, a.targets, a.values, a.calldatas, a.description)
	require.ErrorIs(t, err, ErrProposalWindowOverflow)
	require.ErrorIs(t, err, chain.ErrMalformedInput)
	require.Empty(t, late.Proposals())
}

func TestProposeThroughCalldata(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.withdrawal(t, voter1, 1, "by calldata")
	input, err := ABI().Pack("propose", a.targets, abiValues(a.values), a.calldatas, a.description)
	require.NoError(t, err)
	out, err := env.chain.Call(voter1, env.governor.Address(), nil, input)
	require.NoError(t, err)
	res, err := ABI().Unpack("propose", out)
	require.NoError(t, err)
	id := common.Hash(res[0].([32]byte))
	require.Equal(t, HashProposal(a.targets, a.values, a.calldatas, a.descHash()), id)

	input, _ = ABI().Pack("state", [32]byte(id))
	out, err = env.chain.Call(stranger, env.governor.Address(), nil, input)
	require.NoError(t, err)
	res, err = ABI().Unpack("state", out)
	require.NoError(t, err)
	require.Equal(t, uint8(StatePending), res[0].(uint8))
}

func TestEventsCarryIDAndActor(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.withdrawal(t, voter1, 1, "events")
	id := env.propose(t, voter1, a)
	env.passVote(t, id)

	seen := make(map[string]common.Address)
	for _, l := range env.chain.Logs() {
		if l.Address == env.governor.Address() && l.ID == id {
			seen[l.Name] = l.Actor
		}
	}
	require.Equal(t, voter1, seen[EventProposalCreated])
	require.Contains(t, seen, EventVoteCast)

	for _, l := range env.chain.Logs() {
		if l.Name == EventProposalCreated {
			var ev ProposalCreatedEvent
			require.NoError(t, l.DecodeData(&ev))
			require.Equal(t, a.description, ev.Description)
			require.Equal(t, a.targets, ev.Targets)
		}
	}
}

func TestTimelockSaltIsPerGovernor(t *testing.T) {
	env := newTestEnv(t, nil)
	desc := DescriptionHash("x")
	salt := env.governor.timelockSalt(desc)
	addr := env.governor.Address()
	for i := 0; i < common.AddressLength; i++ {
		if salt[i] != desc[i]^addr[i] {
			t.Fatalf("salt byte %d = %x, want %x", i, salt[i], desc[i]^addr[i])
		}
	}
	for i := common.AddressLength; i < common.HashLength; i++ {
		if salt[i] != desc[i] {
			t.Fatalf("salt byte %d = %x, want %x", i, salt[i], desc[i])
		}
	}
}

func abiValues(values []*uint256.Int) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = v.ToBig()
	}
	return out
}

func TestProposalStateString(t *testing.T) {
	tests := []struct {
		state ProposalState
		want  string
	}{
		{StatePending, "Pending"},
		{StateSucceeded, "Succeeded"},
		{StateExecuted, "Executed"},
		{ProposalState(9), "ProposalState(9)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
	if _, err := ParseVoteType("maybe"); !errors.Is(err, ErrInvalidVoteType) {
		t.Errorf("expected ErrInvalidVoteType, got %v", err)
	}
}
