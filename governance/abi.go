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

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/internal/abiutil"
)

var governorABI = abiutil.MustNewABI(
	abiutil.MethodSpec{Name: "propose", Inputs: []string{"address[]", "uint256[]", "bytes[]", "string"}, Outputs: []string{"bytes32"}},
	abiutil.MethodSpec{Name: "castVote", Inputs: []string{"bytes32", "uint8"}, Outputs: []string{"uint256"}},
	abiutil.MethodSpec{Name: "castVoteWithReason", Inputs: []string{"bytes32", "uint8", "string"}, Outputs: []string{"uint256"}},
	abiutil.MethodSpec{Name: "queue", Inputs: []string{"address[]", "uint256[]", "bytes[]", "bytes32"}, Outputs: []string{"bytes32"}},
	abiutil.MethodSpec{Name: "execute", Inputs: []string{"address[]", "uint256[]", "bytes[]", "bytes32"}, Outputs: []string{"bytes32"}},
	abiutil.MethodSpec{Name: "cancel", Inputs: []string{"bytes32"}},
	abiutil.MethodSpec{Name: "setVotingDelay", Inputs: []string{"uint256"}},
	abiutil.MethodSpec{Name: "setVotingPeriod", Inputs: []string{"uint256"}},
	abiutil.MethodSpec{Name: "setProposalThreshold", Inputs: []string{"uint256"}},
	abiutil.MethodSpec{Name: "updateQuorumNumerator", Inputs: []string{"uint256"}},
	abiutil.MethodSpec{Name: "updateTimelock", Inputs: []string{"address"}},
	abiutil.MethodSpec{Name: "state", Inputs: []string{"bytes32"}, Outputs: []string{"uint8"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "votingDelay", Outputs: []string{"uint256"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "votingPeriod", Outputs: []string{"uint256"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "quorum", Inputs: []string{"uint256"}, Outputs: []string{"uint256"}, Mutability: abiutil.View},
)

// ABI returns the governor's method table, for building calldata.
func ABI() abi.ABI { return governorABI }

// Call implements chain.Contract.
func (g *Governor) Call(caller common.Address, value *uint256.Int, input []byte) ([]byte, error) {
	return g.dispatcher.Dispatch(caller, value, input)
}

func decodeActions(args []interface{}) ([]common.Address, []*uint256.Int, [][]byte, error) {
	values, err := abiutil.FromBig(args[1].([]*big.Int))
	if err != nil {
		return nil, nil, nil, err
	}
	return args[0].([]common.Address), values, args[2].([][]byte), nil
}

func decodeSupport(arg interface{}) (VoteType, error) {
	support := VoteType(arg.(uint8))
	if support > VoteAbstain {
		return 0, fmt.Errorf("%w: %d", ErrInvalidVoteType, support)
	}
	return support, nil
}

func (g *Governor) newDispatcher() *abiutil.Dispatcher {
	d := abiutil.NewDispatcher(governorABI)

	d.Handle("propose", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		targets, values, calldatas, err := decodeActions(args)
		if err != nil {
			return nil, err
		}
		id, err := g.Propose(caller, targets, values, calldatas, args[3].(string))
		if err != nil {
			return nil, err
		}
		return []interface{}{[32]byte(id)}, nil
	})
	d.Handle("castVote", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		support, err := decodeSupport(args[1])
		if err != nil {
			return nil, err
		}
		weight, err := g.CastVote(caller, common.Hash(args[0].([32]byte)), support)
		if err != nil {
			return nil, err
		}
		return []interface{}{weight}, nil
	})
	d.Handle("castVoteWithReason", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		support, err := decodeSupport(args[1])
		if err != nil {
			return nil, err
		}
		weight, err := g.CastVoteWithReason(caller, common.Hash(args[0].([32]byte)), support, args[2].(string))
		if err != nil {
			return nil, err
		}
		return []interface{}{weight}, nil
	})
	d.Handle("queue", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		targets, values, calldatas, err := decodeActions(args)
		if err != nil {
			return nil, err
		}
		id, err := g.Queue(caller, targets, values, calldatas, common.Hash(args[3].([32]byte)))
		if err != nil {
			return nil, err
		}
		return []interface{}{[32]byte(id)}, nil
	})
	d.Handle("execute", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		targets, values, calldatas, err := decodeActions(args)
		if err != nil {
			return nil, err
		}
		id, err := g.Execute(caller, targets, values, calldatas, common.Hash(args[3].([32]byte)))
		if err != nil {
			return nil, err
		}
		return []interface{}{[32]byte(id)}, nil
	})
	d.Handle("cancel", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return nil, g.Cancel(caller, common.Hash(args[0].([32]byte)))
	})
	d.Handle("setVotingDelay", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		delay, err := abiutil.Uint64(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		return nil, g.SetVotingDelay(caller, delay)
	})
	d.Handle("setVotingPeriod", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		period, err := abiutil.Uint64(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		return nil, g.SetVotingPeriod(caller, period)
	})
	d.Handle("setProposalThreshold", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return nil, g.SetProposalThreshold(caller, args[0].(*big.Int))
	})
	d.Handle("updateQuorumNumerator", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		numerator, err := abiutil.Uint64(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		return nil, g.UpdateQuorumNumerator(caller, numerator)
	})
	d.Handle("updateTimelock", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		addr := args[0].(common.Address)
		contract, ok := g.chain.ContractAt(addr)
		if !ok {
			return nil, fmt.Errorf("%w: no contract at %s", ErrInvalidTimelock, addr.Hex())
		}
		tl, ok := contract.(Timelock)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimelock, addr.Hex())
		}
		return nil, g.UpdateTimelock(caller, tl)
	})
	d.Handle("state", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		state, err := g.State(common.Hash(args[0].([32]byte)))
		if err != nil {
			return nil, err
		}
		return []interface{}{uint8(state)}, nil
	})
	d.Handle("votingDelay", func(common.Address, *uint256.Int, []interface{}) ([]interface{}, error) {
		return []interface{}{new(big.Int).SetUint64(g.VotingDelay())}, nil
	})
	d.Handle("votingPeriod", func(common.Address, *uint256.Int, []interface{}) ([]interface{}, error) {
		return []interface{}{new(big.Int).SetUint64(g.VotingPeriod())}, nil
	})
	d.Handle("quorum", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		timepoint, err := abiutil.Uint64(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		q, err := g.Quorum(timepoint)
		if err != nil {
			return nil, err
		}
		return []interface{}{q}, nil
	})
	return d
}
