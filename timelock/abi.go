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
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/sailakshmidurga/dao-governance/internal/abiutil"
)

var timelockABI = abiutil.MustNewABI(
	abiutil.MethodSpec{Name: "schedule", Inputs: []string{"address", "uint256", "bytes", "bytes32", "bytes32", "uint256"}},
	abiutil.MethodSpec{Name: "scheduleBatch", Inputs: []string{"address[]", "uint256[]", "bytes[]", "bytes32", "bytes32", "uint256"}},
	abiutil.MethodSpec{Name: "execute", Inputs: []string{"address", "uint256", "bytes", "bytes32", "bytes32"}, Mutability: abiutil.Payable},
	abiutil.MethodSpec{Name: "executeBatch", Inputs: []string{"address[]", "uint256[]", "bytes[]", "bytes32", "bytes32"}, Mutability: abiutil.Payable},
	abiutil.MethodSpec{Name: "cancel", Inputs: []string{"bytes32"}},
	abiutil.MethodSpec{Name: "updateDelay", Inputs: []string{"uint256"}},
	abiutil.MethodSpec{Name: "grantRole", Inputs: []string{"bytes32", "address"}},
	abiutil.MethodSpec{Name: "revokeRole", Inputs: []string{"bytes32", "address"}},
	abiutil.MethodSpec{Name: "renounceRole", Inputs: []string{"bytes32", "address"}},
	abiutil.MethodSpec{Name: "getMinDelay", Outputs: []string{"uint256"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "hasRole", Inputs: []string{"bytes32", "address"}, Outputs: []string{"bool"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "getOperationState", Inputs: []string{"bytes32"}, Outputs: []string{"uint8"}, Mutability: abiutil.View},
	abiutil.MethodSpec{Name: "getTimestamp", Inputs: []string{"bytes32"}, Outputs: []string{"uint256"}, Mutability: abiutil.View},
)

// ABI returns the timelock's method table, for building calldata.
func ABI() abi.ABI { return timelockABI }

// Call implements chain.Contract.
func (t *Controller) Call(caller common.Address, value *uint256.Int, input []byte) ([]byte, error) {
	return t.dispatcher.Dispatch(caller, value, input)
}

type batchArgs struct {
	targets     []common.Address
	values      []*uint256.Int
	payloads    [][]byte
	predecessor common.Hash
	salt        common.Hash
}

func decodeBatch(args []interface{}) (*batchArgs, error) {
	values, err := abiutil.FromBig(args[1].([]*big.Int))
	if err != nil {
		return nil, err
	}
	return &batchArgs{
		targets:     args[0].([]common.Address),
		values:      values,
		payloads:    args[2].([][]byte),
		predecessor: common.Hash(args[3].([32]byte)),
		salt:        common.Hash(args[4].([32]byte)),
	}, nil
}

func decodeSingle(args []interface{}) (*batchArgs, error) {
	value, overflow := uint256.FromBig(args[1].(*big.Int))
	if overflow {
		return nil, abiutil.ErrValueOverflow
	}
	return &batchArgs{
		targets:     []common.Address{args[0].(common.Address)},
		values:      []*uint256.Int{value},
		payloads:    [][]byte{args[2].([]byte)},
		predecessor: common.Hash(args[3].([32]byte)),
		salt:        common.Hash(args[4].([32]byte)),
	}, nil
}

func (t *Controller) newDispatcher() *abiutil.Dispatcher {
	d := abiutil.NewDispatcher(timelockABI)
	d.OnReceive(func(common.Address, *uint256.Int) error { return nil })

	d.Handle("schedule", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		a, err := decodeSingle(args)
		if err != nil {
			return nil, err
		}
		delay, err := abiutil.Uint64(args[5].(*big.Int))
		if err != nil {
			return nil, err
		}
		_, err = t.Schedule(caller, a.targets[0], a.values[0], a.payloads[0], a.predecessor, a.salt, delay)
		return nil, err
	})
	d.Handle("scheduleBatch", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		a, err := decodeBatch(args)
		if err != nil {
			return nil, err
		}
		delay, err := abiutil.Uint64(args[5].(*big.Int))
		if err != nil {
			return nil, err
		}
		_, err = t.ScheduleBatch(caller, a.targets, a.values, a.payloads, a.predecessor, a.salt, delay)
		return nil, err
	})
	d.Handle("execute", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		a, err := decodeSingle(args)
		if err != nil {
			return nil, err
		}
		return nil, t.Execute(caller, a.targets[0], a.values[0], a.payloads[0], a.predecessor, a.salt)
	})
	d.Handle("executeBatch", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		a, err := decodeBatch(args)
		if err != nil {
			return nil, err
		}
		return nil, t.ExecuteBatch(caller, a.targets, a.values, a.payloads, a.predecessor, a.salt)
	})
	d.Handle("cancel", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return nil, t.Cancel(caller, common.Hash(args[0].([32]byte)))
	})
	d.Handle("updateDelay", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		delay, err := abiutil.Uint64(args[0].(*big.Int))
		if err != nil {
			return nil, err
		}
		return nil, t.UpdateDelay(caller, delay)
	})
	d.Handle("grantRole", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return nil, t.GrantRole(caller, common.Hash(args[0].([32]byte)), args[1].(common.Address))
	})
	d.Handle("revokeRole", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return nil, t.RevokeRole(caller, common.Hash(args[0].([32]byte)), args[1].(common.Address))
	})
	d.Handle("renounceRole", func(caller common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return nil, t.RenounceRole(caller, common.Hash(args[0].([32]byte)), args[1].(common.Address))
	})
	d.Handle("getMinDelay", func(common.Address, *uint256.Int, []interface{}) ([]interface{}, error) {
		return []interface{}{new(big.Int).SetUint64(t.GetMinDelay())}, nil
	})
	d.Handle("hasRole", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return []interface{}{t.HasRole(common.Hash(args[0].([32]byte)), args[1].(common.Address))}, nil
	})
	d.Handle("getOperationState", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return []interface{}{uint8(t.GetOperationState(common.Hash(args[0].([32]byte))))}, nil
	})
	d.Handle("getTimestamp", func(_ common.Address, _ *uint256.Int, args []interface{}) ([]interface{}, error) {
		return []interface{}{new(big.Int).SetUint64(t.GetTimestamp(common.Hash(args[0].([32]byte))))}, nil
	})
	return d
}
