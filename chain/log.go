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

package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rlp"
)

// Log is an event emitted by a contract. Every log names the object it is
// about (proposal, operation or role id) and the account that caused it, so
// an off-chain indexer can rebuild state without querying contracts.
type Log struct {
	Address     common.Address // 发出事件的合约地址
	Name        string         // 事件名
	ID          common.Hash    // 提案 / 操作 / 角色 ID
	Actor       common.Address // 触发者
	Account     common.Address // 相关账户（可为空）
	Data        []byte         // RLP 编码的事件数据
	BlockNumber uint64
	Time        uint64
	Index       uint64
}

// NewLog assembles a log with an RLP encoded payload. A nil payload leaves
// Data empty.
func NewLog(address common.Address, name string, id common.Hash, actor, account common.Address, payload interface{}) *Log {
	l := &Log{
		Address: address,
		Name:    name,
		ID:      id,
		Actor:   actor,
		Account: account,
	}
	if payload != nil {
		data, err := rlp.EncodeToBytes(payload)
		if err != nil {
			log.Error("Failed to encode event payload", "event", name, "err", err)
		}
		l.Data = data
	}
	return l
}

// DecodeData decodes the RLP payload of the log into v.
func (l *Log) DecodeData(v interface{}) error {
	return rlp.DecodeBytes(l.Data, v)
}
