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

// Package eventlog persists committed chain logs and rebuilds governance state
// from them without access to the contracts.
package eventlog

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/leveldb"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/sailakshmidurga/dao-governance/chain"
)

var (
	// Database key prefixes
	logPrefix  = []byte("l")       // logPrefix + seq (uint64 big endian) -> RLP(log)
	headLogKey = []byte("LastLog") // number of stored logs
)

// Store 事件日志存储
type Store struct {
	db    ethdb.KeyValueStore
	mu    sync.RWMutex
	count uint64
}

// NewStore wraps a key-value database, resuming after any logs it already
// holds.
func NewStore(db ethdb.KeyValueStore) (*Store, error) {
	s := &Store{db: db}
	has, err := db.Has(headLogKey)
	if err != nil {
		return nil, err
	}
	if has {
		enc, err := db.Get(headLogKey)
		if err != nil {
			return nil, err
		}
		if len(enc) != 8 {
			return nil, fmt.Errorf("corrupt log head: %x", enc)
		}
		s.count = binary.BigEndian.Uint64(enc)
	}
	return s, nil
}

// OpenStore opens a leveldb backed store under datadir.
func OpenStore(datadir string, cache, handles int) (*Store, error) {
	db, err := leveldb.New(filepath.Join(datadir, "events"), cache, handles, "daogov/events/", false)
	if err != nil {
		return nil, fmt.Errorf("failed to open event database: %w", err)
	}
	s, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func logKey(seq uint64) []byte {
	key := make([]byte, len(logPrefix)+8)
	copy(key, logPrefix)
	binary.BigEndian.PutUint64(key[len(logPrefix):], seq)
	return key
}

// Append stores l after the last stored log.
func (s *Store) Append(l *chain.Log) error {
	enc, err := rlp.EncodeToBytes(l)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	head := make([]byte, 8)
	binary.BigEndian.PutUint64(head, s.count+1)

	batch := s.db.NewBatch()
	if err := batch.Put(logKey(s.count), enc); err != nil {
		return err
	}
	if err := batch.Put(headLogKey, head); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	s.count++
	return nil
}

// Len returns the number of stored logs.
func (s *Store) Len() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// Logs returns every stored log in append order.
func (s *Store) Logs() ([]*chain.Log, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it := s.db.NewIterator(logPrefix, nil)
	defer it.Release()

	logs := make([]*chain.Log, 0, s.count)
	for it.Next() {
		if len(it.Key()) != len(logPrefix)+8 {
			continue
		}
		l := new(chain.Log)
		if err := rlp.DecodeBytes(it.Value(), l); err != nil {
			return nil, fmt.Errorf("failed to decode log %x: %w", it.Key(), err)
		}
		logs = append(logs, l)
	}
	return logs, it.Error()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
