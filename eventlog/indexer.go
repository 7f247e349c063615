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
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"

	"github.com/sailakshmidurga/dao-governance/chain"
)

const logChanSize = 128

// Indexer copies every log the chain commits into a Store. It runs in its
// own goroutine and never touches chain state.
type Indexer struct {
	chain *chain.Chain
	store *Store

	logCh chan *chain.Log
	sub   event.Subscription
	quit  chan struct{}
	wg    sync.WaitGroup

	mu     sync.Mutex
	failed uint64
}

// NewIndexer creates an indexer feeding store from c.
func NewIndexer(c *chain.Chain, store *Store) *Indexer {
	return &Indexer{
		chain: c,
		store: store,
		logCh: make(chan *chain.Log, logChanSize),
		quit:  make(chan struct{}),
	}
}

// Start subscribes to the chain and begins indexing.
func (ix *Indexer) Start() {
	ix.sub = ix.chain.SubscribeLogs(ix.logCh)
	ix.wg.Add(1)
	go ix.loop()
	log.Debug("Event indexer started", "stored", ix.store.Len())
}

// Stop unsubscribes and waits until every log received so far is stored.
func (ix *Indexer) Stop() {
	ix.sub.Unsubscribe()
	close(ix.quit)
	ix.wg.Wait()
	log.Debug("Event indexer stopped", "stored", ix.store.Len(), "failed", ix.Failed())
}

// Failed returns how many logs could not be stored.
func (ix *Indexer) Failed() uint64 {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.failed
}

func (ix *Indexer) loop() {
	defer ix.wg.Done()
	for {
		select {
		case l := <-ix.logCh:
			ix.persist(l)
		case err := <-ix.sub.Err():
			if err != nil {
				log.Warn("Event subscription failed", "err", err)
			}
			ix.drain()
			return
		case <-ix.quit:
			ix.drain()
			return
		}
	}
}

func (ix *Indexer) drain() {
	for {
		select {
		case l := <-ix.logCh:
			ix.persist(l)
		default:
			return
		}
	}
}

func (ix *Indexer) persist(l *chain.Log) {
	if err := ix.store.Append(l); err != nil {
		ix.mu.Lock()
		ix.failed++
		ix.mu.Unlock()
		log.Error("Failed to store log", "event", l.Name, "index", l.Index, "err", err)
	}
}
