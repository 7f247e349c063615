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

package votes

import (
	"math"
	"math/big"
	"sort"
)

// Checkpoint is a value that took effect at Key.
type Checkpoint struct {
	Key   uint64
	Value *big.Int
}

// Trace is an append-only history of values ordered by key. Pushing a key
// equal to the last one overwrites it; keys never go backwards, so every
// lookup of a past key is stable.
type Trace struct {
	checkpoints []Checkpoint
}

// Push records value at key. The returned closure undoes the push and is
// meant for the chain journal.
func (t *Trace) Push(key uint64, value *big.Int) (func(), error) {
	n := len(t.checkpoints)
	if n > 0 {
		last := t.checkpoints[n-1]
		if last.Key > key {
			return nil, ErrUnorderedCheckpoint
		}
		if last.Key == key {
			prev := last.Value
			t.checkpoints[n-1].Value = new(big.Int).Set(value)
			return func() { t.checkpoints[n-1].Value = prev }, nil
		}
	}
	t.checkpoints = append(t.checkpoints, Checkpoint{Key: key, Value: new(big.Int).Set(value)})
	return func() { t.checkpoints = t.checkpoints[:n] }, nil
}

// Len returns the number of checkpoints.
func (t *Trace) Len() int {
	return len(t.checkpoints)
}

// At returns a copy of the checkpoint at position i.
func (t *Trace) At(i int) Checkpoint {
	cp := t.checkpoints[i]
	return Checkpoint{Key: cp.Key, Value: new(big.Int).Set(cp.Value)}
}

// Latest returns the most recent value, or zero for an empty trace.
func (t *Trace) Latest() *big.Int {
	if len(t.checkpoints) == 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(t.checkpoints[len(t.checkpoints)-1].Value)
}

// UpperLookup returns the value of the last checkpoint with key <= key, or
// zero if there is none.
func (t *Trace) UpperLookup(key uint64) *big.Int {
	return t.lookup(0, len(t.checkpoints), key)
}

// UpperLookupRecent is UpperLookup tuned for keys near the end of the
// history: it first probes sqrt(n) entries back from the tip.
func (t *Trace) UpperLookupRecent(key uint64) *big.Int {
	n := len(t.checkpoints)
	low, high := 0, n
	if n > 5 {
		mid := n - int(math.Sqrt(float64(n)))
		if key < t.checkpoints[mid].Key {
			high = mid
		} else {
			low = mid + 1
		}
	}
	return t.lookup(low, high, key)
}

// lookup searches [low, high) for the first checkpoint with a key above
// `key` and returns the value just before it.
func (t *Trace) lookup(low, high int, key uint64) *big.Int {
	i := low + sort.Search(high-low, func(i int) bool {
		return t.checkpoints[low+i].Key > key
	})
	if i == 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(t.checkpoints[i-1].Value)
}
