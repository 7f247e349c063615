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

// journal is the list of undo closures recorded by contracts since the last
// commit. Reverting to a length replays the closures newer than it in reverse
// order, which restores every Go-side structure touched after that point.
type journal struct {
	entries []func()
}

func newJournal() *journal {
	return &journal{entries: make([]func(), 0, 64)}
}

func (j *journal) append(undo func()) {
	j.entries = append(j.entries, undo)
}

func (j *journal) length() int {
	return len(j.entries)
}

func (j *journal) revert(n int) {
	for i := len(j.entries) - 1; i >= n; i-- {
		j.entries[i]()
		j.entries[i] = nil
	}
	j.entries = j.entries[:n]
}

func (j *journal) reset() {
	j.entries = j.entries[:0]
}

// SetEntry writes m[k] = v and journals the previous entry, so a reverted
// Atomic frame restores the map exactly.
func SetEntry[K comparable, V any](c *Chain, m map[K]V, k K, v V) {
	prev, existed := m[k]
	m[k] = v
	c.Journal(func() {
		if existed {
			m[k] = prev
		} else {
			delete(m, k)
		}
	})
}

// SetValue assigns v to *p and journals the previous value.
func SetValue[V any](c *Chain, p *V, v V) {
	prev := *p
	*p = v
	c.Journal(func() { *p = prev })
}
