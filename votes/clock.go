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

import "strings"

// ClockMode selects what a checkpoint key measures.
type ClockMode uint8

const (
	ClockBlockNumber ClockMode = iota // 区块高度
	ClockTimestamp                    // 时间戳（秒）
)

// String returns the EIP-6372 clock mode description.
func (m ClockMode) String() string {
	if m == ClockTimestamp {
		return "mode=timestamp"
	}
	return "mode=blocknumber&from=default"
}

// ParseClockMode accepts "blocknumber" or "timestamp" (case-insensitive).
// An empty string selects block numbers.
func ParseClockMode(s string) (ClockMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "blocknumber", "block":
		return ClockBlockNumber, nil
	case "timestamp", "time":
		return ClockTimestamp, nil
	}
	return 0, ErrInvalidClockMode
}
