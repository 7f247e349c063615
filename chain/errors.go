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
	"errors"
	"fmt"
)

// Rejection categories. Every error returned by a contract in this module
// wraps exactly one of them, so callers can classify a failure with errors.Is.
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrInvalidState   = errors.New("invalid state")
	ErrMalformedInput = errors.New("malformed input")
	ErrDuplicate      = errors.New("duplicate")
)

// Execution errors
var (
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance for transfer", ErrInvalidState)
	ErrCallDepth           = fmt.Errorf("%w: max call depth exceeded", ErrInvalidState)
	ErrContractExists      = fmt.Errorf("%w: contract already deployed at address", ErrDuplicate)
)
