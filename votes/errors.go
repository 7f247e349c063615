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
	"fmt"

	"github.com/sailakshmidurga/dao-governance/chain"
)

// Checkpoint errors
var (
	ErrUnorderedCheckpoint = fmt.Errorf("%w: checkpoint key is older than the latest checkpoint", chain.ErrMalformedInput)
	ErrFutureLookup        = fmt.Errorf("%w: lookup of a timepoint that is not yet final", chain.ErrMalformedInput)
)

// Token errors
var (
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient token balance", chain.ErrInvalidState)
	ErrInvalidReceiver     = fmt.Errorf("%w: invalid receiver", chain.ErrMalformedInput)
	ErrInvalidClockMode    = fmt.Errorf("%w: unknown clock mode", chain.ErrMalformedInput)
)

// Delegation by signature errors
var (
	ErrSignatureExpired = fmt.Errorf("%w: signature expired", chain.ErrUnauthorized)
	ErrInvalidNonce     = fmt.Errorf("%w: invalid nonce", chain.ErrDuplicate)
)
