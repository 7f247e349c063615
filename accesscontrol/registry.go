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

// Package accesscontrol implements a role registry: roles are 32 byte labels,
// each with a set of holders and an admin role whose holders may grant and
// revoke it.
package accesscontrol

import (
	"bytes"
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/log"

	"github.com/sailakshmidurga/dao-governance/chain"
)

// DefaultAdminRole is the admin of every role that has no other admin,
// including itself.
var DefaultAdminRole = common.Hash{}

// Event names
const (
	EventRoleGranted      = "RoleGranted"
	EventRoleRevoked      = "RoleRevoked"
	EventRoleAdminChanged = "RoleAdminChanged"
)

// Registry errors
var (
	ErrUnauthorized    = fmt.Errorf("%w: account is missing role", chain.ErrUnauthorized)
	ErrBadConfirmation = fmt.Errorf("%w: can only renounce roles for self", chain.ErrMalformedInput)
)

// RoleAdminChangedEvent is the payload of a RoleAdminChanged log.
type RoleAdminChangedEvent struct {
	Previous common.Hash
	New      common.Hash
}

// RoleID returns the label of a named role, keccak256(name).
func RoleID(name string) common.Hash {
	return crypto.Keccak256Hash([]byte(name))
}

type roleData struct {
	members mapset.Set[common.Address]
	admin   common.Hash
}

// Registry is the role table of the contract at address owner. Every log it
// emits carries that address.
type Registry struct {
	chain *chain.Chain
	owner common.Address
	roles map[common.Hash]*roleData
}

// New creates an empty registry for the contract at owner.
func New(c *chain.Chain, owner common.Address) *Registry {
	return &Registry{
		chain: c,
		owner: owner,
		roles: make(map[common.Hash]*roleData),
	}
}

// HasRole reports whether account holds role.
func (r *Registry) HasRole(role common.Hash, account common.Address) bool {
	data, ok := r.roles[role]
	return ok && data.members.Contains(account)
}

// CheckRole returns ErrUnauthorized unless account holds role.
func (r *Registry) CheckRole(role common.Hash, account common.Address) error {
	if !r.HasRole(role, account) {
		return fmt.Errorf("%w: %s lacks %s", ErrUnauthorized, account.Hex(), role.Hex())
	}
	return nil
}

// GetRoleAdmin returns the role whose holders administer role.
func (r *Registry) GetRoleAdmin(role common.Hash) common.Hash {
	if data, ok := r.roles[role]; ok {
		return data.admin
	}
	return DefaultAdminRole
}

// GetRoleMembers returns the holders of role in address order.
func (r *Registry) GetRoleMembers(role common.Hash) []common.Address {
	data, ok := r.roles[role]
	if !ok {
		return nil
	}
	members := data.members.ToSlice()
	sort.Slice(members, func(i, j int) bool {
		return bytes.Compare(members[i][:], members[j][:]) < 0
	})
	return members
}

// GrantRole gives role to account. caller must hold the role's admin role.
func (r *Registry) GrantRole(caller common.Address, role common.Hash, account common.Address) error {
	return r.chain.Atomic(func() error {
		if err := r.CheckRole(r.GetRoleAdmin(role), caller); err != nil {
			return err
		}
		r.grant(caller, role, account)
		return nil
	})
}

// RevokeRole takes role away from account. caller must hold the role's admin
// role.
func (r *Registry) RevokeRole(caller common.Address, role common.Hash, account common.Address) error {
	return r.chain.Atomic(func() error {
		if err := r.CheckRole(r.GetRoleAdmin(role), caller); err != nil {
			return err
		}
		r.revoke(caller, role, account)
		return nil
	})
}

// RenounceRole drops role from caller. confirmation must equal caller, which
// guards against renouncing on behalf of the wrong account.
func (r *Registry) RenounceRole(caller common.Address, role common.Hash, confirmation common.Address) error {
	if caller != confirmation {
		return ErrBadConfirmation
	}
	return r.chain.Atomic(func() error {
		r.revoke(caller, role, caller)
		return nil
	})
}

// SetupRole grants role without an admin check. Only for use while the
// owning contract is being constructed.
func (r *Registry) SetupRole(role common.Hash, account common.Address) {
	r.chain.Atomic(func() error {
		r.grant(r.owner, role, account)
		return nil
	})
}

// SetRoleAdmin changes the admin role of role without an admin check. Only for
// use while the owning contract is being constructed.
func (r *Registry) SetRoleAdmin(role, admin common.Hash) {
	r.chain.Atomic(func() error {
		data := r.role(role)
		previous := data.admin
		chain.SetValue(r.chain, &data.admin, admin)
		r.chain.Emit(chain.NewLog(r.owner, EventRoleAdminChanged, role, r.owner, common.Address{}, &RoleAdminChangedEvent{Previous: previous, New: admin}))
		return nil
	})
}

func (r *Registry) role(role common.Hash) *roleData {
	data, ok := r.roles[role]
	if !ok {
		data = &roleData{members: mapset.NewThreadUnsafeSet[common.Address](), admin: DefaultAdminRole}
		chain.SetEntry(r.chain, r.roles, role, data)
	}
	return data
}

func (r *Registry) grant(caller common.Address, role common.Hash, account common.Address) {
	data := r.role(role)
	if !data.members.Add(account) {
		return
	}
	r.chain.Journal(func() { data.members.Remove(account) })
	r.chain.Emit(chain.NewLog(r.owner, EventRoleGranted, role, caller, account, nil))
	log.Debug("Role granted", "contract", r.owner, "role", role, "account", account, "sender", caller)
}

func (r *Registry) revoke(caller common.Address, role common.Hash, account common.Address) {
	data, ok := r.roles[role]
	if !ok || !data.members.Contains(account) {
		return
	}
	data.members.Remove(account)
	r.chain.Journal(func() { data.members.Add(account) })
	r.chain.Emit(chain.NewLog(r.owner, EventRoleRevoked, role, caller, account, nil))
	log.Debug("Role revoked", "contract", r.owner, "role", role, "account", account, "sender", caller)
}
