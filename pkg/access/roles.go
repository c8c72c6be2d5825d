package access

import (
	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/core"
)

// RoleTable is the role-admin graph: a closed set of recognized roles, the
// members of each role, and an admin edge per role pointing at the role
// permitted to grant and revoke it. Roles without an explicit edge are
// administered by core.DefaultAdminRole.
//
// RoleTable is a plain data structure; authorization gating lives in the
// contracts embedding it.
type RoleTable struct {
	known   map[core.Role]struct{}
	members map[core.Role]map[ton.AccountID]struct{}
	admins  map[core.Role]core.Role
}

func NewRoleTable(knownRoles ...core.Role) *RoleTable {
	t := &RoleTable{
		known:   map[core.Role]struct{}{},
		members: map[core.Role]map[ton.AccountID]struct{}{},
		admins:  map[core.Role]core.Role{},
	}
	for _, role := range knownRoles {
		t.known[role] = struct{}{}
	}
	return t
}

// Known reports whether role belongs to this deployment's closed role set.
func (t *RoleTable) Known(role core.Role) bool {
	_, ok := t.known[role]
	return ok
}

func (t *RoleTable) HasRole(role core.Role, account ton.AccountID) bool {
	_, ok := t.members[role][account]
	return ok
}

// AdminRole resolves the admin edge of a role.
func (t *RoleTable) AdminRole(role core.Role) core.Role {
	if admin, ok := t.admins[role]; ok {
		return admin
	}
	return core.DefaultAdminRole
}

func (t *RoleTable) SetAdminRole(role, admin core.Role) {
	t.admins[role] = admin
}

// Grant adds account to role. Granting an already held role is a no-op.
func (t *RoleTable) Grant(role core.Role, account ton.AccountID) {
	members, ok := t.members[role]
	if !ok {
		members = map[ton.AccountID]struct{}{}
		t.members[role] = members
	}
	members[account] = struct{}{}
}

// Revoke removes account from role. Revoking a role not held is a no-op.
func (t *RoleTable) Revoke(role core.Role, account ton.AccountID) {
	delete(t.members[role], account)
}

// Authorize checks that caller may grant or revoke role: the role must be
// recognized and the caller must hold the role's admin role. An unconfigured
// admin role resolves to the default admin role, never to an implicit allow.
func (t *RoleTable) Authorize(caller ton.AccountID, role core.Role) error {
	if !t.Known(role) {
		return core.ErrInvalidRole
	}
	if !t.HasRole(t.AdminRole(role), caller) {
		return core.ErrUnauthorized
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *RoleTable) Clone() *RoleTable {
	cp := &RoleTable{
		known:   make(map[core.Role]struct{}, len(t.known)),
		members: make(map[core.Role]map[ton.AccountID]struct{}, len(t.members)),
		admins:  make(map[core.Role]core.Role, len(t.admins)),
	}
	for role := range t.known {
		cp.known[role] = struct{}{}
	}
	for role, members := range t.members {
		ms := make(map[ton.AccountID]struct{}, len(members))
		for account := range members {
			ms[account] = struct{}{}
		}
		cp.members[role] = ms
	}
	for role, admin := range t.admins {
		cp.admins[role] = admin
	}
	return cp
}
