package access

import (
	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/core"
)

// GrantAdminRoleMessage re-points a role's admin edge. When role and
// adminRole coincide it bootstraps a self-administered root role, granting it
// to the sender.
type GrantAdminRoleMessage struct {
	Role      core.Role
	AdminRole core.Role
}

func (GrantAdminRoleMessage) Op() string { return "grant_admin_role" }

type GrantRoleMessage struct {
	Role    core.Role
	Account ton.AccountID
}

func (GrantRoleMessage) Op() string { return "grant_role" }

type RevokeRoleMessage struct {
	Role    core.Role
	Account ton.AccountID
}

func (RevokeRoleMessage) Op() string { return "revoke_role" }

type RenounceRoleMessage struct {
	Role    core.Role
	Account ton.AccountID
}

func (RenounceRoleMessage) Op() string { return "renounce_role" }

// ChangeOwner2Step proposes a new owner; the transfer completes only when the
// candidate accepts.
type ChangeOwner2Step struct {
	QueryID      uint64
	PendingOwner ton.AccountID
}

func (ChangeOwner2Step) Op() string { return "change_owner_2step" }

type AcceptOwnership2Step struct {
	QueryID uint64
}

func (AcceptOwnership2Step) Op() string { return "accept_ownership_2step" }
