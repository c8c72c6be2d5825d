package access

import (
	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

var accessControlCodeID = contract.CodeID("ledgerkit.access.accesscontrol.v1")

// AccessControl is generalized multi-role authorization over a closed role
// set fixed at deployment. Grants and revocations are gated by the role-admin
// graph; renouncing is strictly self-service.
type AccessControl struct {
	addr     ton.AccountID
	deployer ton.AccountID
	roles    *RoleTable
}

func NewAccessControl(deployer ton.AccountID, knownRoles ...core.Role) *AccessControl {
	addr := contract.AddressOf(contract.StateInit{
		CodeID: accessControlCodeID,
		Data:   contract.AccountBytes(deployer),
	})
	return &AccessControl{
		addr:     addr,
		deployer: deployer,
		roles:    NewRoleTable(knownRoles...),
	}
}

func (a *AccessControl) Address() ton.AccountID { return a.addr }

func (a *AccessControl) HasRole(role core.Role, account ton.AccountID) bool {
	return a.roles.HasRole(role, account)
}

func (a *AccessControl) AdminRole(role core.Role) core.Role {
	return a.roles.AdminRole(role)
}

func (a *AccessControl) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	if _, ok := env.Body.(core.Deploy); ok {
		return nil, nil
	}
	if handled, err := HandleRoleMessage(a.roles, a.deployer, env.From, env.Body); handled {
		return nil, err
	}
	return nil, core.ErrUnknownMessage
}

// HandleRoleMessage applies one of the four role-management messages to a
// role table. Contracts embedding a RoleTable (the AccessControl contract,
// the role-gated counter) share this dispatch. It reports whether the body
// was a role message at all.
func HandleRoleMessage(roles *RoleTable, deployer, from ton.AccountID, body core.Message) (bool, error) {
	switch msg := body.(type) {
	case GrantAdminRoleMessage:
		return true, grantAdminRole(roles, deployer, from, msg)
	case GrantRoleMessage:
		if err := roles.Authorize(from, msg.Role); err != nil {
			return true, err
		}
		roles.Grant(msg.Role, msg.Account)
		return true, nil
	case RevokeRoleMessage:
		if err := roles.Authorize(from, msg.Role); err != nil {
			return true, err
		}
		roles.Revoke(msg.Role, msg.Account)
		return true, nil
	case RenounceRoleMessage:
		if !roles.Known(msg.Role) {
			return true, core.ErrInvalidRole
		}
		if from != msg.Account {
			return true, core.ErrSelfOnly
		}
		roles.Revoke(msg.Role, msg.Account)
		return true, nil
	}
	return false, nil
}

// grantAdminRole re-points the admin edge of a role. Only the deployer or a
// default-admin holder may do this. Bootstrapping a self-administered role
// also grants it to the sender, which is how the root role comes to exist.
func grantAdminRole(roles *RoleTable, deployer, from ton.AccountID, msg GrantAdminRoleMessage) error {
	if !roles.Known(msg.Role) || !roles.Known(msg.AdminRole) {
		return core.ErrInvalidRole
	}
	if from != deployer && !roles.HasRole(core.DefaultAdminRole, from) {
		return core.ErrUnauthorized
	}
	roles.SetAdminRole(msg.Role, msg.AdminRole)
	if msg.Role == msg.AdminRole {
		roles.Grant(msg.Role, from)
	}
	return nil
}

func (a *AccessControl) Snapshot() contract.Contract {
	cp := *a
	cp.roles = a.roles.Clone()
	return &cp
}

func (a *AccessControl) Restore(snapshot contract.Contract) {
	*a = *snapshot.(*AccessControl)
}
