package counter

import (
	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/access"
	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

var roleCounterCodeID = contract.CodeID("ledgerkit.counter.roles.v1")

// Roles recognized by the role-gated counter.
var (
	IncrementRole = core.RoleID("INCREMENT_ROLE")
	DecrementRole = core.RoleID("DECREMENT_ROLE")
)

// RoleCounter gates increment and decrement behind access-control roles.
// Role management uses the same messages and gating as the AccessControl
// contract.
type RoleCounter struct {
	addr     ton.AccountID
	deployer ton.AccountID
	roles    *access.RoleTable
	current  int64
}

func NewRoleCounter(deployer ton.AccountID) *RoleCounter {
	return &RoleCounter{
		addr: contract.AddressOf(contract.StateInit{
			CodeID: roleCounterCodeID,
			Data:   contract.AccountBytes(deployer),
		}),
		deployer: deployer,
		roles:    access.NewRoleTable(core.DefaultAdminRole, IncrementRole, DecrementRole),
	}
}

func (c *RoleCounter) Address() ton.AccountID { return c.addr }

func (c *RoleCounter) Current() int64 { return c.current }

func (c *RoleCounter) HasRole(role core.Role, account ton.AccountID) bool {
	return c.roles.HasRole(role, account)
}

func (c *RoleCounter) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	switch msg := env.Body.(type) {
	case core.Deploy:
		return nil, nil
	case core.TextCommand:
		switch string(msg) {
		case IncrementCommand:
			if !c.roles.HasRole(IncrementRole, env.From) {
				return nil, core.ErrUnauthorized
			}
			c.current++
			return nil, nil
		case DecrementCommand:
			if !c.roles.HasRole(DecrementRole, env.From) {
				return nil, core.ErrUnauthorized
			}
			c.current--
			return nil, nil
		}
		return nil, core.ErrUnknownMessage
	}
	if handled, err := access.HandleRoleMessage(c.roles, c.deployer, env.From, env.Body); handled {
		return nil, err
	}
	return nil, core.ErrUnknownMessage
}

func (c *RoleCounter) Snapshot() contract.Contract {
	cp := *c
	cp.roles = c.roles.Clone()
	return &cp
}

func (c *RoleCounter) Restore(snapshot contract.Contract) {
	*c = *snapshot.(*RoleCounter)
}
