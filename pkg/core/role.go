package core

import (
	"crypto/sha256"

	"github.com/tonkeeper/tongo/ton"
)

// Role identifies an access-control role as the sha256 hash of its name.
type Role = ton.Bits256

// RoleID computes the role identifier for a role name.
func RoleID(name string) Role {
	var r Role
	h := sha256.Sum256([]byte(name))
	copy(r[:], h[:])
	return r
}

// DefaultAdminRole administers every role that has no explicit admin edge.
// It is self-administered.
var DefaultAdminRole = RoleID("ADMIN_ROLE")
