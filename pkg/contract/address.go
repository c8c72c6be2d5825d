package contract

import (
	"crypto/sha256"

	"github.com/tonkeeper/tongo/ton"
)

// CodeID identifies a contract code template.
func CodeID(name string) ton.Bits256 {
	var id ton.Bits256
	h := sha256.Sum256([]byte(name))
	copy(id[:], h[:])
	return id
}

// StateInit is the immutable instantiation data of a contract. Two contracts
// with the same StateInit are the same account.
type StateInit struct {
	CodeID ton.Bits256
	Data   []byte
}

// AccountBytes serializes an account id for use in init data.
func AccountBytes(a ton.AccountID) []byte {
	buf := make([]byte, 0, 36)
	buf = append(buf,
		byte(a.Workchain>>24), byte(a.Workchain>>16), byte(a.Workchain>>8), byte(a.Workchain))
	return append(buf, a.Address[:]...)
}

// AddressOf derives the account address of a StateInit. The derivation is a
// pure function of code template and init data; neither side of a protocol
// ever needs a registry lookup to validate a peer's identity.
func AddressOf(init StateInit) ton.AccountID {
	h := sha256.New()
	h.Write(init.CodeID[:])
	h.Write(init.Data)
	var addr ton.Bits256
	copy(addr[:], h.Sum(nil))
	return ton.AccountID{Workchain: 0, Address: addr}
}
