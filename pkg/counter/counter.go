// Package counter holds the demonstration counter contracts: a plain
// counter anyone can bump, and a role-gated variant consuming the
// access-control role table.
package counter

import (
	"encoding/binary"

	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

var counterCodeID = contract.CodeID("ledgerkit.counter.v1")

const (
	IncrementCommand = "increment"
	DecrementCommand = "decrement"
)

// Counter is a plain signed counter driven by text commands.
type Counter struct {
	addr    ton.AccountID
	current int64
}

// NewCounter creates a counter instance. The id distinguishes deployments;
// the same id is the same account.
func NewCounter(id uint64) *Counter {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, id)
	return &Counter{
		addr: contract.AddressOf(contract.StateInit{CodeID: counterCodeID, Data: data}),
	}
}

func (c *Counter) Address() ton.AccountID { return c.addr }

func (c *Counter) Current() int64 { return c.current }

func (c *Counter) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	switch msg := env.Body.(type) {
	case core.Deploy:
		return nil, nil
	case core.TextCommand:
		switch string(msg) {
		case IncrementCommand:
			c.current++
			return nil, nil
		case DecrementCommand:
			c.current--
			return nil, nil
		}
	}
	return nil, core.ErrUnknownMessage
}

func (c *Counter) Snapshot() contract.Contract {
	cp := *c
	return &cp
}

func (c *Counter) Restore(snapshot contract.Contract) {
	*c = *snapshot.(*Counter)
}
