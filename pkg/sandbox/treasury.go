package sandbox

import (
	"math/big"

	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

var treasuryCodeID = contract.CodeID("ledgerkit.sandbox.treasury.v1")

// Treasury is a pre-funded externally controlled account used by tests and
// tools to originate messages.
type Treasury struct {
	chain *Chain
	addr  ton.AccountID
}

// Treasury returns the funded account for a seed name, creating it on first
// use. The same name always yields the same address.
func (c *Chain) Treasury(name string) Treasury {
	addr := contract.AddressOf(contract.StateInit{CodeID: treasuryCodeID, Data: []byte(name)})
	if _, ok := c.accounts[addr]; !ok {
		c.accounts[addr] = &treasuryAccount{addr: addr}
		c.balances[addr] = core.Nano(1_000_000)
	}
	return Treasury{chain: c, addr: addr}
}

func (t Treasury) Address() ton.AccountID { return t.addr }

// Send delivers body to an existing account and processes the full cascade.
func (t Treasury) Send(to ton.AccountID, value *big.Int, body core.Message) *SendResult {
	return t.chain.run(contract.Envelope{
		From:  t.addr,
		To:    to,
		Value: core.CopyAmount(value),
		Body:  body,
	})
}

// SendInit is Send with attached state-init: the target contract is deployed
// on delivery when its account does not exist yet.
func (t Treasury) SendInit(ctr contract.Contract, value *big.Int, body core.Message) *SendResult {
	return t.chain.run(contract.Envelope{
		From:  t.addr,
		To:    ctr.Address(),
		Value: core.CopyAmount(value),
		Body:  body,
		Init:  ctr,
	})
}

// treasuryAccount accepts any message. Refunds and notifications addressed
// to a holder land here.
type treasuryAccount struct {
	addr ton.AccountID
}

func (t *treasuryAccount) Address() ton.AccountID { return t.addr }

func (t *treasuryAccount) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	return nil, nil
}

func (t *treasuryAccount) Snapshot() contract.Contract { cp := *t; return &cp }

func (t *treasuryAccount) Restore(snapshot contract.Contract) {}
