// Package payments holds the pull-payment splitter: proportional-share
// accounting over received value, released on each payee's own request.
package payments

import (
	"math/big"

	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

var splitterCodeID = contract.CodeID("ledgerkit.payments.splitter.v1")

var errNothingDue = &core.Error{Code: core.ExitFailed, Text: "nothing due"}

// ReleaseCommand triggers a payout of the calling payee's owed share.
const ReleaseCommand = "release"

// AddPayee registers a payee with a share weight. Deployer only.
type AddPayee struct {
	Payee  ton.AccountID
	Shares *big.Int
}

func (AddPayee) Op() string { return "add_payee" }

// Splitter accumulates every nanoton it receives and lets each payee pull
// totalReceived * shares / totalShares minus what that payee already took.
// Nothing is pushed: a payee that never calls release never gets paid.
type Splitter struct {
	addr          ton.AccountID
	owner         ton.AccountID
	shares        map[ton.AccountID]*big.Int
	totalShares   *big.Int
	totalReceived *big.Int
	released      map[ton.AccountID]*big.Int
	totalReleased *big.Int
}

func NewSplitter(owner ton.AccountID) *Splitter {
	return &Splitter{
		addr: contract.AddressOf(contract.StateInit{
			CodeID: splitterCodeID,
			Data:   contract.AccountBytes(owner),
		}),
		owner:         owner,
		shares:        map[ton.AccountID]*big.Int{},
		totalShares:   new(big.Int),
		totalReceived: new(big.Int),
		released:      map[ton.AccountID]*big.Int{},
		totalReleased: new(big.Int),
	}
}

func (s *Splitter) Address() ton.AccountID { return s.addr }

func (s *Splitter) TotalShares() *big.Int { return core.CopyAmount(s.totalShares) }

// Shares returns a payee's share weight, or nil for an unknown payee.
func (s *Splitter) Shares(payee ton.AccountID) *big.Int {
	shares, ok := s.shares[payee]
	if !ok {
		return nil
	}
	return core.CopyAmount(shares)
}

func (s *Splitter) TotalReleased() *big.Int { return core.CopyAmount(s.totalReleased) }

// Released returns what a payee has already pulled, or nil if nothing.
func (s *Splitter) Released(payee ton.AccountID) *big.Int {
	released, ok := s.released[payee]
	if !ok {
		return nil
	}
	return core.CopyAmount(released)
}

func (s *Splitter) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	// Every received message contributes its attached value, including the
	// small amounts attached to management messages.
	received := new(big.Int).Add(s.totalReceived, core.CopyAmount(env.Value))

	switch msg := env.Body.(type) {
	case nil:
		s.totalReceived = received
		return nil, nil
	case core.Deploy:
		s.totalReceived = received
		return nil, nil
	case AddPayee:
		if env.From != s.owner {
			return nil, core.ErrUnauthorized
		}
		// Zero or negative weights would corrupt the pro-rata math; with only
		// positive weights totalShares is nonzero whenever a payee exists.
		if msg.Shares == nil || msg.Shares.Sign() <= 0 {
			return nil, core.ErrInvalidAmount
		}
		s.totalReceived = received
		s.shares[msg.Payee] = core.CopyAmount(msg.Shares)
		s.totalShares.Add(s.totalShares, msg.Shares)
		return nil, nil
	case core.TextCommand:
		if string(msg) == ReleaseCommand {
			return s.release(env, received)
		}
	}
	return nil, core.ErrUnknownMessage
}

func (s *Splitter) release(env contract.Envelope, received *big.Int) ([]contract.Envelope, error) {
	shares, ok := s.shares[env.From]
	if !ok {
		return nil, core.ErrUnauthorized
	}
	owed := new(big.Int).Mul(received, shares)
	owed.Div(owed, s.totalShares)
	if already, ok := s.released[env.From]; ok {
		owed.Sub(owed, already)
	}
	if owed.Sign() <= 0 {
		return nil, errNothingDue
	}
	s.totalReceived = received
	released, ok := s.released[env.From]
	if !ok {
		released = new(big.Int)
		s.released[env.From] = released
	}
	released.Add(released, owed)
	s.totalReleased.Add(s.totalReleased, owed)
	payment := contract.Envelope{
		From:  s.addr,
		To:    env.From,
		Value: owed,
	}
	return []contract.Envelope{payment}, nil
}

func (s *Splitter) Snapshot() contract.Contract {
	cp := *s
	cp.shares = make(map[ton.AccountID]*big.Int, len(s.shares))
	for payee, shares := range s.shares {
		cp.shares[payee] = core.CopyAmount(shares)
	}
	cp.released = make(map[ton.AccountID]*big.Int, len(s.released))
	for payee, released := range s.released {
		cp.released[payee] = core.CopyAmount(released)
	}
	cp.totalShares = core.CopyAmount(s.totalShares)
	cp.totalReceived = core.CopyAmount(s.totalReceived)
	cp.totalReleased = core.CopyAmount(s.totalReleased)
	return &cp
}

func (s *Splitter) Restore(snapshot contract.Contract) {
	*s = *snapshot.(*Splitter)
}
