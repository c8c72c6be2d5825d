package access

import (
	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

var ownable2StepCodeID = contract.CodeID("ledgerkit.access.ownable2step.v1")

// Ownable2Step is single-owner authorization with a two-phase ownership
// transfer: the owner proposes a candidate, and only the candidate's own
// accept completes the transfer. A second proposal while one is pending
// overwrites the candidate.
type Ownable2Step struct {
	addr    ton.AccountID
	owner   ton.AccountID
	pending *ton.AccountID
}

func NewOwnable2Step(owner ton.AccountID) *Ownable2Step {
	addr := contract.AddressOf(contract.StateInit{
		CodeID: ownable2StepCodeID,
		Data:   contract.AccountBytes(owner),
	})
	return &Ownable2Step{addr: addr, owner: owner}
}

func (o *Ownable2Step) Address() ton.AccountID { return o.addr }

func (o *Ownable2Step) Owner() ton.AccountID { return o.owner }

// PendingOwner returns the proposed owner, or nil outside a transfer.
func (o *Ownable2Step) PendingOwner() *ton.AccountID {
	if o.pending == nil {
		return nil
	}
	cp := *o.pending
	return &cp
}

func (o *Ownable2Step) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	switch msg := env.Body.(type) {
	case core.Deploy:
		return nil, nil
	case ChangeOwner2Step:
		if env.From != o.owner {
			return nil, core.ErrUnauthorized
		}
		pending := msg.PendingOwner
		o.pending = &pending
		return nil, nil
	case AcceptOwnership2Step:
		if o.pending == nil {
			return nil, core.ErrNoPendingTransfer
		}
		if env.From != *o.pending {
			return nil, core.ErrUnauthorized
		}
		o.owner = *o.pending
		o.pending = nil
		return nil, nil
	}
	return nil, core.ErrUnknownMessage
}

func (o *Ownable2Step) Snapshot() contract.Contract {
	cp := *o
	if o.pending != nil {
		pending := *o.pending
		cp.pending = &pending
	}
	return &cp
}

func (o *Ownable2Step) Restore(snapshot contract.Contract) {
	*o = *snapshot.(*Ownable2Step)
}
