package contract

import (
	"math/big"

	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/core"
)

// Contract is a sequentially processed account state machine. An instance
// handles one inbound message at a time to completion; all local state
// mutation and outbound messages for one inbound message commit together.
// On error the caller restores the pre-message snapshot, so a rejected
// message leaves the instance's state unchanged.
type Contract interface {
	// Address returns the deterministic address of this instance.
	Address() ton.AccountID
	// Receive processes one inbound message and returns outbound messages.
	Receive(env Envelope) ([]Envelope, error)
	// Snapshot returns a deep copy of the state machine.
	Snapshot() Contract
	// Restore copies state back from a snapshot taken on the same instance,
	// in place, so references held by callers stay valid after a rollback.
	Restore(snapshot Contract)
}

// Bouncer is implemented by contracts that react to bounced outbound
// messages, e.g. a jetton wallet re-crediting a transfer that was never
// delivered.
type Bouncer interface {
	ReceiveBounced(env Envelope) ([]Envelope, error)
}

// Envelope is one asynchronous message between two accounts.
type Envelope struct {
	From  ton.AccountID
	To    ton.AccountID
	Value *big.Int
	Body  core.Message
	// Init carries a fresh contract instance to deploy at To when the
	// destination account does not exist yet. Its address must equal To.
	Init Contract
	// Bounced marks a delivery-failure notification returned to the sender.
	Bounced bool
}
