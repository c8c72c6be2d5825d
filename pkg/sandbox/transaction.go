package sandbox

import (
	"math/big"

	"github.com/tonkeeper/tongo/ton"
)

// Transaction is one processed inbound message in an execution trace.
type Transaction struct {
	From     ton.AccountID
	To       ton.AccountID
	Op       string
	Value    *big.Int
	Success  bool
	ExitCode int
	// Deploy is set when processing this message created the account.
	Deploy  bool
	Bounced bool
}

// SendResult is the full trace produced by one external send: the initial
// delivery plus every cascading cross-account message, in processing order.
type SendResult struct {
	Transactions []Transaction
}

// TxFilter matches transactions in a trace. Nil fields match anything.
type TxFilter struct {
	From     *ton.AccountID
	To       *ton.AccountID
	Op       *string
	Success  *bool
	ExitCode *int
	Deploy   *bool
	Bounced  *bool
}

func (f TxFilter) matches(tx Transaction) bool {
	if f.From != nil && *f.From != tx.From {
		return false
	}
	if f.To != nil && *f.To != tx.To {
		return false
	}
	if f.Op != nil && *f.Op != tx.Op {
		return false
	}
	if f.Success != nil && *f.Success != tx.Success {
		return false
	}
	if f.ExitCode != nil && *f.ExitCode != tx.ExitCode {
		return false
	}
	if f.Deploy != nil && *f.Deploy != tx.Deploy {
		return false
	}
	if f.Bounced != nil && *f.Bounced != tx.Bounced {
		return false
	}
	return true
}

// Has reports whether any transaction in the trace matches the filter.
func (r *SendResult) Has(f TxFilter) bool {
	for _, tx := range r.Transactions {
		if f.matches(tx) {
			return true
		}
	}
	return false
}
