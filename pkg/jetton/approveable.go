package jetton

import (
	"math/big"

	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

// ApproveableWalletCodeID identifies the allowance-extended wallet template.
var ApproveableWalletCodeID = contract.CodeID("ledgerkit.jetton.approveable_wallet.v1")

// ApproveableWallet extends the basic wallet with per-spender allowances.
// An approve replaces the spender's allowance; a spend debits the caller's
// allowance and the wallet balance by the same amount in one transition.
type ApproveableWallet struct {
	Wallet
	allowances map[ton.AccountID]*big.Int
}

func NewApproveableWallet(master, owner ton.AccountID) *ApproveableWallet {
	w := &ApproveableWallet{
		Wallet: Wallet{
			owner:   owner,
			master:  master,
			codeID:  ApproveableWalletCodeID,
			balance: new(big.Int),
		},
		allowances: map[ton.AccountID]*big.Int{},
	}
	w.addr = WalletAddressFor(master, owner, ApproveableWalletCodeID)
	w.newPeer = func(master, owner ton.AccountID) contract.Contract {
		return NewApproveableWallet(master, owner)
	}
	return w
}

// NewApproveableMaster is a master whose wallet shards carry allowances.
func NewApproveableMaster(admin ton.AccountID, content Content, opts ...MasterOption) *Master {
	walletOpt := WithWalletCode(ApproveableWalletCodeID, func(master, owner ton.AccountID) contract.Contract {
		return NewApproveableWallet(master, owner)
	})
	return NewMaster(admin, content, append([]MasterOption{walletOpt}, opts...)...)
}

// Allowance returns the remaining allowance of a spender, zero if none.
func (w *ApproveableWallet) Allowance(spender ton.AccountID) *big.Int {
	return core.CopyAmount(w.allowances[spender])
}

func (w *ApproveableWallet) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	switch msg := env.Body.(type) {
	case TokenApprove:
		if env.From != w.owner {
			return nil, core.ErrInvalidSender
		}
		if err := validateAmount(msg.Amount); err != nil {
			return nil, err
		}
		w.allowances[msg.Spender] = core.CopyAmount(msg.Amount)
		return nil, nil
	case TokenSpend:
		return w.spend(env, msg)
	}
	return w.Wallet.Receive(env)
}

func (w *ApproveableWallet) spend(env contract.Envelope, msg TokenSpend) ([]contract.Envelope, error) {
	if err := validateAmount(msg.Amount); err != nil {
		return nil, err
	}
	allowance, ok := w.allowances[env.From]
	if !ok || allowance.Cmp(msg.Amount) < 0 {
		return nil, core.ErrInsufficientAllowance
	}
	outs, err := w.debitAndForward(env, msg.Amount, msg.Destination, msg.ResponseDestination,
		msg.QueryID, msg.ForwardTonAmount, msg.ForwardPayload)
	if err != nil {
		return nil, err
	}
	allowance.Sub(allowance, msg.Amount)
	return outs, nil
}

func (w *ApproveableWallet) Snapshot() contract.Contract {
	cp := *w
	cp.balance = core.CopyAmount(w.balance)
	cp.allowances = make(map[ton.AccountID]*big.Int, len(w.allowances))
	for spender, allowance := range w.allowances {
		cp.allowances[spender] = core.CopyAmount(allowance)
	}
	return &cp
}

func (w *ApproveableWallet) Restore(snapshot contract.Contract) {
	*w = *snapshot.(*ApproveableWallet)
}
