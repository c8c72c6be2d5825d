package jetton

import (
	"math/big"

	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

// WalletCodeID identifies the basic jetton wallet code template.
var WalletCodeID = contract.CodeID("ledgerkit.jetton.wallet.v1")

// validateAmount rejects amounts that would break the unsigned-balance
// invariant. A negative amount flips a debit into a credit and vice versa, so
// every balance-moving handler checks before touching state.
func validateAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return core.ErrInvalidAmount
	}
	return nil
}

// WalletAddressFor derives the wallet address of (master, owner) for a
// wallet code template. Master and wallets compute this identically, so
// neither side ever needs to query the other to validate a peer.
func WalletAddressFor(master, owner ton.AccountID, codeID ton.Bits256) ton.AccountID {
	return contract.AddressOf(contract.StateInit{
		CodeID: codeID,
		Data:   append(contract.AccountBytes(master), contract.AccountBytes(owner)...),
	})
}

// Wallet is one holder's balance shard. It is deployed lazily on first
// credit; the owner/master binding comes from its own init data, never from
// a message.
type Wallet struct {
	addr    ton.AccountID
	owner   ton.AccountID
	master  ton.AccountID
	codeID  ton.Bits256
	balance *big.Int
	newPeer walletFactory
}

func NewWallet(master, owner ton.AccountID) *Wallet {
	w := &Wallet{
		owner:   owner,
		master:  master,
		codeID:  WalletCodeID,
		balance: new(big.Int),
	}
	w.addr = WalletAddressFor(master, owner, WalletCodeID)
	w.newPeer = func(master, owner ton.AccountID) contract.Contract {
		return NewWallet(master, owner)
	}
	return w
}

func (w *Wallet) Address() ton.AccountID { return w.addr }

// WalletData is the wallet's public state.
type WalletData struct {
	Balance *big.Int
	Owner   ton.AccountID
	Jetton  ton.AccountID
}

func (w *Wallet) WalletData() WalletData {
	return WalletData{
		Balance: core.CopyAmount(w.balance),
		Owner:   w.owner,
		Jetton:  w.master,
	}
}

func (w *Wallet) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	switch msg := env.Body.(type) {
	case core.Deploy:
		return nil, nil
	case JettonTransferInternal:
		return w.credit(env, msg)
	case JettonTransfer:
		if env.From != w.owner {
			return nil, core.ErrInvalidSender
		}
		return w.debitAndForward(env, msg.Amount, msg.Destination, msg.ResponseDestination,
			msg.QueryID, msg.ForwardTonAmount, msg.ForwardPayload)
	case JettonBurn:
		return w.burn(env, msg)
	}
	return nil, core.ErrUnknownMessage
}

// credit accepts an inbound balance credit, but only from the master or from
// the claimed sender owner's derived wallet of the same jetton.
func (w *Wallet) credit(env contract.Envelope, msg JettonTransferInternal) ([]contract.Envelope, error) {
	if env.From != w.master && env.From != WalletAddressFor(w.master, msg.From, w.codeID) {
		return nil, core.ErrInvalidSender
	}
	if err := validateAmount(msg.Amount); err != nil {
		return nil, err
	}
	w.balance.Add(w.balance, msg.Amount)

	var outs []contract.Envelope
	remaining := core.CopyAmount(env.Value)
	if msg.ForwardTonAmount != nil && msg.ForwardTonAmount.Sign() > 0 {
		remaining.Sub(remaining, msg.ForwardTonAmount)
		outs = append(outs, contract.Envelope{
			From:  w.addr,
			To:    w.owner,
			Value: core.CopyAmount(msg.ForwardTonAmount),
			Body: TransferNotification{
				QueryID:        msg.QueryID,
				Amount:         core.CopyAmount(msg.Amount),
				Sender:         msg.From,
				ForwardPayload: msg.ForwardPayload,
			},
		})
	}
	if msg.ResponseDestination != (ton.AccountID{}) {
		if remaining.Sign() < 0 {
			remaining.SetInt64(0)
		}
		outs = append(outs, contract.Envelope{
			From:  w.addr,
			To:    msg.ResponseDestination,
			Value: remaining,
			Body:  core.Excesses{QueryID: msg.QueryID},
		})
	}
	return outs, nil
}

// debitAndForward debits the local balance and emits a credit to the
// destination holder's derived wallet. Shared by transfer and allowance
// spend. The whole transition aborts on insufficient balance; there is no
// partial debit.
func (w *Wallet) debitAndForward(env contract.Envelope, amount *big.Int, destination, responseDestination ton.AccountID,
	queryID uint64, forwardTonAmount *big.Int, forwardPayload []byte) ([]contract.Envelope, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if w.balance.Cmp(amount) < 0 {
		return nil, core.ErrInsufficientBalance
	}
	w.balance.Sub(w.balance, amount)
	credit := contract.Envelope{
		From:  w.addr,
		To:    WalletAddressFor(w.master, destination, w.codeID),
		Value: core.CopyAmount(env.Value),
		Body: JettonTransferInternal{
			QueryID:             queryID,
			Amount:              core.CopyAmount(amount),
			From:                w.owner,
			ResponseDestination: responseDestination,
			ForwardTonAmount:    core.CopyAmount(forwardTonAmount),
			ForwardPayload:      forwardPayload,
		},
		Init: w.newPeer(w.master, destination),
	}
	return []contract.Envelope{credit}, nil
}

func (w *Wallet) burn(env contract.Envelope, msg JettonBurn) ([]contract.Envelope, error) {
	if env.From != w.owner {
		return nil, core.ErrInvalidSender
	}
	if err := validateAmount(msg.Amount); err != nil {
		return nil, err
	}
	if w.balance.Cmp(msg.Amount) < 0 {
		return nil, core.ErrInsufficientBalance
	}
	w.balance.Sub(w.balance, msg.Amount)
	notification := contract.Envelope{
		From:  w.addr,
		To:    w.master,
		Value: core.CopyAmount(env.Value),
		Body: JettonBurnNotification{
			QueryID:             msg.QueryID,
			Amount:              core.CopyAmount(msg.Amount),
			Sender:              w.owner,
			ResponseDestination: msg.ResponseDestination,
		},
	}
	return []contract.Envelope{notification}, nil
}

// ReceiveBounced re-credits a debit whose downstream message was never
// delivered. Without this a failed delivery would silently destroy tokens.
func (w *Wallet) ReceiveBounced(env contract.Envelope) ([]contract.Envelope, error) {
	switch msg := env.Body.(type) {
	case JettonTransferInternal:
		w.balance.Add(w.balance, msg.Amount)
	case JettonBurnNotification:
		w.balance.Add(w.balance, msg.Amount)
	}
	return nil, nil
}

func (w *Wallet) Snapshot() contract.Contract {
	cp := *w
	cp.balance = core.CopyAmount(w.balance)
	return &cp
}

func (w *Wallet) Restore(snapshot contract.Contract) {
	*w = *snapshot.(*Wallet)
}
