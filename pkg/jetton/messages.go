package jetton

import (
	"math/big"

	"github.com/tonkeeper/tongo/ton"
)

// Text commands accepted by the master to close minting permanently. The two
// spellings come from different generations of the deployed contracts.
const (
	MintCloseCommand      = "Mint:Close"
	OwnerMintCloseCommand = "Owner: MintClose"
)

// JettonMint asks the master to mint amount to the receiver's wallet.
// Unused attached value is refunded to Origin.
type JettonMint struct {
	Amount           *big.Int
	CustomPayload    []byte
	Origin           ton.AccountID
	ForwardTonAmount *big.Int
	ForwardPayload   []byte
	Receiver         ton.AccountID
}

func (JettonMint) Op() string { return "jetton_mint" }

// JettonTransfer asks a wallet to move amount to the destination holder.
type JettonTransfer struct {
	QueryID             uint64
	Amount              *big.Int
	Destination         ton.AccountID
	ResponseDestination ton.AccountID
	CustomPayload       []byte
	ForwardTonAmount    *big.Int
	ForwardPayload      []byte
}

func (JettonTransfer) Op() string { return "jetton_transfer" }

// JettonTransferInternal credits a wallet. It is trusted only when sent by
// the master or by the sender owner's derived wallet of the same jetton.
type JettonTransferInternal struct {
	QueryID             uint64
	Amount              *big.Int
	From                ton.AccountID
	ResponseDestination ton.AccountID
	ForwardTonAmount    *big.Int
	ForwardPayload      []byte
}

func (JettonTransferInternal) Op() string { return "jetton_transfer_internal" }

// JettonBurn asks a wallet to destroy amount of its own balance.
type JettonBurn struct {
	QueryID             uint64
	Amount              *big.Int
	ResponseDestination ton.AccountID
	CustomPayload       []byte
}

func (JettonBurn) Op() string { return "jetton_burn" }

// JettonBurnNotification reports a completed wallet burn to the master.
// Sender is the wallet's owner; the master re-derives the wallet address
// from it and never trusts the envelope sender alone.
type JettonBurnNotification struct {
	QueryID             uint64
	Amount              *big.Int
	Sender              ton.AccountID
	ResponseDestination ton.AccountID
}

func (JettonBurnNotification) Op() string { return "jetton_burn_notification" }

// TransferNotification forwards a payload to the destination holder after a
// credit, carrying the forward value of the originating transfer.
type TransferNotification struct {
	QueryID        uint64
	Amount         *big.Int
	Sender         ton.AccountID
	ForwardPayload []byte
}

func (TransferNotification) Op() string { return "transfer_notification" }

// TokenApprove replaces the allowance of a spender on an approveable wallet.
type TokenApprove struct {
	Amount  *big.Int
	Spender ton.AccountID
}

func (TokenApprove) Op() string { return "token_approve" }

// TokenSpend moves amount out of an approveable wallet on behalf of its
// owner, debiting the caller's allowance and the wallet balance together.
type TokenSpend struct {
	QueryID             uint64
	Amount              *big.Int
	Destination         ton.AccountID
	ResponseDestination ton.AccountID
	CustomPayload       []byte
	ForwardTonAmount    *big.Int
	ForwardPayload      []byte
}

func (TokenSpend) Op() string { return "token_spend" }
