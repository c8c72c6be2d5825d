package jetton

import (
	"math/big"

	"github.com/tonkeeper/tongo/ton"

	"github.com/tonionlabs/ledgerkit/pkg/cache"
	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

// MasterCodeID identifies the jetton master code template.
var MasterCodeID = contract.CodeID("ledgerkit.jetton.master.v1")

type walletFactory func(master, owner ton.AccountID) contract.Contract

// Master is the global head of a sharded jetton ledger: admin metadata,
// total supply, the mintable flag and the wallet code template. It never
// holds balances; each holder's balance lives in that holder's wallet shard,
// whose address the master derives instead of looking up.
type Master struct {
	addr         ton.AccountID
	admin        ton.AccountID
	totalSupply  *big.Int
	mintable     bool
	content      Content
	walletCodeID ton.Bits256
	newWallet    walletFactory
	maxSupply    *big.Int
	walletAddrs  cache.Cache[ton.AccountID, ton.AccountID]
}

type MasterOption func(*Master)

// WithMaxSupply caps the total supply. The cap is part of the deployment and
// cannot change afterwards.
func WithMaxSupply(maxSupply *big.Int) MasterOption {
	return func(m *Master) { m.maxSupply = core.CopyAmount(maxSupply) }
}

// WithWalletCode swaps the wallet shard implementation deployed on first
// credit, e.g. the approveable wallet.
func WithWalletCode(codeID ton.Bits256, factory func(master, owner ton.AccountID) contract.Contract) MasterOption {
	return func(m *Master) {
		m.walletCodeID = codeID
		m.newWallet = factory
	}
}

func NewMaster(admin ton.AccountID, content Content, opts ...MasterOption) *Master {
	m := &Master{
		admin:        admin,
		totalSupply:  new(big.Int),
		mintable:     true,
		content:      content,
		walletCodeID: WalletCodeID,
		newWallet: func(master, owner ton.AccountID) contract.Contract {
			return NewWallet(master, owner)
		},
		walletAddrs: cache.NewLRUCache[ton.AccountID, ton.AccountID](4096, "jetton_wallet_address"),
	}
	for _, opt := range opts {
		opt(m)
	}
	data := contract.AccountBytes(admin)
	data = append(data, m.walletCodeID[:]...)
	data = append(data, content.Bytes()...)
	m.addr = contract.AddressOf(contract.StateInit{CodeID: MasterCodeID, Data: data})
	return m
}

func (m *Master) Address() ton.AccountID { return m.addr }

// JettonData is the master's public metadata.
type JettonData struct {
	TotalSupply  *big.Int
	Mintable     bool
	AdminAddress ton.AccountID
	Content      Content
	WalletCode   ton.Bits256
}

func (m *Master) JettonData() JettonData {
	return JettonData{
		TotalSupply:  core.CopyAmount(m.totalSupply),
		Mintable:     m.mintable,
		AdminAddress: m.admin,
		Content:      m.content,
		WalletCode:   m.walletCodeID,
	}
}

// WalletAddress derives the wallet address of a holder. The derivation is
// pure; it works whether or not that wallet has been deployed.
func (m *Master) WalletAddress(owner ton.AccountID) ton.AccountID {
	if addr, ok := m.walletAddrs.Get(owner); ok {
		return addr
	}
	addr := WalletAddressFor(m.addr, owner, m.walletCodeID)
	m.walletAddrs.Set(owner, addr)
	return addr
}

// MaxSupply returns the configured cap, or nil when the supply is uncapped.
func (m *Master) MaxSupply() *big.Int {
	if m.maxSupply == nil {
		return nil
	}
	return core.CopyAmount(m.maxSupply)
}

func (m *Master) IsMaxSupplyReached() bool {
	return m.maxSupply != nil && m.totalSupply.Cmp(m.maxSupply) >= 0
}

func (m *Master) Receive(env contract.Envelope) ([]contract.Envelope, error) {
	switch msg := env.Body.(type) {
	case core.Deploy:
		return nil, nil
	case core.TextCommand:
		if string(msg) == MintCloseCommand || string(msg) == OwnerMintCloseCommand {
			if env.From != m.admin {
				return nil, core.ErrUnauthorized
			}
			m.mintable = false
			return nil, nil
		}
		return nil, core.ErrUnknownMessage
	case JettonMint:
		return m.mint(env, msg)
	case JettonBurnNotification:
		return m.burnNotification(env, msg)
	}
	return nil, core.ErrUnknownMessage
}

func (m *Master) mint(env contract.Envelope, msg JettonMint) ([]contract.Envelope, error) {
	if env.From != m.admin {
		return nil, core.ErrUnauthorized
	}
	if !m.mintable {
		return nil, core.ErrMintClosed
	}
	if err := validateAmount(msg.Amount); err != nil {
		return nil, err
	}
	minted := new(big.Int).Add(m.totalSupply, msg.Amount)
	if m.maxSupply != nil && minted.Cmp(m.maxSupply) > 0 {
		return nil, core.ErrMaxSupplyExceeded
	}
	m.totalSupply = minted
	walletAddr := m.WalletAddress(msg.Receiver)
	credit := contract.Envelope{
		From:  m.addr,
		To:    walletAddr,
		Value: core.CopyAmount(env.Value),
		Body: JettonTransferInternal{
			Amount:              core.CopyAmount(msg.Amount),
			From:                m.addr,
			ResponseDestination: msg.Origin,
			ForwardTonAmount:    core.CopyAmount(msg.ForwardTonAmount),
			ForwardPayload:      msg.ForwardPayload,
		},
		Init: m.newWallet(m.addr, msg.Receiver),
	}
	return []contract.Envelope{credit}, nil
}

// burnNotification is the trust boundary of the sharded design: the claimed
// holder's wallet address is recomputed here and the notification is accepted
// only when the envelope sender matches it. A wallet cannot lie about its own
// address.
func (m *Master) burnNotification(env contract.Envelope, msg JettonBurnNotification) ([]contract.Envelope, error) {
	if env.From != m.WalletAddress(msg.Sender) {
		return nil, core.ErrInvalidSender
	}
	if err := validateAmount(msg.Amount); err != nil {
		return nil, err
	}
	if m.totalSupply.Cmp(msg.Amount) < 0 {
		return nil, core.ErrInsufficientBalance
	}
	m.totalSupply.Sub(m.totalSupply, msg.Amount)
	if msg.ResponseDestination == (ton.AccountID{}) {
		return nil, nil
	}
	ack := contract.Envelope{
		From:  m.addr,
		To:    msg.ResponseDestination,
		Value: core.CopyAmount(env.Value),
		Body:  core.Excesses{QueryID: msg.QueryID},
	}
	return []contract.Envelope{ack}, nil
}

// ReceiveBounced reverses the supply increment of a mint whose wallet credit
// was never delivered. Without this a bounced mint would leave totalSupply
// above the sum of wallet balances forever.
func (m *Master) ReceiveBounced(env contract.Envelope) ([]contract.Envelope, error) {
	if msg, ok := env.Body.(JettonTransferInternal); ok {
		m.totalSupply.Sub(m.totalSupply, msg.Amount)
	}
	return nil, nil
}

func (m *Master) Snapshot() contract.Contract {
	cp := *m
	cp.totalSupply = core.CopyAmount(m.totalSupply)
	cp.maxSupply = nil
	if m.maxSupply != nil {
		cp.maxSupply = core.CopyAmount(m.maxSupply)
	}
	return &cp
}

func (m *Master) Restore(snapshot contract.Contract) {
	*m = *snapshot.(*Master)
}
