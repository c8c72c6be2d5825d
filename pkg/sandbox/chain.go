package sandbox

import (
	"math/big"
	"math/rand"

	"github.com/tonkeeper/tongo/ton"
	"go.uber.org/zap"

	"github.com/tonionlabs/ledgerkit/pkg/contract"
	"github.com/tonionlabs/ledgerkit/pkg/core"
)

// Verdict decides the fate of a message about to be delivered.
type Verdict int

const (
	Deliver Verdict = iota
	Drop
	Bounce
)

// DeliveryFilter lets a test simulate non-delivery and bounces of
// cross-account messages.
type DeliveryFilter func(env contract.Envelope) Verdict

// chKey identifies a sender->receiver channel. Ordering is preserved only
// within one channel; across channels delivery order is unspecified.
type chKey struct {
	from ton.AccountID
	to   ton.AccountID
}

// Chain is an in-memory chain of sequentially processed account state
// machines exchanging asynchronous messages. It is not safe for concurrent
// use: all accounts advance on the caller's goroutine, which is what makes
// traces deterministic and reproducible.
type Chain struct {
	logger   *zap.Logger
	accounts map[ton.AccountID]contract.Contract
	balances map[ton.AccountID]*big.Int
	queues   map[chKey][]contract.Envelope
	order    []chKey
	rng      *rand.Rand
	filter   DeliveryFilter
	maxSteps int
}

type Option func(*Chain)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Chain) { c.logger = logger }
}

// WithShuffle makes the scheduler pick the next sender->receiver channel
// pseudo-randomly instead of in arrival order. Per-channel FIFO ordering is
// still preserved. Same seed, same trace.
func WithShuffle(seed int64) Option {
	return func(c *Chain) { c.rng = rand.New(rand.NewSource(seed)) }
}

func WithDeliveryFilter(filter DeliveryFilter) Option {
	return func(c *Chain) { c.filter = filter }
}

func New(opts ...Option) *Chain {
	c := &Chain{
		logger:   zap.NewNop(),
		accounts: map[ton.AccountID]contract.Contract{},
		balances: map[ton.AccountID]*big.Int{},
		queues:   map[chKey][]contract.Envelope{},
		maxSteps: 1000,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deploy registers a contract instance directly, without a deploy message.
func (c *Chain) Deploy(ctr contract.Contract) {
	addr := ctr.Address()
	c.accounts[addr] = ctr
	if _, ok := c.balances[addr]; !ok {
		c.balances[addr] = new(big.Int)
	}
}

// Account returns the contract deployed at addr, if any.
func (c *Chain) Account(addr ton.AccountID) (contract.Contract, bool) {
	ctr, ok := c.accounts[addr]
	return ctr, ok
}

// AccountAs returns the contract at addr as a concrete type.
func AccountAs[T contract.Contract](c *Chain, addr ton.AccountID) (T, bool) {
	var zero T
	ctr, ok := c.accounts[addr]
	if !ok {
		return zero, false
	}
	typed, ok := ctr.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// BalanceOf returns the attached-value balance of an account.
func (c *Chain) BalanceOf(addr ton.AccountID) *big.Int {
	return core.CopyAmount(c.balances[addr])
}

func (c *Chain) enqueue(env contract.Envelope) {
	key := chKey{from: env.From, to: env.To}
	q, ok := c.queues[key]
	c.queues[key] = append(q, env)
	if !ok {
		c.order = append(c.order, key)
	}
}

func (c *Chain) next() (contract.Envelope, bool) {
	if len(c.order) == 0 {
		return contract.Envelope{}, false
	}
	idx := 0
	if c.rng != nil {
		idx = c.rng.Intn(len(c.order))
	}
	key := c.order[idx]
	q := c.queues[key]
	env := q[0]
	if len(q) == 1 {
		delete(c.queues, key)
		c.order = append(c.order[:idx], c.order[idx+1:]...)
	} else {
		c.queues[key] = q[1:]
	}
	return env, true
}

func bounceOf(env contract.Envelope) contract.Envelope {
	return contract.Envelope{
		From:    env.To,
		To:      env.From,
		Value:   env.Value,
		Body:    env.Body,
		Bounced: true,
	}
}

// run drains the message queues seeded with root and returns the trace.
func (c *Chain) run(root contract.Envelope) *SendResult {
	if bal, ok := c.balances[root.From]; ok && root.Value != nil {
		bal.Sub(bal, root.Value)
	}
	c.enqueue(root)
	res := &SendResult{}
	for steps := 0; ; steps++ {
		if steps >= c.maxSteps {
			c.logger.Error("message cascade exceeded step limit", zap.Int("limit", c.maxSteps))
			break
		}
		env, ok := c.next()
		if !ok {
			break
		}
		if c.filter != nil {
			switch c.filter(env) {
			case Drop:
				messagesMetric.WithLabelValues(resultDropped).Inc()
				c.logger.Debug("message dropped", zap.String("to", env.To.ToRaw()), zap.String("op", opOf(env)))
				continue
			case Bounce:
				if !env.Bounced {
					c.enqueue(bounceOf(env))
				}
				continue
			}
		}
		tx, outs := c.deliver(env)
		res.Transactions = append(res.Transactions, tx)
		for _, out := range outs {
			if bal, ok := c.balances[out.From]; ok && out.Value != nil {
				bal.Sub(bal, out.Value)
			}
			c.enqueue(out)
		}
		if !tx.Success && !env.Bounced {
			c.enqueue(bounceOf(env))
		}
	}
	return res
}

func (c *Chain) deliver(env contract.Envelope) (Transaction, []contract.Envelope) {
	tx := Transaction{
		From:    env.From,
		To:      env.To,
		Op:      opOf(env),
		Value:   core.CopyAmount(env.Value),
		Bounced: env.Bounced,
	}
	target, exists := c.accounts[env.To]
	deployed := false
	if !exists {
		if env.Init == nil || env.Init.Address() != env.To {
			messagesMetric.WithLabelValues(resultFailed).Inc()
			tx.ExitCode = core.ExitUnknownMessage
			c.logger.Debug("message to unknown account",
				zap.String("to", env.To.ToRaw()),
				zap.String("op", tx.Op))
			return tx, nil
		}
		target = env.Init
		c.accounts[env.To] = target
		if _, ok := c.balances[env.To]; !ok {
			c.balances[env.To] = new(big.Int)
		}
		deployed = true
	}

	snap := target.Snapshot()
	var outs []contract.Envelope
	var err error
	if env.Bounced {
		if bouncer, ok := target.(contract.Bouncer); ok {
			outs, err = bouncer.ReceiveBounced(env)
		}
	} else {
		outs, err = target.Receive(env)
	}
	if err != nil {
		target.Restore(snap)
		if deployed {
			delete(c.accounts, env.To)
		}
		tx.ExitCode = core.ExitCodeOf(err)
		messagesMetric.WithLabelValues(resultFailed).Inc()
		c.logger.Debug("message rejected",
			zap.String("account", env.To.ToRaw()),
			zap.String("op", tx.Op),
			zap.Int("exit_code", tx.ExitCode),
			zap.Error(err))
		return tx, nil
	}

	if env.Value != nil {
		c.balances[env.To].Add(c.balances[env.To], env.Value)
	}
	tx.Success = true
	tx.Deploy = deployed
	if env.Bounced {
		messagesMetric.WithLabelValues(resultBounced).Inc()
	} else {
		messagesMetric.WithLabelValues(resultProcessed).Inc()
	}
	c.logger.Debug("message processed",
		zap.String("account", env.To.ToRaw()),
		zap.String("op", tx.Op),
		zap.Bool("deploy", deployed))
	return tx, outs
}

func opOf(env contract.Envelope) string {
	if env.Body == nil {
		return "empty"
	}
	return env.Body.Op()
}
