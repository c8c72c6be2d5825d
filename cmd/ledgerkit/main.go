package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tonionlabs/ledgerkit/internal/config"
	"github.com/tonionlabs/ledgerkit/pkg/app"
	"github.com/tonionlabs/ledgerkit/pkg/core"
	"github.com/tonionlabs/ledgerkit/pkg/jetton"
	"github.com/tonionlabs/ledgerkit/pkg/sandbox"
	"github.com/tonionlabs/ledgerkit/pkg/store"
)

func main() {
	root := &cobra.Command{
		Use:   "ledgerkit",
		Short: "TON-style ledger and authorization state machines",
	}
	root.AddCommand(demoCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func demoCmd() *cobra.Command {
	var traceDB string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a mint/transfer/burn scenario on a sandbox chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if traceDB == "" {
				traceDB = cfg.Demo.TraceDB
			}
			log := app.Logger(cfg.App.LogLevel)
			defer func() { _ = log.Sync() }()
			return runDemo(log, traceDB)
		},
	}
	cmd.Flags().StringVar(&traceDB, "trace-db", "", "bbolt file to persist the execution trace")
	return cmd
}

func runDemo(log *zap.Logger, traceDB string) error {
	chain := sandbox.New(sandbox.WithLogger(log))
	owner := chain.Treasury("OWNER")
	bob := chain.Treasury("BOB")
	sarah := chain.Treasury("SARAH")

	master := jetton.NewMaster(owner.Address(), jetton.Content{
		Name:        "Tonion",
		Description: "ledgerkit demo jetton",
		Symbol:      "TI",
		Image:       "https://avatars.githubusercontent.com/u/173614477?s=96&v=4",
	}, jetton.WithMaxSupply(core.Nano(1000)))

	var trace []sandbox.Transaction
	collect := func(res *sandbox.SendResult) {
		trace = append(trace, res.Transactions...)
	}

	collect(owner.SendInit(master, core.MilliNano(50), core.Deploy{}))
	collect(owner.Send(master.Address(), core.Nano(2), jetton.JettonMint{
		Amount:   core.Nano(100),
		Origin:   owner.Address(),
		Receiver: bob.Address(),
	}))
	collect(bob.Send(master.WalletAddress(bob.Address()), core.MilliNano(150), jetton.JettonTransfer{
		Amount:              core.Nano(20),
		Destination:         sarah.Address(),
		ResponseDestination: sarah.Address(),
	}))
	collect(bob.Send(master.WalletAddress(bob.Address()), core.MilliNano(150), jetton.JettonBurn{
		Amount:              core.Nano(5),
		ResponseDestination: bob.Address(),
	}))

	data := master.JettonData()
	log.Info("scenario finished",
		zap.String("master", master.Address().ToRaw()),
		zap.String("total_supply", data.TotalSupply.String()),
		zap.Bool("mintable", data.Mintable),
		zap.Int("transactions", len(trace)))
	for _, holder := range []sandbox.Treasury{bob, sarah} {
		wallet, ok := sandbox.AccountAs[*jetton.Wallet](chain, master.WalletAddress(holder.Address()))
		if !ok {
			continue
		}
		log.Info("wallet",
			zap.String("owner", holder.Address().ToRaw()),
			zap.String("balance", wallet.WalletData().Balance.String()))
	}

	if traceDB == "" {
		return nil
	}
	ts, err := store.Open(traceDB)
	if err != nil {
		return err
	}
	defer func() { _ = ts.Close() }()
	if err := ts.Append(trace); err != nil {
		return err
	}
	log.Info("trace persisted", zap.String("path", traceDB), zap.Int("transactions", len(trace)))
	return nil
}
