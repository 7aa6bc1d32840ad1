package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/ledgersim"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/utils"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/wallet"
)

type SimnodeConfig struct {
	Listen      string
	Owner       string
	MaxAmount   string
	IntervalSec uint64
}

var simnodeConfig SimnodeConfig

// simnodeCmd runs the in-memory ledger simulator for development.
var simnodeCmd = &cobra.Command{
	Use:   "simnode [flags]",
	Short: "Run an in-memory ledger simulator node",
	Long: `Serves the ledger JSON-RPC surface backed by an in-memory rule
engine, for development and demos. The owner defaults to the address of
the configured keypair.

Examples:
  # Run with the local keypair as owner
  afd simnode -l :8568`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSimnode(); err != nil {
			logx.Error("SIMNODE CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(simnodeCmd)
	simnodeCmd.Flags().StringVarP(&simnodeConfig.Listen, "listen", "l", ":8568", "listen address")
	simnodeCmd.Flags().StringVarP(&simnodeConfig.Owner, "owner", "o", "", "owner address (defaults to the configured keypair)")
	simnodeCmd.Flags().StringVar(&simnodeConfig.MaxAmount, "max-amount", "100", "per-transaction cap in display units")
	simnodeCmd.Flags().Uint64Var(&simnodeConfig.IntervalSec, "interval", 60, "minimum seconds between a sender's transactions")
}

func runSimnode() error {
	owner := simnodeConfig.Owner
	if owner == "" {
		cfg, err := resolveClientConfig()
		if err != nil {
			return err
		}
		w, err := wallet.Load(cfg.KeypairPath)
		if err != nil {
			return err
		}
		owner = w.Address()
	}
	if !types.IsAddress(owner) {
		return fmt.Errorf("invalid owner address %q", owner)
	}

	cfg := ledgersim.DefaultConfig(owner)
	maxAmount, err := utils.ParsePositiveAmount(simnodeConfig.MaxAmount)
	if err != nil {
		return fmt.Errorf("invalid max-amount: %w", err)
	}
	cfg.MaxTxAmount = maxAmount
	cfg.MinIntervalSec = simnodeConfig.IntervalSec

	logx.Info("SIMNODE CLI", "Owner: ", owner)
	server := ledgersim.NewServer(ledgersim.New(cfg))
	return server.ListenAndServe(simnodeConfig.Listen)
}
