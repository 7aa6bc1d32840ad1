package cmd

import (
	"github.com/spf13/cobra"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
)

type PayConfig struct {
	To     string
	Amount string
}

var payConfig PayConfig

// payCmd sends a payment to another registered account.
var payCmd = &cobra.Command{
	Use:   "pay [flags]",
	Short: "Send a payment to another account",
	Long: `Sends a payment from the wallet's account to the recipient address.
The amount is a plain decimal in display units ("5", "0.25"). The view
is re-read after the attempt whether it succeeded or not, so a payment
the ledger flagged shows up immediately.

Examples:
  # Pay 5 units
  afd pay -t 0x1234567890123456789012345678901234567890 -a 5`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPay(); err != nil {
			logx.Error("PAY CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(payCmd)
	payCmd.Flags().StringVarP(&payConfig.To, "to", "t", "", "recipient address")
	payCmd.Flags().StringVarP(&payConfig.Amount, "amount", "a", "", "amount in display units")
}

func runPay() error {
	cc, err := newClientContext()
	if err != nil {
		return err
	}
	defer cc.Close()

	ctx, cancel := cc.requestCtx()
	defer cancel()
	if err := cc.sess.Connect(ctx); err != nil {
		return err
	}
	if err := cc.coord.Pay(ctx, payConfig.To, payConfig.Amount); err != nil {
		return err
	}

	printProfile(cc)
	printHistory(cc)
	return nil
}
