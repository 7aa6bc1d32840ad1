package cmd

import (
	"github.com/spf13/cobra"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
)

var registerName string

// registerCmd registers the wallet's identity on the ledger.
var registerCmd = &cobra.Command{
	Use:   "register [flags]",
	Short: "Register this wallet on the ledger",
	Long: `Registers the wallet's identity under a display name. A freshly
registered account becomes Active and receives the welcome balance.

Examples:
  # Register as Alice
  afd register -n Alice`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRegister(); err != nil {
			logx.Error("REGISTER CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name to register under")
}

func runRegister() error {
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
	if err := cc.coord.Register(ctx, registerName); err != nil {
		return err
	}

	printProfile(cc)
	return nil
}
