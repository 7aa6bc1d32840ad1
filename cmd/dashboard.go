package cmd

import (
	"github.com/spf13/cobra"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
)

// dashboardCmd connects the wallet and prints the full account view.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Connect the wallet and show profile and transaction history",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDashboard(); err != nil {
			logx.Error("DASHBOARD CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard() error {
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

	printProfile(cc)
	printHistory(cc)
	return nil
}
