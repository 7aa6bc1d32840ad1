package cmd

import (
	"github.com/spf13/cobra"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
)

// refreshCmd forces a full re-read of profile and history.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-read the profile and history from the ledger",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRefresh(); err != nil {
			logx.Error("REFRESH CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh() error {
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
	if err := cc.coord.RefreshAll(ctx); err != nil {
		return err
	}

	printProfile(cc)
	printHistory(cc)
	return nil
}
