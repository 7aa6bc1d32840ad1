package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
)

type SetStatusConfig struct {
	Account string
	Status  string
}

var setStatusConfig SetStatusConfig

// setStatusCmd is the owner-only account administration entry point.
var setStatusCmd = &cobra.Command{
	Use:   "set-status [flags]",
	Short: "Suspend or reactivate a registered account (owner only)",
	Long: `Changes another account's status. Only the ledger owner's wallet can
do this; the owner keeps this capability even while suspended.

Examples:
  # Suspend an account
  afd set-status -t 0x1234567890123456789012345678901234567890 -s suspended

  # Reactivate it
  afd set-status -t 0x1234567890123456789012345678901234567890 -s active`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSetStatus(); err != nil {
			logx.Error("SETSTATUS CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(setStatusCmd)
	setStatusCmd.Flags().StringVarP(&setStatusConfig.Account, "account", "t", "", "target account address")
	setStatusCmd.Flags().StringVarP(&setStatusConfig.Status, "status", "s", "", "new status: active or suspended")
}

func runSetStatus() error {
	status, err := parseStatus(setStatusConfig.Status)
	if err != nil {
		return err
	}

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
	return cc.coord.SetStatus(ctx, setStatusConfig.Account, status)
}

func parseStatus(s string) (types.AccountStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return types.StatusActive, nil
	case "suspended":
		return types.StatusSuspended, nil
	default:
		return 0, fmt.Errorf("invalid status %q: want active or suspended", s)
	}
}
