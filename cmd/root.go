package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
)

var (
	cfgFile     string
	tuningFile  string
	nodeURL     string
	keypairPath string
)

var rootCmd = &cobra.Command{
	Use:   "afd",
	Short: "Anti-fraud ledger client CLI",
	Long:  "Command line interface for the anti-fraud ledger: register an account, send payments, inspect history, and administer account status.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "client.yml", "client config file")
	rootCmd.PersistentFlags().StringVar(&tuningFile, "tuning", "tuning.ini", "tuning config file")
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "node-url", "u", "", "ledger node URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&keypairPath, "keypair", "k", "", "keypair file (overrides config)")
}
