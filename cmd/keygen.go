package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/logx"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/wallet"
)

var keygenOut string

// keygenCmd creates a fresh keypair and prints its derived address.
var keygenCmd = &cobra.Command{
	Use:   "keygen [flags]",
	Short: "Generate a new wallet keypair",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runKeygen(); err != nil {
			logx.Error("KEYGEN CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringVarP(&keygenOut, "out", "o", "keypair.txt", "file to write the key seed to")
}

func runKeygen() error {
	w, err := wallet.New()
	if err != nil {
		return err
	}
	if err := w.SaveSeed(keygenOut); err != nil {
		return err
	}
	fmt.Println("Keypair: ", keygenOut)
	fmt.Println("Address: ", w.Address())
	return nil
}
