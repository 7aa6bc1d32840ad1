package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/2024963793-bot/fyp-anti-fraud-dapps/config"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/coordinator"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/gateway"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/notify"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/session"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/types"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/utils"
	"github.com/2024963793-bot/fyp-anti-fraud-dapps/wallet"
)

const defaultNodeURL = "http://localhost:8568"

// clientContext wires a command's wallet, gateway, session and
// coordinator together from the resolved configuration.
type clientContext struct {
	cfg    *config.ClientConfig
	tuning *config.TuningConfig
	wallet *wallet.Wallet
	client *gateway.LedgerClient
	sess   *session.Session
	coord  *coordinator.Coordinator
}

func newClientContext() (*clientContext, error) {
	cfg, err := resolveClientConfig()
	if err != nil {
		return nil, err
	}
	tuning, err := config.LoadTuningConfig(tuningFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load tuning config: %w", err)
	}

	w, err := wallet.Load(cfg.KeypairPath)
	if err != nil {
		return nil, err
	}

	client, err := gateway.NewClient(gateway.Config{Endpoint: cfg.NodeURL}, w)
	if err != nil {
		return nil, err
	}

	sess := session.New(client, types.NewEventBus())
	coord := coordinator.New(sess, client, notify.ConsoleSink{})

	return &clientContext{
		cfg:    cfg,
		tuning: tuning,
		wallet: w,
		client: client,
		sess:   sess,
		coord:  coord,
	}, nil
}

func (cc *clientContext) Close() {
	cc.sess.Disconnect()
	_ = cc.client.Close()
}

func (cc *clientContext) requestCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cc.tuning.RequestTimeout())
}

// resolveClientConfig starts from defaults, layers the config file on
// top when it exists, and lets command-line overrides win.
func resolveClientConfig() (*config.ClientConfig, error) {
	cfg := &config.ClientConfig{
		NodeURL:     defaultNodeURL,
		KeypairPath: "keypair.txt",
	}
	if _, err := os.Stat(cfgFile); err == nil {
		loaded, err := config.LoadClientConfig(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client config: %w", err)
		}
		if loaded.NodeURL != "" {
			cfg.NodeURL = loaded.NodeURL
		}
		if loaded.KeypairPath != "" {
			cfg.KeypairPath = loaded.KeypairPath
		}
	}
	if nodeURL != "" {
		cfg.NodeURL = nodeURL
	}
	if keypairPath != "" {
		cfg.KeypairPath = keypairPath
	}
	return cfg, nil
}

func printProfile(cc *clientContext) {
	prof := cc.sess.Profile()
	fmt.Println("Account: ", prof.Address)
	fmt.Println("Status:  ", prof.Status.String())
	fmt.Println("Owner:   ", cc.sess.IsOwner())
	if prof.Status == types.StatusActive {
		fmt.Println("Name:    ", prof.Name)
		fmt.Println("Balance: ", utils.FormatAmount(prof.Balance))
	}
}

func printHistory(cc *clientContext) {
	entries := cc.sess.History()
	if len(entries) == 0 {
		fmt.Println("History:  (empty)")
		return
	}
	fmt.Println("History:")
	for _, e := range entries {
		fmt.Printf("  #%-4d %-8s %-14s %12s  %-9s %s\n",
			e.ID,
			e.Role,
			utils.ShortenAddress(e.Counterparty),
			utils.FormatAmount(e.Amount),
			e.Status.String(),
			time.Unix(int64(e.Timestamp), 0).Format(time.DateTime),
		)
	}
}
