package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cardano-preview/walletdemo/logger"
	"github.com/cardano-preview/walletdemo/pkg/collector/client"
	"github.com/cardano-preview/walletdemo/pkg/wallet"
	"github.com/cardano-preview/walletdemo/pkg/wallet/devwallet"
)

const (
	walletDir = "wallet"

	walletBrandCmdName  = "wallet"
	collectorURLCmdName = "collector-url"
	mnemonicCmdName     = "mnemonic"

	defaultCollectorURL = "http://localhost:4000"
)

type walletConfig struct {
	Base         *baseConfiguration
	Brand        string
	CollectorURL string
	Mnemonic     string
}

// newWalletCmd creates a new cobra command for the wallet component.
func newWalletCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &walletConfig{Base: baseConfig}
	var walletCmd = &cobra.Command{
		Use:   "wallet",
		Short: "cli for the wallet workflow demo",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Error: must specify a subcommand connect, balance or send")
		},
	}
	walletCmd.PersistentFlags().StringVarP(&config.Brand, walletBrandCmdName, "w", string(wallet.ProviderNami), "wallet provider brand to connect to")
	walletCmd.PersistentFlags().StringVarP(&config.Mnemonic, mnemonicCmdName, "n", "", "mnemonic seed for creating the dev wallet on first use")
	walletCmd.AddCommand(connectCmd(config))
	walletCmd.AddCommand(balanceCmd(config))
	walletCmd.AddCommand(sendCmd(config))
	return walletCmd
}

func connectCmd(config *walletConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "connects to the wallet and prints the connection status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execWalletCmd(cmd.Context(), config, func(ctx context.Context, session *walletSession) error {
				status := session.conn.Status()
				fmt.Println(status.Message)
				fmt.Println("Balance:", wallet.FormatLovelace(session.conn.Balance().Lovelace), "ADA")
				return nil
			})
		},
	}
}

func balanceCmd(config *walletConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "prints the wallet balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execWalletCmd(cmd.Context(), config, func(ctx context.Context, session *walletSession) error {
				lovelace, err := session.conn.RefreshBalance(ctx)
				if err != nil {
					return err
				}
				fmt.Println(wallet.FormatLovelace(lovelace), "ADA")
				return nil
			})
		},
	}
}

func sendCmd(config *walletConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "submits a one ADA self-transfer and reports it to the collector",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execWalletCmd(cmd.Context(), config, func(ctx context.Context, session *walletSession) error {
				var notifier wallet.Notifier
				if config.CollectorURL != "" {
					c, err := client.New(config.CollectorURL)
					if err != nil {
						return err
					}
					notifier = c
				}
				workflow := wallet.NewWorkflow(session.conn, notifier, config.Base.log)
				if err := workflow.SendToSelf(ctx); err != nil {
					return err
				}
				status := workflow.Status()
				fmt.Println(status.Message)
				fmt.Println("Tx hash:", status.TxHash)
				fmt.Println("Balance:", wallet.FormatLovelace(session.conn.Balance().Lovelace), "ADA")
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&config.CollectorURL, collectorURLCmdName, "c", defaultCollectorURL, "collector service url, empty disables reporting")
	return cmd
}

type walletSession struct {
	conn     *wallet.ConnectionManager
	provider *devwallet.Wallet
}

/*
execWalletCmd opens the dev wallet under the walletdemo home dir,
registers it as the configured brand and runs the command body against
a connected session.
*/
func execWalletCmd(ctx context.Context, config *walletConfig, run func(ctx context.Context, session *walletSession) error) error {
	provider, err := devwallet.New(filepath.Join(config.Base.HomeDir, walletDir), config.Mnemonic)
	if err != nil {
		return err
	}
	defer provider.Close()

	registry := wallet.NewRegistry()
	if err := registry.Register(wallet.ProviderID(config.Brand), provider); err != nil {
		return err
	}
	conn := wallet.NewConnectionManager(registry, config.Base.log)
	if err := conn.Connect(ctx, wallet.ProviderID(config.Brand)); err != nil {
		return err
	}
	defer func() {
		if err := conn.Disconnect(context.Background()); err != nil {
			config.Base.log.Warn("disconnecting wallet", logger.Error(err))
		}
	}()

	return run(ctx, &walletSession{conn: conn, provider: provider})
}
