package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cardano-preview/walletdemo/pkg/collector"
)

const (
	serverAddrCmdName = "server-addr"
	mongoURICmdName   = "mongo-uri"
)

type collectorConfig struct {
	Base       *baseConfiguration
	ServerAddr string
	MongoURI   string
}

// newCollectorCmd creates a new cobra command for the transaction collector service.
func newCollectorCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &collectorConfig{Base: baseConfig}
	var collectorCmd = &cobra.Command{
		Use:   "collector",
		Short: "transaction collector service",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Error: must specify a subcommand start")
		},
	}
	collectorCmd.AddCommand(collectorStartCmd(config))
	return collectorCmd
}

func collectorStartCmd(config *collectorConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "starts the collector http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return collector.Run(cmd.Context(), &collector.Config{
				ServerAddr: config.ServerAddr,
				MongoURI:   config.MongoURI,
				Logger:     config.Base.log,
			})
		},
	}
	cmd.Flags().StringVarP(&config.ServerAddr, serverAddrCmdName, "s", collector.DefaultServerAddr, "collector server address")
	cmd.Flags().StringVarP(&config.MongoURI, mongoURICmdName, "m", "", "mongo connection string (in-memory storage when not set)")
	return cmd
}
