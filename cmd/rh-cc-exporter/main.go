package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/markberger/rh-cc-exporter/pkg/card"
	"github.com/markberger/rh-cc-exporter/pkg/config"
	"github.com/markberger/rh-cc-exporter/pkg/exporter"
	"github.com/markberger/rh-cc-exporter/pkg/prompt"
)

var (
	cfgFile    string
	outputPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "rh-cc-exporter [flags] <YYYY-MM-DD>",
	Short:        "Export Robinhood credit card transactions to a QIF file",
	Long:         "Logs into the Robinhood credit card API, fetches every transaction on or after the given date, and writes a QIF file for import into budgeting software.",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "rh-cc-exporter",
		})
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}

		cutoff, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid cutoff date %q, expected YYYY-MM-DD: %w", args[0], err)
		}

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		creds, err := prompt.Read(os.Stdin, os.Stderr)
		if err != nil {
			return err
		}

		ctx := context.Background()
		client := card.New(cfg, logger)

		token, err := client.Login(ctx, creds)
		if err != nil {
			return err
		}

		customerID, err := client.CustomerID(ctx, token)
		if err != nil {
			return err
		}

		logger.Info("fetching transactions", "cutoff", cutoff.Format("2006-01-02"))
		transactions, err := client.Transactions(ctx, token, customerID, cutoff)
		if err != nil {
			return err
		}
		logger.Info("fetched transactions", "count", len(transactions))

		return exporter.New(cfg, logger).Export(transactions)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path (default ./rh-cc-transactions.qif)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
