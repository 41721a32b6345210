// Command-line interface for one-off extractions
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bizscout/bizscout/app"
	"bizscout/bizscout/config"
	"bizscout/bizscout/services/extractor"
	"bizscout/bizscout/utils/color"
	"bizscout/bizscout/utils/jsonutils"
	"bizscout/bizscout/utils/logging"
	"bizscout/bizscout/utils/types"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "bizscout",
	Short: "Extract Google Business listing data",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.LoadConfig()
		logging.InitLogger(cfg.LogDir)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagName    string
	flagURL     string
	flagWebhook bool
	flagTimeout time.Duration
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract one business by name or website URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		q := types.BusinessQuery{BusinessName: flagName, WebsiteURL: flagURL}
		if q.Empty() {
			return errors.New("provide --name or --url")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), flagTimeout)
		defer cancel()

		a, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		search := extractor.SearchString(q)
		fmt.Fprintln(os.Stderr, color.ColorInfo("Searching for "+search+" ..."))
		outcome := a.Orchestrator.Extract(ctx, search)
		if !outcome.Found() {
			return errors.New(outcome.NotFound.Error)
		}

		if !flagWebhook {
			fmt.Println(jsonutils.ToJSON(outcome.Record))
			return nil
		}
		status := a.Webhook.Deliver(ctx, *outcome.Record)
		fmt.Println(jsonutils.ToJSON(types.ExtractResponse{BusinessRecord: *outcome.Record, WebhookStatus: status}))
		if status.Status == types.WebhookSuccess {
			fmt.Fprintln(os.Stderr, color.ColorSuccess(status.Message))
		} else {
			fmt.Fprintln(os.Stderr, color.ColorWarning(status.Message))
		}
		return nil
	},
}

var selectorsCmd = &cobra.Command{
	Use:   "selectors",
	Short: "Print the effective selector profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := extractor.LoadSelectors(cfg.SelectorsFile)
		if err != nil {
			return err
		}
		out, err := sel.YAML()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&flagName, "name", "", "business name")
	extractCmd.Flags().StringVar(&flagURL, "url", "", "business website URL (takes precedence over --name)")
	extractCmd.Flags().BoolVar(&flagWebhook, "webhook", false, "also relay the record to the configured webhook")
	extractCmd.Flags().DurationVar(&flagTimeout, "timeout", 90*time.Second, "overall extraction timeout")
	rootCmd.AddCommand(extractCmd, selectorsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.ColorError(err.Error()))
		os.Exit(1)
	}
}
