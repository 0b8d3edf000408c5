// Command jobform fills a job posting from its URL using the extraction
// service, lets fields be corrected from the command line and optionally
// submits the posting to the job board.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/remotework/jobnexus/pkg/config"
	"github.com/remotework/jobnexus/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	endpoint string
	paste    bool
	submit   bool
	sets     []string
)

var rootCmd = &cobra.Command{
	Use:   "jobform <job-url>",
	Short: "Extract a job posting from its URL and post it to the job board",
	Long: `Fetches job details for the given posting URL from the extraction service,
prints the filled form and, with --submit, posts it once every required field
(title, company, description, application URL) is present.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := config.NewViper(envFile)
		if err := v.BindPFlag("JOBFORM_ENDPOINT", cmd.Flags().Lookup("endpoint")); err != nil {
			return err
		}
		if err := v.BindPFlag("JOBFORM_TIMEOUT", cmd.Flags().Lookup("timeout")); err != nil {
			return err
		}
		cfg, err := config.LoadForm(v)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var url string
		if len(args) > 0 {
			url = args[0]
		}
		return run(ctx, runOptions{
			URL:      url,
			Endpoint: cfg.Endpoint,
			Timeout:  cfg.Timeout,
			Paste:    paste,
			Submit:   submit,
			Sets:     sets,
		}, cmd.OutOrStdout(), log)
	},
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to an env file with JOBFORM_* settings")
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "Base URL of the job board API (JOBFORM_ENDPOINT)")
	rootCmd.Flags().Duration("timeout", 0, "Timeout of a single extraction call (JOBFORM_TIMEOUT)")
	rootCmd.Flags().BoolVar(&paste, "paste", false, "Treat the URL as pasted: wait for it to settle and skip it silently if invalid")
	rootCmd.Flags().BoolVar(&submit, "submit", false, "Post the job once the form validates")
	rootCmd.Flags().StringArrayVar(&sets, "set", nil, "Override a field after extraction, as name=value (repeatable)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
