package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookmeta/internal/config"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
)

var (
	cfgFile string
	verbose bool
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookmeta",
		Short: "Extract bibliographic metadata from book cover OCR text",
		Long: `Bookmeta extracts title, author, publisher, year and ISBN from the OCR text
of book covers and title pages, tuned for Vietnamese publishing conventions.

It runs as a CLI over text or images, as an HTTP service, and as an evaluation
harness against the Institutional Books dataset.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./bookmeta.yaml or $HOME/.bookmeta/bookmeta.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newExtractCmd())
	cmd.AddCommand(newOCRCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func loadConfig() (*config.Manager, error) {
	return config.NewManager(cfgFile)
}

func newEngine() (*extraction.Engine, error) {
	cm, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return extraction.New(cm.Get().ToExtractionConfig()), nil
}
