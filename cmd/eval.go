package cmd

import (
	"github.com/lehigh-university-libraries/bookmeta/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Extraction accuracy evaluation tools",
		Long: `Evaluation tools for measuring how accurately the extraction heuristics
recover catalog metadata from title page OCR text.`,
	}

	cmd.AddCommand(evalcmd.NewIBCmd(newEngine))
	cmd.AddCommand(evalcmd.NewInspectCmd(newEngine))

	return cmd
}
