package cmd

import (
	"context"
	"fmt"
	"os"

	"vna-etl/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose bool
var httpCaptureDir string

var rootCmd = &cobra.Command{
	Use:   "vna-cli",
	Short: "vna-cli crawls, parses and links Flemish cultural-heritage person data.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// message capture only fires at debug level
		telemetry.InitSlog(verbose || httpCaptureDir != "")
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(
		&httpCaptureDir, "http-capture-dir", "",
		"dump every HTTP request/response pair to a file in this directory (implies -v)")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
