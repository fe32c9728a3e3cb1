package cmd

import (
	"log"
	"os"
	"path/filepath"

	"vna-etl/lib/crawl"
	"vna-etl/lib/iiif"

	"github.com/spf13/cobra"
)

var manifestColumn string

func init() {
	fetchManifestsCmd.Flags().StringVar(
		&manifestColumn, "manifest-column", "manifest",
		"CSV column holding the IIIF manifest url")
	rootCmd.AddCommand(fetchManifestsCmd)
}

var fetchManifestsCmd = &cobra.Command{
	Use:   "fetch-manifests <input.csv> <output-dir>",
	Short: "Download images referenced by IIIF manifests listed in a CSV.",
	Long: "Resolves each manifest's first image body and downloads it. A " +
		"results CSV mapping manifest to filename (or FAILED!) is written " +
		"to <output-dir>/output.csv.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		err = os.MkdirAll(args[1], 0777)
		if err != nil {
			log.Fatal(err)
		}
		results, err := os.Create(filepath.Join(args[1], "output.csv"))
		if err != nil {
			log.Fatal(err)
		}
		defer results.Close()

		client, err := crawl.NewClient(crawl.Options{
			RequestsPerSecond: 0.5,
			TracerName:        "vna.cmd.fetch-manifests",
			DebugCaptureDir:   httpCaptureDir,
		})
		if err != nil {
			log.Fatal(err)
		}

		downloader := iiif.NewDownloader(client)
		err = downloader.FetchAll(cmd.Context(), in, manifestColumn, args[1], results)
		if err != nil {
			log.Fatal(err)
		}
	},
}
