package cmd

import (
	"log"
	"os"

	"vna-etl/lib/crawl"
	"vna-etl/lib/images"

	"github.com/spf13/cobra"
)

var (
	imagesPhotoColumn string
	imagesURIColumn   string
)

func init() {
	fetchImagesCmd.Flags().StringVar(
		&imagesPhotoColumn, "photo-column", "foto",
		"CSV column holding the direct image url")
	fetchImagesCmd.Flags().StringVar(
		&imagesURIColumn, "uri-column", "uri",
		"CSV column whose last path segment names the output file")
	rootCmd.AddCommand(fetchImagesCmd)
}

var fetchImagesCmd = &cobra.Command{
	Use:   "fetch-images <input.csv> <output-dir>",
	Short: "Download images from direct URLs listed in a CSV.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		client, err := crawl.NewClient(crawl.Options{
			RequestsPerSecond: 0.5,
			TracerName:        "vna.cmd.fetch-images",
			DebugCaptureDir:   httpCaptureDir,
		})
		if err != nil {
			log.Fatal(err)
		}

		opts := images.DefaultOptions(args[1])
		opts.PhotoColumn = imagesPhotoColumn
		opts.URIColumn = imagesURIColumn

		downloader := images.NewDownloader(client, opts)
		err = downloader.Run(cmd.Context(), in)
		if err != nil {
			log.Fatal(err)
		}
	},
}
