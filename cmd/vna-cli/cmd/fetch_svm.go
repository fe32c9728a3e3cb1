package cmd

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"vna-etl/lib/crawl"
	"vna-etl/lib/scrapers/svm"
	"vna-etl/lib/vna"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchSvmCmd)
}

var fetchSvmCmd = &cobra.Command{
	Use:   "fetch-svm <urls.txt> <output.csv>",
	Short: "Scrape SVM composer pages listed in a text file, one URL per line.",
	Long: "Scrapes name, birth/death data and portrait images from each " +
		"composer detail page. Images are stored in a foto/ directory next " +
		"to the URL list.",
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		contents, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		urls := strings.Split(string(contents), "\n")

		client, err := crawl.NewClient(crawl.Options{
			RequestsPerSecond: 0.5,
			TracerName:        "vna.cmd.fetch-svm",
			DebugCaptureDir:   httpCaptureDir,
		})
		if err != nil {
			log.Fatal(err)
		}

		rootDir, err := filepath.Abs(filepath.Dir(args[0]))
		if err != nil {
			log.Fatal(err)
		}

		scraper := svm.NewScraper(client, rootDir)
		persons := scraper.ScrapeAll(cmd.Context(), urls)

		err = vna.WriteCSVFile(args[1], persons)
		if err != nil {
			log.Fatal(err)
		}
	},
}
