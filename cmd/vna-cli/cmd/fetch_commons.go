package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"vna-etl/lib/crawl"
	"vna-etl/lib/scrapers/commons"

	"github.com/spf13/cobra"
)

var (
	commonsCategoryColumn string
	commonsImageColumn    string
	commonsFolderColumn   string
)

func init() {
	fetchCommonsCmd.Flags().StringVar(
		&commonsCategoryColumn, "category-column", "Commonscategorie",
		"CSV column holding the Commons category name")
	fetchCommonsCmd.Flags().StringVar(
		&commonsImageColumn, "image-column", "afbeelding",
		"CSV column holding a single Commons file title")
	fetchCommonsCmd.Flags().StringVar(
		&commonsFolderColumn, "folder-column", "Wikidata ID",
		"CSV column naming the per-person output subdirectory")
	rootCmd.AddCommand(fetchCommonsCmd)
}

var fetchCommonsCmd = &cobra.Command{
	Use:   "fetch-commons <input.csv> <output-dir>",
	Short: "Download Wikimedia Commons files per CSV row by category and/or file title.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		httpClient, err := crawl.NewClient(crawl.Options{
			TracerName:      "vna.cmd.fetch-commons",
			DebugCaptureDir: httpCaptureDir,
		})
		if err != nil {
			log.Fatal(err)
		}
		client := commons.NewClient(httpClient)

		reader := csv.NewReader(in)
		reader.FieldsPerRecord = -1
		header, err := reader.Read()
		if err != nil {
			log.Fatal(err)
		}

		columns := map[string]int{}
		for i, name := range header {
			columns[name] = i
		}
		for _, required := range []string{commonsCategoryColumn, commonsFolderColumn} {
			_, ok := columns[required]
			if !ok {
				log.Fatal(fmt.Errorf("input is missing a %q column", required))
			}
		}

		field := func(row []string, column string) string {
			idx, ok := columns[column]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		ctx := cmd.Context()
		for {
			row, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				log.Fatal(err)
			}

			folder := field(row, commonsFolderColumn)
			if folder == "" {
				continue
			}
			dir := filepath.Join(args[1], folder)

			category := field(row, commonsCategoryColumn)
			if category != "" {
				slog.InfoContext(ctx, "downloading category", "category", category)
				err := client.DownloadCategory(ctx, category, dir)
				if err != nil {
					slog.ErrorContext(ctx, "failed to download category",
						"category", category, "err", err)
				}
			}

			image := field(row, commonsImageColumn)
			if image != "" {
				err := os.MkdirAll(dir, 0777)
				if err != nil {
					log.Fatal(err)
				}
				slog.InfoContext(ctx, "downloading file", "title", image)
				err = client.DownloadFile(ctx, image, dir)
				if err != nil {
					slog.ErrorContext(ctx, "failed to download file",
						"title", image, "err", err)
				}
			}
		}
	},
}
