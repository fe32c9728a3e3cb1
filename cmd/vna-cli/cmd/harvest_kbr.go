package cmd

import (
	"log"

	"vna-etl/lib/crawl"
	"vna-etl/lib/oaipmh"

	"github.com/spf13/cobra"
)

var (
	kbrEndpoint string
	kbrTotal    int
	kbrPageSize int
	kbrPrefix   string
)

func init() {
	harvestKbrCmd.Flags().StringVar(
		&kbrEndpoint, "endpoint", oaipmh.DefaultEndpoint, "OAI-PMH server url")
	harvestKbrCmd.Flags().IntVar(
		&kbrTotal, "total", 492043, "record count advertised by the server")
	harvestKbrCmd.Flags().IntVar(
		&kbrPageSize, "page-size", 100, "records per ListRecords page")
	harvestKbrCmd.Flags().StringVar(
		&kbrPrefix, "metadata-prefix", "oai_dc", "OAI-PMH metadata prefix")
	rootCmd.AddCommand(harvestKbrCmd)
}

var harvestKbrCmd = &cobra.Command{
	Use:   "harvest-kbr <output-dir>",
	Short: "Harvest paged ListRecords XML from the KBR OAI-PMH server.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := crawl.NewClient(crawl.Options{
			TracerName:      "vna.cmd.harvest-kbr",
			DebugCaptureDir: httpCaptureDir,
		})
		if err != nil {
			log.Fatal(err)
		}

		harvester := oaipmh.NewHarvester(client, kbrEndpoint)
		err = harvester.Harvest(cmd.Context(), oaipmh.HarvestOptions{
			Total:          kbrTotal,
			PageSize:       kbrPageSize,
			MetadataPrefix: kbrPrefix,
			OutputDir:      args[0],
		})
		if err != nil {
			log.Fatal(err)
		}
	},
}
