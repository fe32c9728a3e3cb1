package cmd

import (
	"log"
	"os"

	"vna-etl/lib/parsers/memorialis"
	"vna-etl/lib/vna"

	"github.com/spf13/cobra"
)

var memorialisQIDFile string

func init() {
	parseMemorialisCmd.Flags().StringVar(&memorialisQIDFile, "qids", "",
		"CSV mapping catalog ids to Wikidata QIDs (columns id, QID)")
	rootCmd.AddCommand(parseMemorialisCmd)
}

var parseMemorialisCmd = &cobra.Command{
	Use:   "parse-memorialis <documents-dir> <output.csv>",
	Short: "Convert a directory of UGent Memorialis JSON documents to a VNA person CSV.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var qids map[string]string
		if memorialisQIDFile != "" {
			in, err := os.Open(memorialisQIDFile)
			if err != nil {
				log.Fatal(err)
			}
			qids, err = memorialis.ReadQIDs(in)
			in.Close()
			if err != nil {
				log.Fatal(err)
			}
		}

		persons, err := memorialis.ParseDir(cmd.Context(), args[0], qids)
		if err != nil {
			log.Fatal(err)
		}

		err = vna.WriteCSVFile(args[1], persons)
		if err != nil {
			log.Fatal(err)
		}
	},
}
