package cmd

import (
	"log"
	"os"

	"vna-etl/lib/parsers/avg"
	"vna-etl/lib/vna"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseAvgCmd)
}

var parseAvgCmd = &cobra.Command{
	Use:   "parse-avg <export.xml> <output.csv>",
	Short: "Convert an AVG-Carhif EAC export to a VNA person CSV.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		persons, err := avg.Parse(cmd.Context(), data)
		if err != nil {
			log.Fatal(err)
		}

		err = vna.WriteCSVFile(args[1], persons)
		if err != nil {
			log.Fatal(err)
		}
	},
}
