package cmd

import (
	"log"
	"os"

	"vna-etl/lib/parsers/odis"
	"vna-etl/lib/vna"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseOdisCmd)
}

var parseOdisCmd = &cobra.Command{
	Use:   "parse-odis <export.json> <output.csv>",
	Short: "Convert an ODIS agent export to a VNA person CSV.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		persons, err := odis.Parse(cmd.Context(), in)
		if err != nil {
			log.Fatal(err)
		}

		err = vna.WriteCSVFile(args[1], persons)
		if err != nil {
			log.Fatal(err)
		}
	},
}
