package cmd

import (
	"log"

	"vna-etl/lib/parsers/letterenhuis"
	"vna-etl/lib/vna"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseLetterenhuisCmd)
}

var parseLetterenhuisCmd = &cobra.Command{
	Use:   "parse-letterenhuis <agents-dir> <output.csv>",
	Short: "Convert a directory of Letterenhuis agent XML files to a VNA person CSV.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		persons, err := letterenhuis.ParseDir(cmd.Context(), args[0])
		if err != nil {
			log.Fatal(err)
		}

		err = vna.WriteCSVFile(args[1], persons)
		if err != nil {
			log.Fatal(err)
		}
	},
}
