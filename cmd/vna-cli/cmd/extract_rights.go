package cmd

import (
	"log"
	"os"

	"vna-etl/lib/rights"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(extractRightsCmd)
}

var extractRightsCmd = &cobra.Command{
	Use:   "extract-rights <input.csv> <output.csv>",
	Short: "Resolve author and license from the Wikitext column of a CSV.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		out, err := os.Create(args[1])
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()

		resolver := rights.NewResolver(rights.DefaultTables())
		err = resolver.AnnotateCSV(in, out)
		if err != nil {
			log.Fatal(err)
		}
	},
}
