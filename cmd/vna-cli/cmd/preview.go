package cmd

import (
	"encoding/csv"
	"io"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var previewRows int

func init() {
	previewCmd.Flags().IntVarP(&previewRows, "rows", "n", 5, "number of rows to show")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <input.csv>",
	Short: "Print the first rows of a CSV as a table.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := os.Open(args[0])
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()

		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1

		header, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		headerRow := make(table.Row, len(header))
		for i, col := range header {
			headerRow[i] = col
		}
		t.AppendHeader(headerRow)

		for i := 0; i < previewRows; i++ {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				log.Fatal(err)
			}
			row := make(table.Row, len(record))
			for j, field := range record {
				row[j] = field
			}
			t.AppendRow(row)
		}
		t.Render()
	},
}
