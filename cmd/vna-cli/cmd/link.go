package cmd

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"

	"vna-etl/lib/linker"
	"vna-etl/lib/textutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var linkNameColumn string

func init() {
	linkCmd.Flags().StringVar(
		&linkNameColumn, "name-column", "volledige naam",
		"CSV column holding the person name")
	rootCmd.AddCommand(linkCmd)
}

func readNameColumn(path, column string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	idx := -1
	for i, name := range rows[0] {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s is missing a %q column", path, column)
	}

	var names []string
	for _, row := range rows[1:] {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		names = append(names, textutil.NormalizeName(row[idx]))
	}
	return names, nil
}

var linkCmd = &cobra.Command{
	Use:   "link <left.csv> <right.csv>",
	Short: "Fuzzy-match person names between two CSV datasets.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		left, err := readNameColumn(args[0], linkNameColumn)
		if err != nil {
			log.Fatal(err)
		}
		right, err := readNameColumn(args[1], linkNameColumn)
		if err != nil {
			log.Fatal(err)
		}

		links := linker.CreateImplicitLinks(left, right)
		sort.Slice(links, func(i, j int) bool {
			return links[i].Correlation > links[j].Correlation
		})

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{args[0], args[1], "correlation"})
		for _, link := range links {
			t.AppendRow(table.Row{
				link.Left,
				link.Right,
				fmt.Sprintf("%.3f", link.Correlation),
			})
		}
		t.Render()
	},
}
