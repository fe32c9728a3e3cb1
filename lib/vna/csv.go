package vna

import (
	"encoding/csv"
	"io"
	"os"
)

// WriteCSV writes persons in the standard VNA column order, header first.
func WriteCSV(w io.Writer, persons []Person) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header()); err != nil {
		return err
	}
	for _, p := range persons {
		if err := writer.Write(p.Row()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes persons to a new file at path, replacing any
// existing file.
func WriteCSVFile(path string, persons []Person) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, persons)
}
