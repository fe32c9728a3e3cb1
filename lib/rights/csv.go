package rights

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Column labels of the rights pipeline: wikitext comes in under
// WikitextColumn, the resolved values go out under the two VNA labels.
const (
	WikitextColumn = "Wikitext"
	LicenseColumn  = "profielfoto_licentie"
	AuthorColumn   = "profielfoto_maker"
)

// AnnotateCSV resolves the Wikitext column of every row and writes each
// row back with the license and author appended under the VNA labels. One
// bad row never aborts the batch: resolution cannot fail, only produce
// empty strings.
func (r *Resolver) AnnotateCSV(in io.Reader, out io.Writer) error {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	writer := csv.NewWriter(out)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return err
	}
	column := slices.Index(header, WikitextColumn)
	if column < 0 {
		return fmt.Errorf("input is missing a %q column", WikitextColumn)
	}

	if err := writer.Write(append(header, LicenseColumn, AuthorColumn)); err != nil {
		return err
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		var text string
		if column < len(row) {
			text = row[column]
		}
		resolved := r.Resolve(text)

		if err := writer.Write(append(row, resolved.License, resolved.Author)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
