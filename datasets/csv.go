package datasets

import "io"
import "os"

import "github.com/gocarina/gocsv"
import "github.com/pkg/errors"

// LoadCSV reads a table from CSV with a header naming the columns
// token_ids, score, n_tokens and optionally set.
func LoadCSV(r io.Reader) (*Table, error) {
	var rows []Review
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrap(err, "decoding review csv")
	}
	return NewTable(rows)
}

// LoadCSVFile reads a table from a CSV file
func LoadCSVFile(name string) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := LoadCSV(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", name)
	}
	return t, nil
}

// WriteCSV writes the table in the format LoadCSV reads
func (t *Table) WriteCSV(w io.Writer) error {
	var rows = make([]*Review, t.Len())
	for i := range rows {
		r, _ := t.Row(i)
		rows[i] = &r
	}
	return gocsv.Marshal(rows, w)
}
