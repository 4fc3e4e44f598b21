package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	paramDelimiter = "delimiter"
	paramEncoding  = "encoding"
)

// Load reads a CSV file into a Dataset using the source's declared format
// parameters ("delimiter", "encoding"). Missing parameters default to a
// comma-delimited UTF-8 file. Short rows are padded with empty cells and
// surplus cells are dropped, so a ragged file still loads.
func Load(path string, params map[string]string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	enc, err := resolveEncoding(params[paramEncoding])
	if err != nil {
		return Dataset{}, err
	}

	var reader io.Reader = f
	if enc != nil {
		reader = transform.NewReader(f, enc.NewDecoder())
	}

	r := csv.NewReader(reader)
	r.Comma = resolveDelimiter(params[paramDelimiter])
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, nil
		}
		return Dataset{}, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	ds := Dataset{Columns: columns}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Dataset{}, fmt.Errorf("read row %d: %w", len(ds.Rows)+1, err)
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			} else {
				row[col] = ""
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func resolveDelimiter(s string) rune {
	switch s {
	case "", ",":
		return ','
	case "\\t", "tab":
		return '\t'
	default:
		return []rune(s)[0]
	}
}

func resolveEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "utf-8-sig":
		return unicode.UTF8BOM, nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}
