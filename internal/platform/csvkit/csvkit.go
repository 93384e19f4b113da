// Package csvkit reads the raw-data CSV dumps: UTF-8 with an optional BOM,
// comma or semicolon delimited, header row first.
package csvkit

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Missing marks a logical column absent from the header.
const Missing = -1

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyFile is returned by Open when a file has no header line.
var ErrEmptyFile = errors.New("csv file is empty")

// File is a forward-only reader over one CSV file. The delimiter is chosen
// from the header line: semicolon only when it strictly outnumbers comma.
type File struct {
	f      *os.File
	r      *csv.Reader
	delim  rune
	header []string
}

// Open opens path, skips a UTF-8 BOM when present, detects the delimiter
// from the header line and parses the header. Header cells are lowercased
// and trimmed.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	br := bufio.NewReader(f)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(lead, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	line, err := br.ReadString('\n')
	if line == "" && err != nil {
		_ = f.Close()
		if err == io.EOF {
			return nil, ErrEmptyFile
		}
		return nil, errors.Wrapf(err, "read header of %s", path)
	}

	delim := DetectDelimiter(line)

	hr := csv.NewReader(strings.NewReader(line))
	hr.Comma = delim
	hr.LazyQuotes = true
	header, err := hr.Read()
	if err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "parse header of %s", path)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	r := csv.NewReader(br)
	r.Comma = delim
	r.LazyQuotes = true
	r.TrimLeadingSpace = false
	r.FieldsPerRecord = -1

	return &File{f: f, r: r, delim: delim, header: header}, nil
}

// DetectDelimiter picks the delimiter for a header line. Semicolon wins only
// when it strictly outnumbers comma. A header whose literal text contains
// more semicolons than delimiters will misclassify; accepted limitation.
func DetectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		return ';'
	}
	return ','
}

func (c *File) Header() []string { return c.header }

func (c *File) Delimiter() rune { return c.delim }

// Read returns the next data row. Rows holding a single empty cell are
// silently skipped as blank lines. A single-cell row whose content contains
// the delimiter is a mis-split line and gets re-split.
func (c *File) Read() ([]string, error) {
	for {
		row, err := c.r.Read()
		if err != nil {
			return nil, err
		}

		if len(row) == 1 {
			cell := row[0]
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if strings.ContainsRune(cell, c.delim) {
				rr := csv.NewReader(strings.NewReader(cell))
				rr.Comma = c.delim
				rr.LazyQuotes = true
				if fixed, err := rr.Read(); err == nil {
					return fixed, nil
				}
			}
		}

		return row, nil
	}
}

func (c *File) Close() error {
	return c.f.Close()
}

// HeaderIndex maps each logical column name to its position in header, or
// Missing when the column is absent. Matching is exact after the header
// normalization done by Open.
func HeaderIndex(header []string, columns []string) map[string]int {
	idx := make(map[string]int, len(columns))
	for _, col := range columns {
		idx[col] = Missing
	}
	for i, h := range header {
		if at, ok := idx[h]; ok && at == Missing {
			idx[h] = i
		}
	}
	return idx
}

// Cell returns row[i] or "" when the column is missing or the row is short.
func Cell(row []string, i int) string {
	if i == Missing || i >= len(row) {
		return ""
	}
	return row[i]
}
