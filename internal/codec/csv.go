// Package codec reads uploaded transaction CSV files and writes exports.
package codec

import (
	"encoding/csv" // CSV reader and writer
	"errors"       // Sentinel errors
	"fmt"          // Error wrapping
	"io"           // Readers and writers
	"strings"      // Cell trimming
	"time"         // Import timestamps

	"sentinel_engine/internal/domain" // Record model
)

// Column names, in export order.
const (
	ColID       = "id"
	ColUser     = "user"
	ColAmount   = "amount"
	ColStatus   = "status"
	ColRisk     = "risk"
	ColMethod   = "method"
	ColDate     = "date"
	ColLocation = "location"
)

// Header is the export header row.
var Header = []string{ColID, ColUser, ColAmount, ColStatus, ColRisk, ColMethod, ColDate, ColLocation}

// ErrMalformedCSV wraps any reader failure such as unbalanced quotes.
var ErrMalformedCSV = errors.New("malformed CSV")

// Row maps header names to the trimmed cell values of one data line.
type Row map[string]string

// Parse reads CSV text whose first line is a header. Every later line with at
// least one non-blank cell becomes a Row. Short lines leave their missing
// columns out of the Row; cells beyond the header are dropped.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", ErrMalformedCSV, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
		}
		if row := toRow(header, rec); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func toRow(header, rec []string) Row {
	row := make(Row, len(header))
	blank := true
	for i, cell := range rec {
		if i >= len(header) {
			break
		}
		cell = strings.TrimSpace(cell)
		if cell != "" {
			blank = false
		}
		if header[i] == "" {
			continue
		}
		row[header[i]] = cell
	}
	if blank {
		return nil
	}
	return row
}

// Partial maps a Row onto a record without applying defaults. Unknown columns
// are ignored.
func (r Row) Partial() domain.Transaction {
	return domain.Transaction{
		ID:       r[ColID],
		User:     r[ColUser],
		Amount:   r[ColAmount],
		Status:   r[ColStatus],
		Risk:     r[ColRisk],
		Method:   r[ColMethod],
		Date:     r[ColDate],
		Location: r[ColLocation],
	}
}

// Without returns a copy of r lacking col.
func (r Row) Without(col string) Row {
	out := make(Row, len(r))
	for k, v := range r {
		if k != col {
			out[k] = v
		}
	}
	return out
}

// Normalize turns a parsed Row into a complete record, defaulting blank
// fields. A blank id is drawn from ids.
func Normalize(row Row, now time.Time, ids domain.IDSource) (domain.Transaction, error) {
	return domain.NewImported(row.Partial(), now, ids)
}

// Serialize writes the header and one line per record.
func Serialize(w io.Writer, records []domain.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, t := range records {
		if err := cw.Write(Marshal(t)); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Marshal converts a record to a CSV line in Header order.
func Marshal(t domain.Transaction) []string {
	return []string{t.ID, t.User, t.Amount, t.Status, t.Risk, t.Method, t.Date, t.Location}
}
