// Package dataset loads the file content handed to an analysis run. Input
// is CSV text, optionally wrapped in an LZ4 frame; content is read once per
// run and never retained beyond it.
package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pierrec/lz4/v4"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrEmpty     = errors.New("dataset is empty")
	ErrNoRecords = errors.New("dataset has no data rows")
)

// lz4FrameMagic is the little-endian magic number of an LZ4 frame.
var lz4FrameMagic = []byte{0x04, 0x22, 0x4d, 0x18}

// Dataset is one parsed input file.
type Dataset struct {
	// Fingerprint is the hex BLAKE2b-256 digest of the raw (decompressed)
	// content, used to correlate runs in the run log.
	Fingerprint string
	Columns     []string
	Records     [][]string
}

// NumericColumn is a column whose non-empty cells all parse as numbers.
type NumericColumn struct {
	Name   string
	Values []float64
}

// Load parses raw file content. LZ4-framed input is decompressed
// transparently before parsing.
func Load(data []byte) (*Dataset, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	if bytes.HasPrefix(data, lz4FrameMagic) {
		decompressed, err := decompress(data)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		data = decompressed
	}

	digest := blake2b.Sum256(data)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	if len(rows) < 2 {
		return nil, ErrNoRecords
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	return &Dataset{
		Fingerprint: hex.EncodeToString(digest[:]),
		Columns:     header,
		Records:     rows[1:],
	}, nil
}

func decompress(data []byte) ([]byte, error) {
	reader := lz4.NewReader(bytes.NewReader(data))
	var out bytes.Buffer
	if _, err := io.Copy(&out, reader); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// NumericColumns extracts the columns usable for statistics and plotting,
// in header order. A column qualifies when it has at least one value and
// every non-empty cell parses as a float.
func (d *Dataset) NumericColumns() []NumericColumn {
	var cols []NumericColumn

	for i, name := range d.Columns {
		values := make([]float64, 0, len(d.Records))
		numeric := true
		for _, rec := range d.Records {
			if i >= len(rec) {
				continue
			}
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				break
			}
			values = append(values, v)
		}
		if numeric && len(values) > 0 {
			cols = append(cols, NumericColumn{Name: name, Values: values})
		}
	}

	return cols
}
