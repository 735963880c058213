// internal/dataset/load.go
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mwiater/tablechart/internal/logging"
)

var (
	// ErrFetch wraps every failure to obtain or decode the source table.
	ErrFetch = errors.New("fetch failed")
	// ErrEmptyDataset means no row survived numeric coercion.
	ErrEmptyDataset = errors.New("dataset is empty")
)

// HeaderMode selects how header cells are matched against column names.
type HeaderMode int

const (
	// Normalize lowercases headers and strips whitespace and '#' before matching.
	Normalize HeaderMode = iota
	// Exact matches header cells byte for byte.
	Exact
)

// ParseOptions describes the shape of the source table.
type ParseOptions struct {
	Delimiter   rune
	HeaderMode  HeaderMode
	KeyColumn   string
	ValueColumn string
}

// Source names a table and how to read it.
type Source struct {
	Location string
	Client   *http.Client
	Stdin    io.Reader
	Options  ParseOptions
}

// Load fetches and parses src. On ErrEmptyDataset the parsed (empty) dataset
// is still returned so callers can report the drop count.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	raw, err := fetch(ctx, src)
	if err != nil {
		logging.LogLoad(src.Location, 0, 0, err)
		return nil, err
	}
	ds, err := Parse(bytes.NewReader(raw), src.Options)
	kept, dropped := 0, 0
	if ds != nil {
		kept, dropped = ds.Len(), ds.Dropped
	}
	logging.LogLoad(src.Location, kept, dropped, err)
	return ds, err
}

// Fetch reads location: "-" is stdin, http and https URLs are fetched with
// client (http.DefaultClient when nil), anything else is a file path.
func Fetch(ctx context.Context, location string, client *http.Client) ([]byte, error) {
	return fetch(ctx, Source{Location: location, Client: client})
}

func fetch(ctx context.Context, src Source) ([]byte, error) {
	loc := strings.TrimSpace(src.Location)
	switch {
	case loc == "":
		return nil, fmt.Errorf("%w: no source given", ErrFetch)
	case loc == "-":
		in := src.Stdin
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("%w: read stdin: %v", ErrFetch, err)
		}
		return data, nil
	case strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://"):
		return fetchHTTP(ctx, loc, src.Client)
	default:
		data, err := os.ReadFile(loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		return data, nil
	}
}

func fetchHTTP(ctx context.Context, url string, client *http.Client) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request for %s: %v", ErrFetch, url, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrFetch, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: status %s", ErrFetch, url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body of %s: %v", ErrFetch, url, err)
	}
	return data, nil
}

// NormalizeHeader lowercases h and removes whitespace and '#'.
func NormalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.TrimPrefix(h, "\ufeff") {
		if r == '#' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// Parse reads a delimited table whose first row is a header. Rows whose value
// is empty or not a finite number are dropped and counted.
func Parse(r io.Reader, opts ParseOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return New(nil), ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrFetch, err)
	}

	keyIdx, valueIdx, err := locateColumns(header, opts)
	if err != nil {
		return nil, err
	}

	var records []Record
	dropped := 0
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFetch, line, err)
		}
		if keyIdx >= len(row) || valueIdx >= len(row) {
			dropped++
			logging.LogDebug("dropping line %d: %d fields", line, len(row))
			continue
		}
		value, ok := coerce(row[valueIdx])
		if !ok {
			dropped++
			logging.LogDebug("dropping line %d: value %q is not numeric", line, row[valueIdx])
			continue
		}
		records = append(records, Record{Key: row[keyIdx], Value: value})
	}

	ds := New(records)
	ds.Dropped = dropped
	if ds.Len() == 0 {
		return ds, ErrEmptyDataset
	}
	return ds, nil
}

func locateColumns(header []string, opts ParseOptions) (int, int, error) {
	keyName, valueName := opts.KeyColumn, opts.ValueColumn
	if keyName == "" {
		keyName = "index"
	}
	if valueName == "" {
		valueName = "value"
	}
	match := func(cell, want string) bool {
		if opts.HeaderMode == Exact {
			return cell == want
		}
		return NormalizeHeader(cell) == NormalizeHeader(want)
	}

	keyIdx, valueIdx := -1, -1
	for i, cell := range header {
		if keyIdx < 0 && match(cell, keyName) {
			keyIdx = i
		}
		if valueIdx < 0 && match(cell, valueName) {
			valueIdx = i
		}
	}
	var missing []string
	if keyIdx < 0 {
		missing = append(missing, keyName)
	}
	if valueIdx < 0 {
		missing = append(missing, valueName)
	}
	if len(missing) > 0 {
		return -1, -1, fmt.Errorf("%w: header %q has no column %s", ErrFetch, header, strings.Join(missing, ", "))
	}
	return keyIdx, valueIdx, nil
}

func coerce(field string) (float64, bool) {
	s := strings.TrimSpace(field)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
