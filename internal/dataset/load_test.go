package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `# Index, Value
A5,3
A20,7
A15,10
A7,2
A13,4
A12,5
`

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"# Index":   "index",
		" Value ":   "value",
		"VALUE":     "value",
		"\ufeffkey": "key",
		"Row #Id":   "rowid",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestParseNormalizedHeaders(t *testing.T) {
	ds, err := Parse(strings.NewReader(sampleCSV), ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Len())
	assert.Equal(t, 0, ds.Dropped)
	assert.Equal(t, "A5", ds.Records()[0].Key)
	assert.Equal(t, 10.0, ds.Max())
}

func TestParseExactHeaders(t *testing.T) {
	in := "Index,Value\nA1,1\nA2,2\n"
	ds, err := Parse(strings.NewReader(in), ParseOptions{HeaderMode: Exact, KeyColumn: "Index", ValueColumn: "Value"})
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())

	_, err = Parse(strings.NewReader(in), ParseOptions{HeaderMode: Exact})
	require.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "index")
}

func TestParseDropsNonNumericRows(t *testing.T) {
	in := "index,value\nA1,1\nA2,abc\nA3,\nA4,NaN\nA5,Inf\nA6, 2.5 \nA7\n"
	ds, err := Parse(strings.NewReader(in), ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A1", "A6"}, ds.Keys())
	assert.Equal(t, 5, ds.Dropped)
	assert.Equal(t, 2.5, ds.Records()[1].Value)
}

func TestParseEmpty(t *testing.T) {
	ds, err := Parse(strings.NewReader(""), ParseOptions{})
	require.ErrorIs(t, err, ErrEmptyDataset)
	assert.Equal(t, 0, ds.Len())

	ds, err = Parse(strings.NewReader("index,value\n"), ParseOptions{})
	require.ErrorIs(t, err, ErrEmptyDataset)
	assert.Equal(t, 0, ds.Len())

	ds, err = Parse(strings.NewReader("index,value\na,x\nb,y\n"), ParseOptions{})
	require.ErrorIs(t, err, ErrEmptyDataset)
	assert.Equal(t, 2, ds.Dropped)
}

func TestParseDelimiter(t *testing.T) {
	ds, err := Parse(strings.NewReader("index;value\nA;1\n"), ParseOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	ds, err := Load(context.Background(), Source{Location: path})
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Len())

	_, err = Load(context.Background(), Source{Location: filepath.Join(t.TempDir(), "missing.csv")})
	require.ErrorIs(t, err, ErrFetch)
}

func TestLoadFromStdin(t *testing.T) {
	ds, err := Load(context.Background(), Source{Location: "-", Stdin: strings.NewReader(sampleCSV)})
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Len())
}

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	ds, err := Load(context.Background(), Source{Location: srv.URL + "/table.csv", Client: srv.Client()})
	require.NoError(t, err)
	assert.Equal(t, 6, ds.Len())

	_, err = Load(context.Background(), Source{Location: srv.URL + "/missing.csv", Client: srv.Client()})
	require.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Fetch(ctx, srv.URL, srv.Client())
	require.ErrorIs(t, err, ErrFetch)
}

func TestFetchEmptyLocation(t *testing.T) {
	_, err := Fetch(context.Background(), " ", nil)
	require.ErrorIs(t, err, ErrFetch)
}
