package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeTempFile(t, []byte("date,revenue,region\n2024-01-01,100,North\n2024-01-02,200,South\n"))

	ds, err := Load(path, nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"date", "revenue", "region"}, ds.Columns)
	assert.Len(t, ds.Rows, 2)
	assert.Equal(t, "North", ds.Rows[0]["region"])

	v, ok := ds.Rows[1].Float("revenue")
	assert.True(t, ok)
	assert.Equal(t, 200.0, v)
}

func TestLoadCustomDelimiter(t *testing.T) {
	path := writeTempFile(t, []byte("date;revenue\n2024-01-01;100\n"))

	ds, err := Load(path, map[string]string{"delimiter": ";"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"date", "revenue"}, ds.Columns)
	assert.Equal(t, "100", ds.Rows[0]["revenue"])
}

func TestLoadLatin1Encoding(t *testing.T) {
	// "Zürich" with the u-umlaut encoded as latin-1 byte 0xFC.
	content := []byte("city,revenue\nZ\xfcrich,100\n")
	path := writeTempFile(t, content)

	ds, err := Load(path, map[string]string{"encoding": "latin-1"})
	assert.NoError(t, err)
	assert.Equal(t, "Zürich", ds.Rows[0]["city"])
}

func TestLoadUnsupportedEncoding(t *testing.T) {
	path := writeTempFile(t, []byte("a\n1\n"))

	_, err := Load(path, map[string]string{"encoding": "ebcdic"})
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTempFile(t, nil)

	ds, err := Load(path, nil)
	assert.NoError(t, err)
	assert.True(t, ds.Empty())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.Error(t, err)
}

func TestLoadPadsShortRows(t *testing.T) {
	path := writeTempFile(t, []byte("a,b,c\n1,2\n"))

	ds, err := Load(path, nil)
	assert.NoError(t, err)
	assert.Equal(t, "", ds.Rows[0]["c"])
}

func TestRowFloat(t *testing.T) {
	row := Row{"revenue": " 42.5 ", "region": "North"}

	v, ok := row.Float("revenue")
	assert.True(t, ok)
	assert.Equal(t, 42.5, v)

	_, ok = row.Float("region")
	assert.False(t, ok)

	_, ok = row.Float("missing")
	assert.False(t, ok)
}

func TestRowTime(t *testing.T) {
	row := Row{"date": "2024-03-15", "bad": "not-a-date"}

	parsed, ok := row.Time("date")
	assert.True(t, ok)
	assert.Equal(t, 2024, parsed.Year())

	_, ok = row.Time("bad")
	assert.False(t, ok)
}

func TestSortedByDateChronological(t *testing.T) {
	ds := Dataset{
		Columns: []string{"date", "revenue"},
		Rows: []Row{
			{"date": "2024-01-03", "revenue": "3"},
			{"date": "2024-01-01", "revenue": "1"},
			{"date": "2024-01-02", "revenue": "2"},
		},
	}

	sorted := ds.SortedByDate("date")
	assert.Equal(t, "1", sorted[0]["revenue"])
	assert.Equal(t, "2", sorted[1]["revenue"])
	assert.Equal(t, "3", sorted[2]["revenue"])
	// The original stays untouched.
	assert.Equal(t, "3", ds.Rows[0]["revenue"])
}

func TestSortedByDateLexicographicFallback(t *testing.T) {
	ds := Dataset{
		Columns: []string{"period", "revenue"},
		Rows: []Row{
			{"period": "week-2", "revenue": "2"},
			{"period": "week-1", "revenue": "1"},
		},
	}

	sorted := ds.SortedByDate("period")
	assert.Equal(t, "week-1", sorted[0]["period"])
}
