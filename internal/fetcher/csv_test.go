package fetcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadCSVCommaSeparated(t *testing.T) {
	path := writeTemp(t, "users.csv", []byte("Prenom,Nom\njean,dupont\nmarie,durand\n"))

	table, err := ReadCSV(path, CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Prenom", "Nom"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"jean", "dupont"}, table.Rows[0])
}

func TestReadCSVSniffsSemicolon(t *testing.T) {
	path := writeTemp(t, "users.csv", []byte("Prenom;Nom;Ville\njean;dupont;Paris\n"))

	table, err := ReadCSV(path, CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Prenom", "Nom", "Ville"}, table.Columns)
	assert.Equal(t, []string{"jean", "dupont", "Paris"}, table.Rows[0])
}

func TestReadCSVSniffsTab(t *testing.T) {
	path := writeTemp(t, "users.tsv", []byte("Prenom\tNom\njean\tdupont\n"))

	table, err := ReadCSV(path, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Prenom", "Nom"}, table.Columns)
}

func TestReadCSVStripsBOM(t *testing.T) {
	path := writeTemp(t, "users.csv", append([]byte("\xef\xbb\xbf"), []byte("Prenom,Nom\njean,dupont\n")...))

	table, err := ReadCSV(path, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Prenom", table.Columns[0])
}

func TestReadCSVCharsetDecode(t *testing.T) {
	// "Prénom" in latin1: é is 0xE9.
	raw := []byte{'P', 'r', 0xE9, 'n', 'o', 'm', ',', 'N', 'o', 'm', '\n', 'j', 'e', 'a', 'n', ',', 'd', 'u', 'p', 'o', 'n', 't', '\n'}
	path := writeTemp(t, "latin1.csv", raw)

	table, err := ReadCSV(path, CSVOptions{Charset: "latin1"})
	require.NoError(t, err)
	assert.Equal(t, "Prénom", table.Columns[0])
}

func TestReadCSVUnknownCharset(t *testing.T) {
	path := writeTemp(t, "users.csv", []byte("a,b\n1,2\n"))

	_, err := ReadCSV(path, CSVOptions{Charset: "pas-un-charset"})
	assert.Error(t, err)
}

func TestReadCSVPadsShortRows(t *testing.T) {
	path := writeTemp(t, "users.csv", []byte("Prenom,Nom,Ville\njean,dupont\n"))

	table, err := ReadCSV(path, CSVOptions{})
	require.NoError(t, err)
	require.Len(t, table.Rows[0], 3)
	assert.Equal(t, "", table.Rows[0][2])
}

func TestReadCSVForcedSeparator(t *testing.T) {
	path := writeTemp(t, "users.csv", []byte("a|b\n1|2\n"))

	table, err := ReadCSV(path, CSVOptions{Separator: '|'})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, table.Columns)
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"), CSVOptions{})
	assert.Error(t, err)
}
