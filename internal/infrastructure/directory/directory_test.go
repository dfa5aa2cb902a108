package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colleges.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleCSV = `College Name,Email Domain
Alpha College,@alpha.edu
"Beta Institute, Downtown",BETA.EDU
Gamma Open University,
Alpha College,@alpha.edu
`

func TestLoad_ParsesHeaderAndRows(t *testing.T) {
	d, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 4, d.Len())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestLoad_MissingColumns(t *testing.T) {
	_, err := Load(writeCSV(t, "a,b\n1,2\n"))
	require.Error(t, err)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	d, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	e, ok := d.Lookup("alpha COLLEGE")
	require.True(t, ok)
	assert.Equal(t, "Alpha College", e.Name)
	assert.Equal(t, "alpha.edu", e.Domain, "domain is lower-cased and @-stripped")
}

func TestLookup_QuotedNameWithComma(t *testing.T) {
	d, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	e, ok := d.Lookup("Beta Institute, Downtown")
	require.True(t, ok)
	assert.Equal(t, "beta.edu", e.Domain)
}

func TestLookup_OpenEnrollmentDomain(t *testing.T) {
	d, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	e, ok := d.Lookup("Gamma Open University")
	require.True(t, ok)
	assert.Empty(t, e.Domain)
}

func TestLookup_NotFound(t *testing.T) {
	d, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	_, ok := d.Lookup("Delta Tech")
	assert.False(t, ok)
}

func TestSearch_DedupesAndLimits(t *testing.T) {
	d, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	results := d.Search("alpha", 10)
	assert.Equal(t, []string{"Alpha College"}, results, "duplicate rows collapse to one result")

	results = d.Search("e", 2)
	assert.Len(t, results, 2)
}
