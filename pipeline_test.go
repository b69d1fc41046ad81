package rawimg

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherScan(t *testing.T) {
	db, dir := tempDB(t)
	defer os.RemoveAll(dir)
	defer db.Close()

	// Two files in a nested tree, one known to the database, plus a
	// hidden file that must be skipped.
	sub := filepath.Join(dir, "dumps")
	require.NoError(t, os.Mkdir(sub, 0755))

	known := filepath.Join(sub, "logo.bin")
	require.NoError(t, ioutil.WriteFile(known, []byte("123456789"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub, "noise.bin"), []byte("something else"), 0644))
	require.NoError(t, ioutil.WriteFile(filepath.Join(sub, ".hidden"), []byte("123456789"), 0644))

	req := &Request{Width: 3, Height: 3, Format: L8, Layout: Linear}
	require.NoError(t, db.Save("logo", req))
	require.NoError(t, db.AddChecksum("logo", "CBF43926"))

	m := NewMatcher(db, log.New(ioutil.Discard, "", 0))

	matches, err := m.Scan(sub)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, known, matches[0].File)
	assert.Equal(t, "logo", matches[0].Preset)
	assert.Equal(t, req, matches[0].Request)
}

func TestMatcherScanMissingDirectory(t *testing.T) {
	db, dir := tempDB(t)
	defer os.RemoveAll(dir)
	defer db.Close()

	m := NewMatcher(db, log.New(ioutil.Discard, "", 0))

	_, err := m.Scan(filepath.Join(dir, "does-not-exist"))
	assert.Error(t, err)
}
