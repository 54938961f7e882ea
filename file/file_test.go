package file

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateThenOpen(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "song.txt")

	w, err := Create(path, os.Stdout)
	assert.NoError(err)
	_, err = io.WriteString(w, "C  G\nHello\n")
	assert.NoError(err)
	assert.NoError(w.Close())

	r, err := Open(path)
	assert.NoError(err)
	defer r.Close()
	data, err := io.ReadAll(r)
	assert.NoError(err)
	assert.Equal("C  G\nHello\n", string(data))
}

func TestDashMeansStdio(t *testing.T) {
	assert := assert.New(t)

	r, err := Open("-")
	assert.NoError(err)
	assert.NoError(r.Close())

	var stdout bytes.Buffer
	w, err := Create("", &stdout)
	assert.NoError(err)
	_, err = io.WriteString(w, "D  A\n")
	assert.NoError(err)
	assert.NoError(w.Close())
	assert.Equal("D  A\n", stdout.String())

	w, err = Create("-", &stdout)
	assert.NoError(err)
	_, err = io.WriteString(w, "Hello\n")
	assert.NoError(err)
	assert.Equal("D  A\nHello\n", stdout.String())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
