package main

import (
	"bytes"
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/lvm/isa"
)

func TestPredefines(t *testing.T) {
	assert := assert.New(t)

	pd := predefines{}
	assert.NoError(pd.Set("ACC=10"))
	assert.NoError(pd.Set("EMPTY="))
	assert.Error(pd.Set("NOVALUE"))
	assert.Error(pd.Set("=1"))

	assert.Equal(predefines{"ACC": "10", "EMPTY": ""}, pd)
}

func TestLoadWrite(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	source := filepath.Join(dir, "sum.lvm")
	err := os.WriteFile(source, []byte("LOAD $ACC #500\nADD $ACC $ACC $1\n"), 0o644)
	assert.NoError(err)

	defines := maps.All(map[string]string{"ACC": "10"})
	lst, err := load(source, "", isa.FORMAT_DECIMAL, defines, false)
	assert.NoError(err)

	out := &bytes.Buffer{}
	assert.NoError(write(out, lst, isa.FORMAT_HEX_UPPER))
	assert.Equal("LOAD 0A 01F4\nADD 0A 0A 01\n", out.String())

	out.Reset()
	assert.NoError(write(out, lst, isa.FORMAT_BINARY))

	binary := filepath.Join(dir, "sum.bin")
	assert.NoError(os.WriteFile(binary, out.Bytes(), 0o644))

	reloaded, err := load("", binary, isa.FORMAT_DECIMAL, defines, false)
	assert.NoError(err)
	assert.True(lst.Program().Equal(reloaded.Program()))

	empty, err := load("", "", isa.FORMAT_DECIMAL, defines, false)
	assert.NoError(err)
	out.Reset()
	assert.NoError(write(out, empty, isa.FORMAT_DECIMAL))
	assert.Equal("", out.String())

	_, err = load(filepath.Join(dir, "missing.lvm"), "", isa.FORMAT_DECIMAL, defines, false)
	assert.Error(err)
}
