package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdFlags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"config", "compact", "theme", "out", "debug", "log-file"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}), "at most one file")
	assert.NoError(t, cmd.Args(cmd, []string{"a"}))
}

func TestOpenDocumentSample(t *testing.T) {
	doc, err := openDocument(nil)
	require.NoError(t, err)

	assert.Empty(t, doc.Path())
	assert.Len(t, doc.Items(), 4)
}

func TestOpenDocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[item]]\nname = \"Depth\"\nvalue = 3\n"), 0o644))

	doc, err := openDocument([]string{path})
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path())
	assert.Equal(t, "Depth", doc.Items()[0].Name)
}

func TestOpenDocumentMissingFile(t *testing.T) {
	_, err := openDocument([]string{filepath.Join(t.TempDir(), "nope.toml")})
	assert.Error(t, err)
}
