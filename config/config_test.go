package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	p := filepath.Join(t.TempDir(), "gocut.yaml")
	if err := os.WriteFile(p, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvPath, "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, "error", c.OutOfRange)
	assert.Equal(t, DefaultJobs, c.Jobs)
	assert.Equal(t, DefaultMaxRecordBytes, c.MaxRecordBytes)
}

func TestLoad_File(t *testing.T) {
	p := writeConfig(t, `
delimiter: ";"
output_delimiter: " "
permute: true
only_delimited: true
out_of_range: skip
jobs: 2
`)

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ";", c.Delimiter)
	assert.Equal(t, " ", c.OutputDelimiter)
	assert.True(t, c.Permute)
	assert.True(t, c.OnlyDelimited)
	assert.Equal(t, "skip", c.OutOfRange)
	assert.Equal(t, 2, c.Jobs)
	assert.Equal(t, DefaultMaxRecordBytes, c.MaxRecordBytes)
	assert.False(t, c.ZeroTerminated)
}

func TestLoad_FromEnv(t *testing.T) {
	p := writeConfig(t, "delimiter: \"\\t\"\n")
	t.Setenv(EnvPath, p)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "\t", c.Delimiter)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Parse([]byte("out_of_range: maybe\n"))
	assert.ErrorContains(t, err, "out_of_range")

	_, err = Parse([]byte("jobs: [1, 2\n"))
	assert.ErrorContains(t, err, "Failed to parse config")
}
