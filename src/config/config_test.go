package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfiguration(t *testing.T) {
	c := Default()
	assert.Equal(t, "build-out", c.Build.OutDir)
	assert.Equal(t, 0, c.Build.Workers)
	assert.Equal(t, ".plzcore-cache", c.Cache.Dir)
}

func TestReadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Read(filepath.Join(t.TempDir(), "nope"+ConfigFileName))
	assert.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestReadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	contents := "[build]\nworkers = 4\noutdir = out\n[cache]\ndir = .cache\n"
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	c, err := Read(path)
	assert.NoError(t, err)
	assert.Equal(t, 4, c.Build.Workers)
	assert.Equal(t, "out", c.Build.OutDir)
	assert.Equal(t, ".cache", c.Cache.Dir)
}

func TestReadMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	assert.NoError(t, os.WriteFile(path, []byte("not valid ini [["), 0644))

	_, err := Read(path)
	assert.Error(t, err)
}
