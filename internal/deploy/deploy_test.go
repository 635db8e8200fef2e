package deploy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestDeployStripsOutputTreePrefix(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "build-out", "m", "a.txt")
	writeFile(t, out, "hello")

	dest := filepath.Join(root, "deployed")
	err := Deploy(root, []string{out}, dest, false)
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "m", "a.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestDeployCleanRemovesExistingDestination(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "build-out", "m", "a.txt")
	writeFile(t, out, "hello")

	dest := filepath.Join(root, "deployed")
	writeFile(t, filepath.Join(dest, "stale.txt"), "old")

	err := Deploy(root, []string{out}, dest, true)
	assert.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(dest, "stale.txt"))
	assert.FileExists(t, filepath.Join(dest, "m", "a.txt"))
}

func TestDeployCleanToleratesMissingDestination(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, "build-out", "m", "a.txt")
	writeFile(t, out, "hello")

	dest := filepath.Join(root, "does-not-exist-yet")
	err := Deploy(root, []string{out}, dest, true)
	assert.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "m", "a.txt"))
}
