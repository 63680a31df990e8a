package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleResolver_CustomModuleWins(t *testing.T) {
	resolver := NewModuleResolver()

	name, err := resolver.ResolveModuleName("github.com/myorg/myapp")
	require.NoError(t, err)
	assert.Equal(t, "github.com/myorg/myapp", name)
}

func TestModuleResolver_ReadsGoMod(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "go.mod"), "module github.com/example/fixture\n\ngo 1.25\n")

	nested := filepath.Join(tempDir, "internal", "proxies")
	require.NoError(t, os.MkdirAll(nested, 0755))

	// go.mod lookup walks up from the working directory
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	resolver := NewModuleResolver()
	name, err := resolver.ResolveModuleName("")
	require.NoError(t, err)
	assert.Equal(t, "github.com/example/fixture", name)
}

func TestModuleResolver_BrokenGoMod(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "go.mod"), "not a module file\n")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	resolver := NewModuleResolver()
	_, err = resolver.ResolveModuleName("")
	assert.Error(t, err)
}
