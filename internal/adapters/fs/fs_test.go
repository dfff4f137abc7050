package fs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spvbuild/internal/adapters/fs"
	"go.trai.ch/spvbuild/internal/core/domain"
)

func TestOutputDir_EnsureDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "shaders", "bin")
	outputDir := fs.NewOutputDir()

	created, err := outputDir.EnsureDir(dir)
	require.NoError(t, err)
	assert.True(t, created)
	assert.DirExists(t, dir)

	// Second call is a no-op and keeps existing contents.
	marker := filepath.Join(dir, "shader2D.vert.spv")
	require.NoError(t, os.WriteFile(marker, []byte("old"), 0o600))

	created, err = outputDir.EnsureDir(dir)
	require.NoError(t, err)
	assert.False(t, created)
	assert.FileExists(t, marker)
}

func TestOutputDir_EnsureDir_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := fs.NewOutputDir().EnsureDir(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOutputDirCreateFailed.Error())
}

func TestOutputDir_Clean(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "bin")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shader2D.frag.spv"), []byte("x"), 0o600))

	outputDir := fs.NewOutputDir()
	require.NoError(t, outputDir.Clean(dir))
	assert.NoDirExists(t, dir)

	// Cleaning again is fine.
	require.NoError(t, outputDir.Clean(dir))
}

func TestVerifier_VerifyOutputs(t *testing.T) {
	tmpDir := t.TempDir()
	verifier := fs.NewVerifier()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.spv"), []byte("spirv"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b.spv"), []byte("spirv"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "dir.spv"), 0o750))

	tests := []struct {
		name    string
		outputs []string
		want    bool
	}{
		{name: "all relative outputs exist", outputs: []string{"a.spv", "b.spv"}, want: true},
		{name: "absolute output", outputs: []string{filepath.Join(tmpDir, "a.spv")}, want: true},
		{name: "missing output", outputs: []string{"a.spv", "missing.spv"}, want: false},
		{name: "directory is not an output", outputs: []string{"dir.spv"}, want: false},
		{name: "no outputs", outputs: nil, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := verifier.VerifyOutputs(tmpDir, tt.outputs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpDir := t.TempDir()
	hasher := fs.NewHasher()

	empty := filepath.Join(tmpDir, "empty.spv")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	digest, err := hasher.ComputeFileHash(empty)
	require.NoError(t, err)
	assert.Equal(t, "ef46db3751d8e999", digest)

	content := []byte{0x03, 0x02, 0x23, 0x07}
	path := filepath.Join(tmpDir, "shader2D.vert.spv")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	digest, err = hasher.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%016x", xxhash.Sum64(content)), digest)
	assert.Len(t, digest, 16)
}

func TestHasher_ComputeFileHash_Missing(t *testing.T) {
	_, err := fs.NewHasher().ComputeFileHash(filepath.Join(t.TempDir(), "missing.spv"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFileOpenFailed.Error())
}
