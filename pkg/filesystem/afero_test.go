// pkg/filesystem/afero_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero MemMapFs
// PURPOSE: Test the afero backed filesystem implementation

package filesystem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/anek/pkg/filesystem"
)

func TestAferoFS_ReadWrite(t *testing.T) {
	fs := filesystem.NewMemory()

	require.NoError(t, fs.MkdirAll("/project/.anek/inputs", 0755))
	require.NoError(t, fs.WriteFile("/project/.anek/inputs/prod", []byte("env=prod\n"), 0644))

	data, err := fs.ReadFile("/project/.anek/inputs/prod")
	require.NoError(t, err)
	assert.Equal(t, "env=prod\n", string(data))

	_, err = fs.ReadFile("/project/.anek/inputs")
	assert.Error(t, err, "reading a directory should fail")
}

func TestAferoFS_ReadDirSorted(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/d/sub", 0755))
	for _, name := range []string{"/d/c", "/d/a", "/d/b"} {
		require.NoError(t, fs.WriteFile(name, nil, 0644))
	}

	entries, err := fs.ReadDir("/d")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a", "b", "c", "sub"}, names)
	assert.True(t, entries[3].IsDir())
}

func TestAferoFS_MkdirExisting(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.Mkdir("/x", 0755))
	assert.Error(t, fs.Mkdir("/x", 0755))
}
