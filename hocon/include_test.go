package hocon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krakenconfig/hocon/internal/mapfs"
)

func TestIncludeFileMergesIntoObject(t *testing.T) {
	loader := &FilesystemLoader{FS: mapfs.MapFS{
		"defaults.conf": "timeout = 30\nretries = 3\n",
	}}
	cfg, err := ParseString(`
		include "defaults.conf"
		name = svc
	`, Options{Loader: loader})
	require.NoError(t, err)

	timeout, err := cfg.GetInt("timeout")
	require.NoError(t, err)
	assert.Equal(t, int64(30), timeout)

	name, err := cfg.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "svc", name)
}

func TestIncludeOptionalMissingFileIsSkipped(t *testing.T) {
	loader := &FilesystemLoader{FS: mapfs.MapFS{}}
	cfg, err := ParseString(`
		include file("missing.conf")
		name = svc
	`, Options{Loader: loader})
	require.NoError(t, err)
	assert.False(t, cfg.Has("timeout"))
	name, err := cfg.GetString("name")
	require.NoError(t, err)
	assert.Equal(t, "svc", name)
}

func TestIncludeRequiredMissingFileIsError(t *testing.T) {
	loader := &FilesystemLoader{FS: mapfs.MapFS{}}
	_, err := ParseString(`include required(file("missing.conf"))`, Options{Loader: loader})
	require.Error(t, err)
}

func TestIncludeIntoListExtendsElements(t *testing.T) {
	loader := &FilesystemLoader{FS: mapfs.MapFS{
		"items.conf": "[1, 2]",
	}}
	cfg, err := ParseString(`
		items = [
			0
			include "items.conf"
		]
	`, Options{Loader: loader})
	require.NoError(t, err)
	lst, err := cfg.GetList("items")
	require.NoError(t, err)
	require.Len(t, lst, 3)
	assert.Equal(t, int64(0), lst[0].Int)
	assert.Equal(t, int64(1), lst[1].Int)
	assert.Equal(t, int64(2), lst[2].Int)
}
