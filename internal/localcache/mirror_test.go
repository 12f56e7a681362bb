package localcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirror_RecordAndLookup(t *testing.T) {
	m, err := Open(filepath.Join(t.TempDir(), "mirror"))
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	_, found, err := m.Lookup("mycache", "string:hello")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, m.Record("mycache", "string:hello", "world"))

	value, found, err := m.Lookup("mycache", "string:hello")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "world", value)
}

func TestMirror_KeysAreScopedPerCache(t *testing.T) {
	m, err := Open(filepath.Join(t.TempDir(), "mirror"))
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	require.NoError(t, m.Record("cache-a", "string:k", "a-value"))
	require.NoError(t, m.Record("cache-b", "string:k", "b-value"))

	va, _, err := m.Lookup("cache-a", "string:k")
	require.NoError(t, err)
	vb, _, err := m.Lookup("cache-b", "string:k")
	require.NoError(t, err)

	assert.Equal(t, "a-value", va)
	assert.Equal(t, "b-value", vb)
}
