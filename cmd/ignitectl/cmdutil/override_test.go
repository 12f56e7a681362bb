package cmdutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/ignitego/pkg/igniteclient"
)

func TestParseConfigOverrides(t *testing.T) {
	overrides, err := ParseConfigOverrides([]string{"Backups=2", "OnHeapCacheEnabled=false"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), overrides["Backups"])
	assert.Equal(t, false, overrides["OnHeapCacheEnabled"])
}

func TestParseConfigOverrides_RejectsMissingEquals(t *testing.T) {
	_, err := ParseConfigOverrides([]string{"Backups"})
	assert.Error(t, err)
}

func TestApplyConfigOverrides(t *testing.T) {
	base := igniteclient.CacheConfiguration{Name: "mycache"}
	overrides, err := ParseConfigOverrides([]string{"Backups=3", "OnHeapCacheEnabled=true"})
	require.NoError(t, err)

	cfg, err := ApplyConfigOverrides(base, overrides)
	require.NoError(t, err)
	assert.Equal(t, "mycache", cfg.Name)
	assert.EqualValues(t, 3, cfg.Backups)
	assert.True(t, cfg.OnHeapCacheEnabled)
}

func TestApplyConfigOverrides_NoOverridesReturnsBaseUnchanged(t *testing.T) {
	base := igniteclient.CacheConfiguration{Name: "mycache", Backups: 1}
	cfg, err := ApplyConfigOverrides(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)
}
