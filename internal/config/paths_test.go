package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~", home},
		{"~/x/y.cue", filepath.Join(home, "x", "y.cue")},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetConfigFile(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/custom.yaml")
	path, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)

	t.Setenv(EnvConfig, "")
	path, err = GetConfigFile()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, filepath.Join(".hwcompose", "config.yaml")), path)
}

func TestResolveRelative(t *testing.T) {
	got, err := resolveRelative("/etc/hw", "boards/zybo.cue")
	require.NoError(t, err)
	assert.Equal(t, "/etc/hw/boards/zybo.cue", got)

	got, err = resolveRelative("/etc/hw", "/abs.cue")
	require.NoError(t, err)
	assert.Equal(t, "/abs.cue", got)

	got, err = resolveRelative("", "rel.cue")
	require.NoError(t, err)
	assert.Equal(t, "rel.cue", got)
}
