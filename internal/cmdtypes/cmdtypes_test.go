package cmdtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IObundle/versat-ai/internal/config"
)

func TestGlobalConfig_BeforeStartup(t *testing.T) {
	var g *GlobalConfig
	assert.Nil(t, g.DescriptionFiles())
	assert.Equal(t, config.DefaultJobs, g.Jobs())
	assert.Equal(t, "yaml", g.OutputFormat())
}

func TestGlobalConfig_Resolved(t *testing.T) {
	resolved, err := config.Resolve(config.ResolveOptions{
		OutputFlag:       "json",
		JobsFlag:         3,
		DescriptionFlags: []string{"board.cue"},
	})
	require.NoError(t, err)

	g := &GlobalConfig{Resolved: resolved}
	assert.Equal(t, []string{"board.cue"}, g.DescriptionFiles())
	assert.Equal(t, 3, g.Jobs())
	assert.Equal(t, "json", g.OutputFormat())
}
