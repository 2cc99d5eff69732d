package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := DefaultParser().Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, 2.0, cfg.Scheduler.DefaultProbeRatioUnconstrained)
	assert.Equal(t, 2.0, cfg.Scheduler.DefaultProbeRatioConstrained)
	assert.False(t, cfg.Scheduler.SpreadTaskCaching)

	state, err := cfg.Cluster.Create()
	require.NoError(t, err)
	assert.True(t, state.WatchApplication("appA"), "default mode is standalone")
}

func TestParseConfigBased(t *testing.T) {
	text := []byte(`{
		"Cluster": {"Type": "configbased", "Nodes": ["host1:20502", "host2:20502"]},
		"Scheduler": {"DefaultProbeRatioUnconstrained": 1.5, "SpreadTaskCaching": true}
	}`)
	cfg, err := DefaultParser().Parse(text)
	require.NoError(t, err)

	assert.Equal(t, 1.5, cfg.Scheduler.DefaultProbeRatioUnconstrained)
	assert.Equal(t, 2.0, cfg.Scheduler.DefaultProbeRatioConstrained)
	assert.True(t, cfg.Scheduler.SpreadTaskCaching)

	state, err := cfg.Cluster.Create()
	require.NoError(t, err)
	assert.Len(t, state.Backends("anyApp"), 2)
}

func TestParseProductionRequiresURL(t *testing.T) {
	cfg, err := DefaultParser().Parse([]byte(`{"Cluster": {"Type": "production"}}`))
	require.NoError(t, err)
	_, err = cfg.Cluster.Create()
	assert.Error(t, err, "production mode without a membership source is unusable")
}

func TestParseUnknownModeFatal(t *testing.T) {
	_, err := DefaultParser().Parse([]byte(`{"Cluster": {"Type": "kubernetes"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported deployment mode")
}

func TestParseMalformedJson(t *testing.T) {
	_, err := DefaultParser().Parse([]byte(`{not json`))
	assert.Error(t, err)
}
