package main

import (
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/osm2prj/pkg/osm"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerate(t *testing.T) {
	output := filepath.Join(t.TempDir(), DEFAULT_OUTPUT_PATH)

	require.NoError(t, generate(zap.NewNop(), "", output))

	m, err := osm.NewVersionTranslator(zap.NewNop()).LoadModel(output)
	require.NoError(t, err)
	assert.Len(t, m.ThermalZones(), 4)
	assert.Len(t, m.Spaces(), 4)
	assert.Len(t, m.AirLoops(), 1)
}

func TestGenerateFallsBackToDefaultTemplate(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.osm")

	require.NoError(t, generate(zap.NewNop(), filepath.Join(dir, "missing.osm"), output))
	assert.FileExists(t, output)
}

func TestGenerateOnGeneratedTemplate(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "template.osm")
	require.NoError(t, generate(zap.NewNop(), "", template))

	// a second demo building on top of the first one
	output := filepath.Join(dir, "twice.osm")
	require.NoError(t, generate(zap.NewNop(), template, output))
	m, err := osm.NewVersionTranslator(zap.NewNop()).LoadModel(output)
	require.NoError(t, err)
	assert.Len(t, m.Spaces(), 8)
}

func TestFlags(t *testing.T) {
	v := viper.New()
	cmd := newCommand(v)
	require.NoError(t, cmd.ParseFlags([]string{"-i", "in.osm", "--output-path", "out.osm"}))
	assert.Equal(t, "in.osm", v.GetString("input-path"))
	assert.Equal(t, "out.osm", v.GetString("output-path"))

	v = viper.New()
	_ = newCommand(v)
	assert.Equal(t, DEFAULT_OUTPUT_PATH, v.GetString("output-path"))
}

func TestEnvironmentDefaults(t *testing.T) {
	t.Setenv("DEMOMODEL_OUTPUT_PATH", "from-env.osm")
	v := viper.New()
	_ = newCommand(v)
	assert.Equal(t, "from-env.osm", v.GetString("output-path"))
}
