package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lintang-b-s/osm2prj/pkg/contam"
	"github.com/lintang-b-s/osm2prj/pkg/converter"
	"github.com/lintang-b-s/osm2prj/pkg/demo"
	"github.com/lintang-b-s/osm2prj/pkg/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCommandUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: []string{}},
		{name: "two arguments", args: []string{"a.osm", "b.osm"}},
		{name: "flag and path", args: []string{"--help", "a.osm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), converter.OUTPUT_FILE)
			var stderr bytes.Buffer

			code := newCommand(zap.NewNop(), output, tt.args, &stderr)

			assert.Equal(t, 1, code)
			assert.Equal(t, converter.MSG_USAGE+"\n", stderr.String())
			assert.NoFileExists(t, output)
		})
	}
}

func TestCommandLoadFailure(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, converter.OUTPUT_FILE)
	var stderr bytes.Buffer

	code := newCommand(zap.NewNop(), output, []string{filepath.Join(dir, "missing.osm")}, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, converter.MSG_LOAD_FAILED+"\n", stderr.String())
	assert.NoFileExists(t, output)
}

func TestCommandCompletionNamesAreInputPaths(t *testing.T) {
	for _, name := range []string{"__complete", "__completeNoDesc"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			wd, err := os.Getwd()
			require.NoError(t, err)
			require.NoError(t, os.Chdir(dir))
			t.Cleanup(func() { _ = os.Chdir(wd) })
			output := filepath.Join(dir, converter.OUTPUT_FILE)
			var stderr bytes.Buffer

			code := newCommand(zap.NewNop(), output, []string{name}, &stderr)

			assert.Equal(t, 1, code)
			assert.Equal(t, converter.MSG_LOAD_FAILED+"\n", stderr.String())
			assert.NoFileExists(t, output)
		})
	}
}

func TestCommandConvertsDemoModel(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "CONTAMDemo.osm")
	m, err := demo.LoadTemplate(zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, demo.BuildDemoModel(m))
	require.NoError(t, m.Save(input, false))

	output := filepath.Join(dir, converter.OUTPUT_FILE)
	var stderr bytes.Buffer

	code := newCommand(zap.NewNop(), output, []string{input}, &stderr)

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr.String())
	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), contam.PRJ_HEADER))
	assert.Contains(t, string(content), "26 ! flow paths:")
	assert.True(t, strings.HasSuffix(string(content), "\n"))
}

func TestCommandTranslationFailure(t *testing.T) {
	dir := t.TempDir()
	// loads fine but has no thermal zones
	input := filepath.Join(dir, "empty.osm")
	require.NoError(t, osm.NewModel(osm.CURRENT_VERSION).Save(input, false))

	output := filepath.Join(dir, converter.OUTPUT_FILE)
	var stderr bytes.Buffer

	code := newCommand(zap.NewNop(), output, []string{input}, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, converter.MSG_TRANSLATION_FAILED+"\n", stderr.String())
	assert.NoFileExists(t, output)
}
