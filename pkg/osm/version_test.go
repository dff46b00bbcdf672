package osm

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osm2prj/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func modelText(version string, objects ...string) string {
	var sb strings.Builder
	if version != "" {
		sb.WriteString("OS:Version, {00000000-0000-0000-0000-000000000001}, " + version + ";\n")
	}
	for _, obj := range objects {
		sb.WriteString(obj + "\n")
	}
	return sb.String()
}

func TestLoadModelVersions(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
		version string
	}{
		{name: "current", text: modelText(CURRENT_VERSION), version: CURRENT_VERSION},
		{name: "oldest", text: modelText(OLDEST_VERSION), version: CURRENT_VERSION},
		{name: "intermediate", text: modelText("1.5.2"), version: CURRENT_VERSION},
		{name: "byte order mark", text: "\ufeff" + modelText(CURRENT_VERSION), version: CURRENT_VERSION},
		{name: "lower case version type", text: "os:version, {00000000-0000-0000-0000-000000000001}, 1.5.2;\n", version: CURRENT_VERSION},
		{name: "newer", text: modelText("2.0.0"), wantErr: true},
		{name: "older", text: modelText("0.9.6"), wantErr: true},
		{name: "unreadable", text: modelText("latest"), wantErr: true},
		{name: "no version", text: modelText("", "OS:Building, {00000000-0000-0000-0000-000000000002}, B;"), wantErr: true},
		{name: "duplicate handle", text: modelText(CURRENT_VERSION, "OS:Building, {00000000-0000-0000-0000-000000000001}, B;"), wantErr: true},
		{name: "parse error", text: modelText(CURRENT_VERSION, "OS:Building, {00000000-0000-0000-0000-000000000002}"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewVersionTranslator(zap.NewNop()).LoadModelFromReader(strings.NewReader(tt.text))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, util.ErrLoadFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, m.Version())
		})
	}
}

func TestUpgradePadsOldObjects(t *testing.T) {
	text := modelText("1.0.0",
		"OS:Space, {00000000-0000-0000-0000-000000000002}, Space 1;",
		"OS:ThermalZone, {00000000-0000-0000-0000-000000000003}, Zone 1, 1;",
	)
	vt := NewVersionTranslator(zap.NewNop())
	m, err := vt.LoadModelFromReader(strings.NewReader(text))
	require.NoError(t, err)

	assert.Len(t, m.ObjectsOfType(TypeSpace)[0].Fields, spaceOutdoorAirField+1)
	assert.Len(t, m.ObjectsOfType(TypeThermalZone)[0].Fields, zoneThermostatField+2)
	assert.Equal(t, CURRENT_VERSION, m.Version())
	assert.Len(t, vt.Warnings(), 1)
}

func TestVersionStepsRunInOrder(t *testing.T) {
	applied := make([]string, 0)
	step := func(to string) VersionStep {
		return VersionStep{To: to, Apply: func(m *Model) error {
			applied = append(applied, to+" from "+m.Version())
			return nil
		}}
	}
	vt := NewVersionTranslatorWithSteps(zap.NewNop(), []VersionStep{step("1.9.0"), step("1.2.0"), step("1.6.0")})

	m, err := vt.LoadModelFromReader(strings.NewReader(modelText("1.5.0")))
	require.NoError(t, err)
	assert.Equal(t, []string{"1.6.0 from 1.5.0", "1.9.0 from 1.6.0"}, applied)
	assert.Equal(t, CURRENT_VERSION, m.Version())
}

func TestVersionStepFailure(t *testing.T) {
	vt := NewVersionTranslatorWithSteps(zap.NewNop(), []VersionStep{
		{To: "1.2.0", Apply: func(m *Model) error { return errors.New("boom") }},
	})
	_, err := vt.LoadModelFromReader(strings.NewReader(modelText("1.0.0")))
	assert.ErrorIs(t, err, util.ErrLoadFailed)
}

func TestLoadCompressedModel(t *testing.T) {
	var buf bytes.Buffer
	bz, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{})
	require.NoError(t, err)
	_, err = bz.Write([]byte(sampleText))
	require.NoError(t, err)
	require.NoError(t, bz.Close())

	m, err := NewVersionTranslator(zap.NewNop()).LoadModelFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, m.NumberOfObjects())
	building, ok := m.Building()
	require.True(t, ok)
	assert.Equal(t, "Building 1", building.Name())
}

func TestSaveCompressedRoundTrip(t *testing.T) {
	m := twoRoomModel(t)
	path := filepath.Join(t.TempDir(), "model.osm.bz2")
	require.NoError(t, m.Save(path, false))

	loaded, err := NewVersionTranslator(zap.NewNop()).LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, m.NumberOfObjects(), loaded.NumberOfObjects())
	assert.Len(t, loaded.Spaces(), 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewVersionTranslator(zap.NewNop()).LoadModel(filepath.Join(t.TempDir(), "missing.osm"))
	assert.ErrorIs(t, err, util.ErrLoadFailed)
}
