package osm

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osm2prj/pkg/util"
	"go.uber.org/zap"
)

var bzip2Magic = []byte("BZh")

// VersionStep. upgrades a model whose version is below To. steps run in ascending To order.
type VersionStep struct {
	To    string
	Apply func(m *Model) error
}

// VersionTranslator. loads models written by older releases and upgrades them to CURRENT_VERSION.
type VersionTranslator struct {
	log      *zap.Logger
	steps    []VersionStep
	current  *semver.Version
	oldest   *semver.Version
	warnings []string
}

func NewVersionTranslator(log *zap.Logger) *VersionTranslator {
	return NewVersionTranslatorWithSteps(log, defaultVersionSteps())
}

func NewVersionTranslatorWithSteps(log *zap.Logger, steps []VersionStep) *VersionTranslator {
	sorted := make([]VersionStep, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return semver.MustParse(sorted[i].To).LessThan(semver.MustParse(sorted[j].To))
	})
	return &VersionTranslator{
		log:     log,
		steps:   sorted,
		current: semver.MustParse(CURRENT_VERSION),
		oldest:  semver.MustParse(OLDEST_VERSION),
	}
}

// LoadModel. reads, decompresses (bzip2) if needed, parses and upgrades the model at path.
func (vt *VersionTranslator) LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrLoadFailed, "cannot open '%s'", path)
	}
	defer f.Close()

	m, err := vt.LoadModelFromReader(f)
	if err != nil {
		return nil, err
	}
	vt.log.Debug("model loaded", zap.String("path", path), zap.String("version", m.Version()),
		zap.Int("objects", m.NumberOfObjects()))
	return m, nil
}

func (vt *VersionTranslator) LoadModelFromReader(r io.Reader) (*Model, error) {
	vt.warnings = nil

	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(len(bzip2Magic)); err == nil && bytes.Equal(magic, bzip2Magic) {
		bz, err := bzip2.NewReader(br, &bzip2.ReaderConfig{})
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrLoadFailed, "cannot decompress model")
		}
		defer bz.Close()
		src = bz
	}

	objects, err := Parse(src)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrLoadFailed, "cannot parse model")
	}
	m, err := newModelFromObjects(objects)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrLoadFailed, "invalid model")
	}
	if err := vt.upgrade(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (vt *VersionTranslator) Warnings() []string {
	return vt.warnings
}

func (vt *VersionTranslator) warn(msg string, fields ...zap.Field) {
	vt.warnings = append(vt.warnings, msg)
	vt.log.Warn(msg, fields...)
}

func (vt *VersionTranslator) upgrade(m *Model) error {
	raw := m.Version()
	if raw == "" {
		return util.WrapErrorf(nil, util.ErrLoadFailed, "model has no %s object", TypeVersion)
	}
	version, err := semver.NewVersion(raw)
	if err != nil {
		return util.WrapErrorf(err, util.ErrLoadFailed, "unreadable model version '%s'", raw)
	}
	if version.GreaterThan(vt.current) {
		return util.WrapErrorf(nil, util.ErrLoadFailed, "model version %s is newer than supported version %s",
			raw, CURRENT_VERSION)
	}
	if version.LessThan(vt.oldest) {
		return util.WrapErrorf(nil, util.ErrLoadFailed, "model version %s is older than oldest supported version %s",
			raw, OLDEST_VERSION)
	}

	for _, step := range vt.steps {
		to := semver.MustParse(step.To)
		if !version.LessThan(to) || to.GreaterThan(vt.current) {
			continue
		}
		if err := step.Apply(m); err != nil {
			return util.WrapErrorf(err, util.ErrLoadFailed, "upgrade to %s failed", step.To)
		}
		m.setVersion(step.To)
		version = to
	}
	if version.LessThan(vt.current) {
		m.setVersion(CURRENT_VERSION)
	}
	if raw != m.Version() {
		vt.warn("model upgraded", zap.String("from", raw), zap.String("to", m.Version()))
	}
	return nil
}

// defaultVersionSteps. older files may stop a thermal zone or space before the fields added later,
// upgrading pads them so field positions are stable.
func defaultVersionSteps() []VersionStep {
	return []VersionStep{
		{To: "1.4.0", Apply: padFields(TypeSpace, spaceOutdoorAirField+1)},
		{To: "1.8.0", Apply: padFields(TypeThermalZone, zoneThermostatField+2)},
	}
}

func padFields(tipe string, n int) func(m *Model) error {
	return func(m *Model) error {
		for _, obj := range m.objects {
			if !strings.EqualFold(obj.Type, tipe) {
				continue
			}
			if len(obj.Fields) < n {
				obj.SetField(n-1, "")
			}
		}
		return nil
	}
}
