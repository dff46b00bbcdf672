package converter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/osm2prj/pkg/util"
	"go.uber.org/zap"
)

const (
	AIRTIGHTNESS_LEVEL  = "Leaky"
	RETURN_SUPPLY_RATIO = 0.9

	OUTPUT_FILE = "output.prj"

	MSG_USAGE              = "Usage: osm2prj input.osm"
	MSG_LOAD_FAILED        = "Failed to load OSM"
	MSG_TRANSLATION_FAILED = "Translation failed"
	MSG_WRITE_FAILED       = "Failed to write " + OUTPUT_FILE
)

// Model. loaded building model, only the translator looks inside.
type Model interface{}

type ModelLoader interface {
	LoadModel(path string) (Model, error)
}

type Result interface {
	ToString() string
}

type Translator interface {
	SetAirtightnessLevel(level string) error
	SetReturnSupplyRatio(ratio float64) error
	TranslateModel(model Model) (Result, error)
}

type Converter struct {
	log           *zap.Logger
	loader        ModelLoader
	newTranslator func() Translator
	outputPath    string
}

func NewConverter(log *zap.Logger, loader ModelLoader, newTranslator func() Translator, outputPath string) *Converter {
	return &Converter{
		log:           log,
		loader:        loader,
		newTranslator: newTranslator,
		outputPath:    outputPath,
	}
}

// Convert. load args[0], translate it with the fixed options and write the project file.
// every failure is a util.Error tagged with the failing step.
func (c *Converter) Convert(args []string) error {
	if len(args) != 1 {
		return util.WrapErrorf(nil, util.ErrUsage, MSG_USAGE)
	}
	path := args[0]

	model, err := c.loader.LoadModel(path)
	if err == nil && model == nil {
		err = errors.New("loader returned no model")
	}
	if err != nil {
		c.log.Debug("load failed", zap.String("path", path), zap.Error(err))
		return util.WrapErrorf(err, util.ErrLoadFailed, MSG_LOAD_FAILED)
	}

	translator := c.newTranslator()
	if err := translator.SetAirtightnessLevel(AIRTIGHTNESS_LEVEL); err != nil {
		return util.WrapErrorf(err, util.ErrTranslationFailed, MSG_TRANSLATION_FAILED)
	}
	if err := translator.SetReturnSupplyRatio(RETURN_SUPPLY_RATIO); err != nil {
		return util.WrapErrorf(err, util.ErrTranslationFailed, MSG_TRANSLATION_FAILED)
	}

	result, err := translator.TranslateModel(model)
	if err == nil && result == nil {
		err = errors.New("translator returned no result")
	}
	if err != nil {
		c.log.Debug("translation failed", zap.String("path", path), zap.Error(err))
		return util.WrapErrorf(err, util.ErrTranslationFailed, MSG_TRANSLATION_FAILED)
	}

	if err := writeFileAtomic(c.outputPath, lineTerminated(result.ToString())); err != nil {
		return util.WrapErrorf(err, util.ErrWriteFailed, MSG_WRITE_FAILED)
	}
	c.log.Debug("wrote project file", zap.String("path", c.outputPath))
	return nil
}

// Run. Convert, then print the failing step's message on stderr. returns the process exit status.
func (c *Converter) Run(args []string, stderr io.Writer) int {
	err := c.Convert(args)
	if err == nil {
		return 0
	}
	var uerr *util.Error
	if errors.As(err, &uerr) {
		fmt.Fprintln(stderr, uerr.Message())
	} else {
		fmt.Fprintln(stderr, err.Error())
	}
	return 1
}

func lineTerminated(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

// writeFileAtomic. a failed write leaves an existing file untouched and no partial file behind.
func writeFileAtomic(path, content string) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
