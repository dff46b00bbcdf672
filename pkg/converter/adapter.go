package converter

import (
	"fmt"

	"github.com/lintang-b-s/osm2prj/pkg/contam"
	"github.com/lintang-b-s/osm2prj/pkg/osm"
	"go.uber.org/zap"
)

// osmLoader. ModelLoader backed by the osm version translator.
type osmLoader struct {
	log *zap.Logger
}

func NewOSMLoader(log *zap.Logger) ModelLoader {
	return &osmLoader{log: log}
}

func (l *osmLoader) LoadModel(path string) (Model, error) {
	vt := osm.NewVersionTranslator(l.log)
	m, err := vt.LoadModel(path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// contamTranslator. Translator backed by the contam forward translator.
type contamTranslator struct {
	ft *contam.ForwardTranslator
}

func NewContamTranslator(log *zap.Logger) Translator {
	return &contamTranslator{ft: contam.NewForwardTranslator(log)}
}

func (t *contamTranslator) SetAirtightnessLevel(level string) error {
	return t.ft.SetAirtightnessLevel(level)
}

func (t *contamTranslator) SetReturnSupplyRatio(ratio float64) error {
	return t.ft.SetReturnSupplyRatio(ratio)
}

func (t *contamTranslator) TranslateModel(model Model) (Result, error) {
	m, ok := model.(*osm.Model)
	if !ok {
		return nil, fmt.Errorf("unsupported model type %T", model)
	}
	prj, err := t.ft.TranslateModel(m)
	if err != nil {
		return nil, err
	}
	return prj, nil
}
