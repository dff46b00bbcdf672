package osm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lintang-b-s/osm2prj/pkg/util"
)

// Object. one OSM object: its type name and raw fields. Fields[0] is the handle.
type Object struct {
	Type   string
	Fields []string
	line   int
}

func NewObject(tipe string, fields ...string) *Object {
	return &Object{
		Type:   tipe,
		Fields: fields,
	}
}

// NewObjectWithHandle. new object with a fresh handle, fields after the handle are given.
func NewObjectWithHandle(tipe string, fields ...string) *Object {
	all := make([]string, 0, len(fields)+1)
	all = append(all, NewHandle())
	all = append(all, fields...)
	return NewObject(tipe, all...)
}

func NewHandle() string {
	return "{" + uuid.New().String() + "}"
}

func IsHandle(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 3 || s[0] != '{' || s[len(s)-1] != '}' {
		return false
	}
	_, err := uuid.Parse(s[1 : len(s)-1])
	return err == nil
}

// NormalizeHandle. handles compare case-insensitively.
func NormalizeHandle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (o *Object) Handle() string {
	if len(o.Fields) == 0 {
		return ""
	}
	return o.Fields[0]
}

func (o *Object) Name() string {
	return o.Field(1)
}

func (o *Object) Line() int {
	return o.line
}

func (o *Object) Field(i int) string {
	if i < 0 || i >= len(o.Fields) {
		return ""
	}
	return strings.TrimSpace(o.Fields[i])
}

// SetField. grows the field list with empty fields when needed.
func (o *Object) SetField(i int, value string) {
	for len(o.Fields) <= i {
		o.Fields = append(o.Fields, "")
	}
	o.Fields[i] = value
}

func (o *Object) SetFloatField(i int, value float64) {
	o.SetField(i, util.FormatFloat(value))
}

func (o *Object) FloatField(i int, def float64) float64 {
	return util.StringToFloat64OrDefault(o.Field(i), def)
}

func (o *Object) FloatFieldStrict(i int) (float64, error) {
	val, err := util.StringToFloat64(o.Field(i))
	if err != nil {
		return 0, fmt.Errorf("%s '%s' field %d: %w", o.Type, o.Name(), i, err)
	}
	return val, nil
}

// References. handles mentioned in any field after the own handle.
func (o *Object) References() []string {
	refs := make([]string, 0)
	for i := 1; i < len(o.Fields); i++ {
		if IsHandle(o.Fields[i]) {
			refs = append(refs, NormalizeHandle(o.Fields[i]))
		}
	}
	return refs
}

func (o *Object) Clone() *Object {
	fields := make([]string, len(o.Fields))
	copy(fields, o.Fields)
	return &Object{Type: o.Type, Fields: fields, line: o.line}
}
