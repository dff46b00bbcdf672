package osm

import (
	"fmt"
	"strings"

	"github.com/lintang-b-s/osm2prj/pkg/util"
)

const (
	TypeVersion                       = "OS:Version"
	TypeBuilding                      = "OS:Building"
	TypeBuildingStory                 = "OS:BuildingStory"
	TypeSpaceType                     = "OS:SpaceType"
	TypeDesignSpecificationOutdoorAir = "OS:DesignSpecification:OutdoorAir"
	TypeSpace                         = "OS:Space"
	TypeSurface                       = "OS:Surface"
	TypeSubSurface                    = "OS:SubSurface"
	TypeThermalZone                   = "OS:ThermalZone"
	TypeThermostatDualSetpoint        = "OS:ThermostatSetpoint:DualSetpoint"
	TypeSizingZone                    = "OS:Sizing:Zone"
	TypeAirLoopHVAC                   = "OS:AirLoopHVAC"
	TypeZoneSplitter                  = "OS:AirLoopHVAC:ZoneSplitter"
	TypeZoneMixer                     = "OS:AirLoopHVAC:ZoneMixer"
	TypeSupplyPlenum                  = "OS:AirLoopHVAC:SupplyPlenum"
	TypeReturnPlenum                  = "OS:AirLoopHVAC:ReturnPlenum"
	TypeAirTerminalUncontrolled       = "OS:AirTerminal:SingleDuct:Uncontrolled"
	TypeAirTerminalPrefix             = "OS:AirTerminal:"
	TypeNode                          = "OS:Node"
	TypePortList                      = "OS:PortList"
	TypeConnection                    = "OS:Connection"
	TypeSetpointManagerSingleZoneRH   = "OS:SetpointManager:SingleZone:Reheat"
	TypeRunPeriod                     = "OS:RunPeriod"
	TypeYearDescription               = "OS:YearDescription"
)

// Model. an OpenStudio model: objects in file order plus a handle index.
type Model struct {
	objects  []*Object
	byHandle map[string]*Object
}

// NewModel. empty model carrying only the version object.
func NewModel(version string) *Model {
	m := &Model{
		objects:  make([]*Object, 0),
		byHandle: make(map[string]*Object),
	}
	_ = m.AddObject(NewObject(TypeVersion, NewHandle(), version))
	return m
}

func newModelFromObjects(objects []*Object) (*Model, error) {
	m := &Model{
		objects:  make([]*Object, 0, len(objects)),
		byHandle: make(map[string]*Object, len(objects)),
	}
	for _, obj := range objects {
		if err := m.AddObject(obj); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddObject. rejects objects without a valid handle and duplicate handles.
func (m *Model) AddObject(obj *Object) error {
	handle := obj.Handle()
	if !IsHandle(handle) {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "%s at line %d has invalid handle '%s'",
			obj.Type, obj.line, handle)
	}
	key := NormalizeHandle(handle)
	if _, ok := m.byHandle[key]; ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "duplicate handle %s", handle)
	}
	m.byHandle[key] = obj
	m.objects = append(m.objects, obj)
	return nil
}

func (m *Model) Objects() []*Object {
	return m.objects
}

func (m *Model) NumberOfObjects() int {
	return len(m.objects)
}

func (m *Model) ObjectByHandle(handle string) (*Object, bool) {
	if handle == "" {
		return nil, false
	}
	obj, ok := m.byHandle[NormalizeHandle(handle)]
	return obj, ok
}

func (m *Model) ObjectsOfType(tipe string) []*Object {
	found := make([]*Object, 0)
	for _, obj := range m.objects {
		if strings.EqualFold(obj.Type, tipe) {
			found = append(found, obj)
		}
	}
	return found
}

func (m *Model) VersionObject() (*Object, bool) {
	for _, obj := range m.objects {
		if strings.EqualFold(obj.Type, TypeVersion) {
			return obj, true
		}
	}
	return nil, false
}

// Version. version identifier of the model, "" if the model has no OS:Version object.
func (m *Model) Version() string {
	obj, ok := m.VersionObject()
	if !ok {
		return ""
	}
	return obj.Field(versionIdentifierField)
}

func (m *Model) setVersion(version string) {
	if obj, ok := m.VersionObject(); ok {
		obj.SetField(versionIdentifierField, version)
	}
}

// lookup. object referenced by field i of obj, if it has the wanted type.
func (m *Model) lookup(obj *Object, i int, tipe string) (*Object, bool) {
	ref, ok := m.ObjectByHandle(obj.Field(i))
	if !ok || !strings.EqualFold(ref.Type, tipe) {
		return nil, false
	}
	return ref, true
}

func (m *Model) String() string {
	return fmt.Sprintf("Model(version=%s, objects=%d)", m.Version(), len(m.objects))
}
