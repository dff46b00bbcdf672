package osm

import (
	"fmt"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/lintang-b-s/osm2prj/pkg/geometry"
)

// surface types
const (
	SurfaceTypeWall        = "Wall"
	SurfaceTypeFloor       = "Floor"
	SurfaceTypeRoofCeiling = "RoofCeiling"
)

// outside boundary conditions
const (
	BoundaryOutdoors  = "Outdoors"
	BoundaryGround    = "Ground"
	BoundarySurface   = "Surface"
	BoundaryAdiabatic = "Adiabatic"
)

type Building struct {
	obj   *Object
	model *Model
}

func (b Building) Object() *Object { return b.obj }

func (b Building) Name() string { return b.obj.Name() }

func (b Building) SpaceType() (SpaceType, bool) {
	st, ok := b.model.lookup(b.obj, buildingSpaceTypeField, TypeSpaceType)
	if !ok {
		return SpaceType{}, false
	}
	return SpaceType{obj: st, model: b.model}, true
}

func (b Building) NominalFloorToFloorHeight() float64 {
	return b.obj.FloatField(buildingNominalFloorToFloorHeightField, 0)
}

type BuildingStory struct {
	obj   *Object
	model *Model
}

func (s BuildingStory) Object() *Object { return s.obj }

func (s BuildingStory) Handle() string { return s.obj.Handle() }

func (s BuildingStory) Name() string { return s.obj.Name() }

func (s BuildingStory) NominalZCoordinate() (float64, bool) {
	z, err := s.obj.FloatFieldStrict(storyNominalZField)
	return z, err == nil
}

func (s BuildingStory) NominalFloorToFloorHeight() (float64, bool) {
	h, err := s.obj.FloatFieldStrict(storyNominalFloorToFloorHeightField)
	return h, err == nil && h > 0
}

func (s BuildingStory) SetNominalZCoordinate(z float64) {
	s.obj.SetFloatField(storyNominalZField, z)
}

func (s BuildingStory) SetNominalFloorToFloorHeight(h float64) {
	s.obj.SetFloatField(storyNominalFloorToFloorHeightField, h)
}

type SpaceType struct {
	obj   *Object
	model *Model
}

func (st SpaceType) Object() *Object { return st.obj }

func (st SpaceType) Name() string { return st.obj.Name() }

func (st SpaceType) DesignSpecificationOutdoorAir() (DesignSpecificationOutdoorAir, bool) {
	oa, ok := st.model.lookup(st.obj, spaceTypeOutdoorAirField, TypeDesignSpecificationOutdoorAir)
	if !ok {
		return DesignSpecificationOutdoorAir{}, false
	}
	return DesignSpecificationOutdoorAir{obj: oa}, true
}

// DesignSpecificationOutdoorAir. flow rates in SI: m3/s per person, m3/s per m2, m3/s, 1/h.
type DesignSpecificationOutdoorAir struct {
	obj *Object
}

func (oa DesignSpecificationOutdoorAir) Object() *Object { return oa.obj }

func (oa DesignSpecificationOutdoorAir) Method() string {
	method := oa.obj.Field(outdoorAirMethodField)
	if method == "" {
		return "Flow/Person"
	}
	return method
}

func (oa DesignSpecificationOutdoorAir) FlowPerPerson() float64 {
	return oa.obj.FloatField(outdoorAirPerPersonField, 0)
}

func (oa DesignSpecificationOutdoorAir) FlowPerFloorArea() float64 {
	return oa.obj.FloatField(outdoorAirPerFloorAreaField, 0)
}

func (oa DesignSpecificationOutdoorAir) FlowRate() float64 {
	return oa.obj.FloatField(outdoorAirFlowRateField, 0)
}

func (oa DesignSpecificationOutdoorAir) AirChangesPerHour() float64 {
	return oa.obj.FloatField(outdoorAirACHField, 0)
}

func (oa DesignSpecificationOutdoorAir) SetMethod(method string) error {
	switch method {
	case "Flow/Person", "Flow/Area", "Flow/Zone", "AirChanges/Hour", "Sum", "Maximum":
		oa.obj.SetField(outdoorAirMethodField, method)
		return nil
	}
	return fmt.Errorf("unknown outdoor air method '%s'", method)
}

func (oa DesignSpecificationOutdoorAir) SetFlowPerPerson(v float64) error {
	return oa.setNonNegative(outdoorAirPerPersonField, v)
}

func (oa DesignSpecificationOutdoorAir) SetFlowPerFloorArea(v float64) error {
	return oa.setNonNegative(outdoorAirPerFloorAreaField, v)
}

func (oa DesignSpecificationOutdoorAir) SetFlowRate(v float64) error {
	return oa.setNonNegative(outdoorAirFlowRateField, v)
}

func (oa DesignSpecificationOutdoorAir) SetAirChangesPerHour(v float64) error {
	return oa.setNonNegative(outdoorAirACHField, v)
}

func (oa DesignSpecificationOutdoorAir) setNonNegative(i int, v float64) error {
	if v < 0 {
		return fmt.Errorf("outdoor air value must not be negative, got %v", v)
	}
	oa.obj.SetFloatField(i, v)
	return nil
}

type Space struct {
	obj   *Object
	model *Model
}

func (s Space) Object() *Object { return s.obj }

func (s Space) Handle() string { return s.obj.Handle() }

func (s Space) Name() string { return s.obj.Name() }

func (s Space) SetName(name string) { s.obj.SetField(1, name) }

func (s Space) ThermalZone() (ThermalZone, bool) {
	z, ok := s.model.lookup(s.obj, spaceThermalZoneField, TypeThermalZone)
	if !ok {
		return ThermalZone{}, false
	}
	return ThermalZone{obj: z, model: s.model}, true
}

func (s Space) SetThermalZone(zone ThermalZone) {
	s.obj.SetField(spaceThermalZoneField, zone.Handle())
}

func (s Space) BuildingStory() (BuildingStory, bool) {
	st, ok := s.model.lookup(s.obj, spaceBuildingStoryField, TypeBuildingStory)
	if !ok {
		return BuildingStory{}, false
	}
	return BuildingStory{obj: st, model: s.model}, true
}

func (s Space) SetBuildingStory(story BuildingStory) {
	s.obj.SetField(spaceBuildingStoryField, story.Handle())
}

// SpaceType. the space's own type, else the building default.
func (s Space) SpaceType() (SpaceType, bool) {
	if st, ok := s.model.lookup(s.obj, spaceSpaceTypeField, TypeSpaceType); ok {
		return SpaceType{obj: st, model: s.model}, true
	}
	building, ok := s.model.Building()
	if !ok {
		return SpaceType{}, false
	}
	return building.SpaceType()
}

// DesignSpecificationOutdoorAir. the space's own specification, else the one of its space type.
func (s Space) DesignSpecificationOutdoorAir() (DesignSpecificationOutdoorAir, bool) {
	if oa, ok := s.model.lookup(s.obj, spaceOutdoorAirField, TypeDesignSpecificationOutdoorAir); ok {
		return DesignSpecificationOutdoorAir{obj: oa}, true
	}
	st, ok := s.SpaceType()
	if !ok {
		return DesignSpecificationOutdoorAir{}, false
	}
	return st.DesignSpecificationOutdoorAir()
}

// Origin. the space origin in building coordinates. relative north rotation is not applied.
func (s Space) Origin() r3.Vector {
	return r3.Vector{
		X: s.obj.FloatField(spaceXOriginField, 0),
		Y: s.obj.FloatField(spaceYOriginField, 0),
		Z: s.obj.FloatField(spaceZOriginField, 0),
	}
}

func (s Space) Surfaces() []Surface {
	surfaces := make([]Surface, 0)
	for _, surface := range s.model.Surfaces() {
		if NormalizeHandle(surface.obj.Field(surfaceSpaceField)) == NormalizeHandle(s.Handle()) {
			surfaces = append(surfaces, surface)
		}
	}
	return surfaces
}

// FloorArea. in m^2, sum of the floor surfaces.
func (s Space) FloorArea() float64 {
	var area float64
	for _, surface := range s.Surfaces() {
		if surface.SurfaceType() == SurfaceTypeFloor {
			area += surface.Area()
		}
	}
	return area
}

// Volume. in m^3, enclosed by the space surfaces. zero or negative if the shell is open.
func (s Space) Volume() float64 {
	faces := make([]geometry.Polygon, 0)
	for _, surface := range s.Surfaces() {
		faces = append(faces, surface.Vertices())
	}
	return geometry.EnclosedVolume(faces)
}

// Height. vertical extent of the space surfaces.
func (s Space) Height() float64 {
	surfaces := s.Surfaces()
	if len(surfaces) == 0 {
		return 0
	}
	lo, hi := surfaces[0].Vertices().BoundingBox()
	for _, surface := range surfaces[1:] {
		l, h := surface.Vertices().BoundingBox()
		lo.Z = min(lo.Z, l.Z)
		hi.Z = max(hi.Z, h.Z)
	}
	return hi.Z - lo.Z
}

type Surface struct {
	obj   *Object
	model *Model
}

func (s Surface) Object() *Object { return s.obj }

func (s Surface) Handle() string { return s.obj.Handle() }

func (s Surface) Name() string { return s.obj.Name() }

func (s Surface) SurfaceType() string { return s.obj.Field(surfaceTypeField) }

func (s Surface) OutsideBoundaryCondition() string {
	return s.obj.Field(surfaceOutsideBoundaryConditionField)
}

func (s Surface) Space() (Space, bool) {
	sp, ok := s.model.lookup(s.obj, surfaceSpaceField, TypeSpace)
	if !ok {
		return Space{}, false
	}
	return Space{obj: sp, model: s.model}, true
}

func (s Surface) AdjacentSurface() (Surface, bool) {
	adj, ok := s.model.lookup(s.obj, surfaceOutsideBoundaryObjectField, TypeSurface)
	if !ok {
		return Surface{}, false
	}
	return Surface{obj: adj, model: s.model}, true
}

// SetAdjacentSurface. links both surfaces to each other with a "Surface" boundary condition.
func (s Surface) SetAdjacentSurface(other Surface) {
	for _, pair := range [][2]Surface{{s, other}, {other, s}} {
		pair[0].obj.SetField(surfaceOutsideBoundaryConditionField, BoundarySurface)
		pair[0].obj.SetField(surfaceOutsideBoundaryObjectField, pair[1].Handle())
		pair[0].obj.SetField(surfaceSunExposureField, "NoSun")
		pair[0].obj.SetField(surfaceWindExposureField, "NoWind")
	}
}

// Vertices. in building coordinates (space origin applied).
func (s Surface) Vertices() geometry.Polygon {
	poly := s.RelativeVertices()
	if sp, ok := s.Space(); ok {
		poly = poly.Translate(sp.Origin())
	}
	return poly
}

// RelativeVertices. in space coordinates, as stored.
func (s Surface) RelativeVertices() geometry.Polygon {
	return readVertices(s.obj, surfaceFirstVertexField)
}

func (s Surface) Area() float64 {
	return s.RelativeVertices().Area()
}

func (s Surface) SubSurfaces() []SubSurface {
	subs := make([]SubSurface, 0)
	for _, sub := range s.model.SubSurfaces() {
		if NormalizeHandle(sub.obj.Field(subSurfaceSurfaceField)) == NormalizeHandle(s.Handle()) {
			subs = append(subs, sub)
		}
	}
	return subs
}

type SubSurface struct {
	obj   *Object
	model *Model
}

func (s SubSurface) Object() *Object { return s.obj }

func (s SubSurface) Name() string { return s.obj.Name() }

func (s SubSurface) SubSurfaceType() string { return s.obj.Field(subSurfaceTypeField) }

func (s SubSurface) Area() float64 {
	return readVertices(s.obj, subSurfaceFirstVertexField).Area()
}

type ThermalZone struct {
	obj   *Object
	model *Model
}

func (z ThermalZone) Object() *Object { return z.obj }

func (z ThermalZone) Handle() string { return z.obj.Handle() }

func (z ThermalZone) Name() string { return z.obj.Name() }

func (z ThermalZone) Multiplier() int {
	m, err := strconv.Atoi(z.obj.Field(zoneMultiplierField))
	if err != nil || m < 1 {
		return 1
	}
	return m
}

func (z ThermalZone) Spaces() []Space {
	return z.model.SpacesInZone(z)
}

// Volume. in m^3. the zone field wins when set, otherwise the sum of the enclosed space volumes.
func (z ThermalZone) Volume() float64 {
	if v, err := z.obj.FloatFieldStrict(zoneVolumeField); err == nil && v > 0 {
		return v
	}
	var volume float64
	for _, space := range z.Spaces() {
		if v := space.Volume(); v > 0 {
			volume += v
		}
	}
	return volume
}

func (z ThermalZone) FloorArea() float64 {
	var area float64
	for _, space := range z.Spaces() {
		area += space.FloorArea()
	}
	return area
}

func (z ThermalZone) SetThermostat(thermostat *Object) {
	z.obj.SetField(zoneThermostatField, thermostat.Handle())
}

func (z ThermalZone) Thermostat() (*Object, bool) {
	return z.model.lookup(z.obj, zoneThermostatField, TypeThermostatDualSetpoint)
}

type AirLoopHVAC struct {
	obj   *Object
	model *Model
}

func (a AirLoopHVAC) Object() *Object { return a.obj }

func (a AirLoopHVAC) Handle() string { return a.obj.Handle() }

func (a AirLoopHVAC) Name() string { return a.obj.Name() }

// ThermalZones. zones on the demand side of the loop.
func (a AirLoopHVAC) ThermalZones() []ThermalZone {
	return a.model.ZonesServedBy(a)
}

type RunPeriod struct {
	obj *Object
}

func (r RunPeriod) Object() *Object { return r.obj }

// Dates. begin and end month/day, defaults to the whole year.
func (r RunPeriod) Dates() (beginMonth, beginDay, endMonth, endDay int) {
	field := func(i, def int) int {
		v, err := strconv.Atoi(r.obj.Field(i))
		if err != nil {
			return def
		}
		return v
	}
	return field(runPeriodBeginMonthField, 1), field(runPeriodBeginDayField, 1),
		field(runPeriodEndMonthField, 12), field(runPeriodEndDayField, 31)
}

func readVertices(obj *Object, first int) geometry.Polygon {
	poly := make(geometry.Polygon, 0)
	for i := first; i+2 < len(obj.Fields); i += 3 {
		x, errX := obj.FloatFieldStrict(i)
		y, errY := obj.FloatFieldStrict(i + 1)
		z, errZ := obj.FloatFieldStrict(i + 2)
		if errX != nil || errY != nil || errZ != nil {
			break
		}
		poly = append(poly, r3.Vector{X: x, Y: y, Z: z})
	}
	return poly
}

func writeVertices(obj *Object, first int, poly geometry.Polygon) {
	obj.Fields = obj.Fields[:min(len(obj.Fields), first)]
	for len(obj.Fields) < first {
		obj.Fields = append(obj.Fields, "")
	}
	for _, v := range poly {
		obj.Fields = append(obj.Fields,
			strconv.FormatFloat(v.X, 'f', -1, 64),
			strconv.FormatFloat(v.Y, 'f', -1, 64),
			strconv.FormatFloat(v.Z, 'f', -1, 64))
	}
}
