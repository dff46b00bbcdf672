package demo

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/lintang-b-s/osm2prj/pkg/osm"
	"go.uber.org/zap"
)

//go:embed template.osm
var templateOSM []byte

const (
	FLOOR_HEIGHT = 3.0

	// 1 cfm/ft^2 in m3/s per m2
	OUTDOOR_AIR_PER_FLOOR_AREA = 0.00508
)

// LoadTemplate. the embedded template model: building, space type with outdoor air specification, thermostat.
func LoadTemplate(log *zap.Logger) (*osm.Model, error) {
	vt := osm.NewVersionTranslator(log)
	m, err := vt.LoadModelFromReader(bytes.NewReader(templateOSM))
	if err != nil {
		return nil, fmt.Errorf("failed to read default template model: %w", err)
	}
	return m, nil
}

type floorPrint struct {
	name   string
	points []r3.Vector
}

func pts(xy ...float64) []r3.Vector {
	points := make([]r3.Vector, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		points = append(points, r3.Vector{X: xy[i], Y: xy[i+1]})
	}
	return points
}

/*
BuildDemoModel. adds the four room single story demonstration building to a template model:

	y=17 +--------+-------------+
	     |        |  Office 2   |
	y=10 |Library +--+----------+
	     |        |H |          |
	     |        |a | Office 1 |
	y=0  +--------+--+----------+
	     x=0      8  11         18

the library and both offices are conditioned by one air loop, the hallway is not.
*/
func BuildDemoModel(m *osm.Model) error {
	building, ok := m.Building()
	if !ok {
		return fmt.Errorf("template has no %s", osm.TypeBuilding)
	}
	spaceType, ok := building.SpaceType()
	if !ok {
		return fmt.Errorf("building has no space type")
	}
	oa, ok := spaceType.DesignSpecificationOutdoorAir()
	if !ok {
		return fmt.Errorf("space type '%s' has no outdoor air specification", spaceType.Name())
	}

	for _, set := range []func() error{
		func() error { return oa.SetMethod("Sum") },
		func() error { return oa.SetFlowPerPerson(0) },
		func() error { return oa.SetFlowPerFloorArea(OUTDOOR_AIR_PER_FLOOR_AREA) },
		func() error { return oa.SetFlowRate(0) },
		func() error { return oa.SetAirChangesPerHour(0) },
	} {
		if err := set(); err != nil {
			return err
		}
	}

	story := m.AddBuildingStory("Story 1", 0, FLOOR_HEIGHT)

	prints := []floorPrint{
		{name: "Library", points: pts(0, 0, 0, 17, 8, 17, 8, 10, 8, 0)},
		{name: "Office 2", points: pts(8, 10, 8, 17, 18, 17, 18, 10, 11, 10)},
		{name: "Hallway", points: pts(8, 0, 8, 10, 11, 10, 11, 0)},
		{name: "Office 1", points: pts(11, 0, 11, 10, 18, 10, 18, 0)},
	}
	spaces := make(map[string]osm.Space, len(prints))
	for _, fp := range prints {
		space, err := m.SpaceFromFloorPrint(fp.points, FLOOR_HEIGHT)
		if err != nil {
			return fmt.Errorf("space '%s': %w", fp.name, err)
		}
		space.SetName(fp.name)
		space.SetBuildingStory(story)
		spaces[fp.name] = space
	}

	for _, pair := range [][2]string{
		{"Library", "Office 2"},
		{"Library", "Hallway"},
		{"Hallway", "Office 1"},
		{"Hallway", "Office 2"},
		{"Office 1", "Office 2"},
	} {
		if m.MatchSurfaces(spaces[pair[0]], spaces[pair[1]]) == 0 {
			return fmt.Errorf("spaces '%s' and '%s' share no surface", pair[0], pair[1])
		}
	}

	thermostat, ok := m.FirstObjectOfType(osm.TypeThermostatDualSetpoint)
	if !ok {
		return fmt.Errorf("template has no thermostat")
	}

	zones := make(map[string]osm.ThermalZone, len(prints))
	for _, fp := range prints {
		zone := m.AddThermalZone(fp.name + " Zone")
		if fp.name != "Hallway" {
			m.AddSizingZone(zone)
			zone.SetThermostat(thermostat)
		}
		spaces[fp.name].SetThermalZone(zone)
		zones[fp.name] = zone
	}

	loop := m.AddAirLoop("Packaged Rooftop Unit")
	for _, name := range []string{"Library", "Office 1", "Office 2"} {
		if err := m.AddBranchForZone(loop, zones[name]); err != nil {
			return err
		}
	}
	return m.SetControlZone(loop, zones["Library"])
}
