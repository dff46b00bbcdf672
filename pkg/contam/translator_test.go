package contam

import (
	"strings"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/lintang-b-s/osm2prj/pkg/demo"
	"github.com/lintang-b-s/osm2prj/pkg/osm"
	"github.com/lintang-b-s/osm2prj/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func demoModel(t *testing.T) *osm.Model {
	t.Helper()
	m, err := demo.LoadTemplate(zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, demo.BuildDemoModel(m))
	return m
}

func zoneByName(t *testing.T, prj *IndexModel, name string) Zone {
	t.Helper()
	for _, z := range prj.Zones {
		if z.Name == name {
			return z
		}
	}
	require.Failf(t, "zone not found", "zone '%s'", name)
	return Zone{}
}

func leakagePaths(prj *IndexModel) []Path {
	paths := make([]Path, 0)
	for _, p := range prj.Paths {
		if !p.System() {
			paths = append(paths, p)
		}
	}
	return paths
}

func TestTranslateDemoModel(t *testing.T) {
	m := demoModel(t)
	ft := NewForwardTranslator(zap.NewNop())
	prj, err := ft.TranslateModel(m)
	require.NoError(t, err)
	assert.True(t, prj.Valid())

	require.Len(t, prj.Levels, 1)
	assert.Equal(t, "Story 1", prj.Levels[0].Name)
	assert.InDelta(t, 3.0, prj.Levels[0].DelHt, 1e-9)

	// four building zones plus supply and return of the rooftop unit
	assert.Len(t, prj.Zones, 6)
	assert.Len(t, ft.ZoneMap(), 4)
	assert.InDelta(t, 408.0, zoneByName(t, prj, "Library Zone").Volume, 1e-6)
	assert.InDelta(t, 210.0, zoneByName(t, prj, "Office 1 Zone").Volume, 1e-6)
	assert.InDelta(t, 210.0, zoneByName(t, prj, "Office 2 Zone").Volume, 1e-6)
	assert.InDelta(t, 90.0, zoneByName(t, prj, "Hallway Zone").Volume, 1e-6)

	leaks := leakagePaths(prj)
	require.Len(t, leaks, 17)
	exterior := 0
	for _, p := range leaks {
		if p.To == AMBIENT {
			exterior++
		}
	}
	assert.Equal(t, 12, exterior)

	// 12 exterior surfaces plus both sides of 5 matched pairs
	surfaceMap := ft.SurfaceMap()
	assert.Len(t, surfaceMap, 22)
	pairs := 0
	for _, surface := range m.Surfaces() {
		adj, ok := surface.AdjacentSurface()
		if !ok {
			continue
		}
		pairs++
		assert.Equal(t, surfaceMap[surface.Handle()], surfaceMap[adj.Handle()])
	}
	assert.Equal(t, 10, pairs)

	require.Len(t, prj.AHSs, 1)
	ahs := prj.AHSs[0]
	assert.Equal(t, "Packaged Rooftop Unit", ahs.Name)
	assert.Len(t, ahs.SupplyPaths, 3)
	assert.Len(t, ahs.ReturnPaths, 3)
	supplyZone, ok := prj.Zone(ahs.SupplyZone)
	require.True(t, ok)
	assert.True(t, supplyZone.System())

	assert.Empty(t, ft.Errors())
	_, transient := ft.StartDateTime()
	assert.False(t, transient)
	assert.Equal(t, 0, prj.RunControl.SimAF)
}

func TestTranslateWithoutHVAC(t *testing.T) {
	ft := NewForwardTranslator(zap.NewNop())
	require.NoError(t, ft.SetTranslateHVAC(false))

	prj, err := ft.TranslateModel(demoModel(t))
	require.NoError(t, err)
	assert.Len(t, prj.Zones, 4)
	assert.Len(t, prj.Paths, 17)
	assert.Empty(t, prj.AHSs)
}

func TestSupplyAndReturnFlows(t *testing.T) {
	ft := NewForwardTranslator(zap.NewNop())
	require.NoError(t, ft.SetReturnSupplyRatio(0.9))

	prj, err := ft.TranslateModel(demoModel(t))
	require.NoError(t, err)
	require.Len(t, prj.AHSs, 1)
	ahs := prj.AHSs[0]

	library := zoneByName(t, prj, "Library Zone")
	var supplyTotal float64
	for i, nr := range ahs.SupplyPaths {
		supply, ok := prj.Path(nr)
		require.True(t, ok)
		ret, ok := prj.Path(ahs.ReturnPaths[i])
		require.True(t, ok)
		assert.Equal(t, supply.To, ret.From)
		assert.InDelta(t, 0.9*supply.Flow, ret.Flow, 1e-12)
		if supply.To == library.Nr {
			// 136 m2 at 0.00508 m3/s per m2
			assert.InDelta(t, AIR_DENSITY*136*demo.OUTDOOR_AIR_PER_FLOOR_AREA, supply.Flow, 1e-9)
		}
		supplyTotal += supply.Flow
	}
	oa, ok := prj.Path(ahs.OutdoorAirPath)
	require.True(t, ok)
	assert.Equal(t, AMBIENT, oa.From)
	assert.InDelta(t, supplyTotal, oa.Flow, 1e-9)
	assert.InDelta(t, AIR_DENSITY*(136+70+70)*demo.OUTDOOR_AIR_PER_FLOOR_AREA, supplyTotal, 1e-9)
}

func TestAirtightnessLevel(t *testing.T) {
	tests := []struct {
		level string
		ext   float64
		wall  float64
	}{
		{level: "Tight", ext: 7.2, wall: 3.6},
		{level: "Average", ext: 27.1, wall: 13.55},
		{level: "Leaky", ext: 54.2, wall: 27.1},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			ft := NewForwardTranslator(zap.NewNop())
			require.NoError(t, ft.SetAirtightnessLevel(tt.level))
			prj, err := ft.TranslateModel(demoModel(t))
			require.NoError(t, err)

			for _, p := range leakagePaths(prj) {
				e := prj.Elements[p.ElementNr-1]
				if p.To == AMBIENT {
					assert.Equal(t, tt.ext, e.FlowRate, p.Name)
				} else {
					assert.Equal(t, tt.wall, e.FlowRate, p.Name)
				}
				assert.Equal(t, REFERENCE_PRESSURE_PA, e.DeltaP)
				assert.Equal(t, DEFAULT_FLOW_EXPONENT, e.Exponent)
			}
		})
	}
}

func TestExteriorFlowRate(t *testing.T) {
	ft := NewForwardTranslator(zap.NewNop())
	require.NoError(t, ft.SetAirtightnessLevel("Tight"))
	require.NoError(t, ft.SetExteriorFlowRate(10, 0.6, 50))

	prj, err := ft.TranslateModel(demoModel(t))
	require.NoError(t, err)
	for _, p := range leakagePaths(prj) {
		e := prj.Elements[p.ElementNr-1]
		if p.To == AMBIENT {
			assert.Equal(t, 10.0, e.FlowRate)
			assert.Equal(t, 0.6, e.Exponent)
			assert.Equal(t, 50.0, e.DeltaP)
		} else {
			assert.Equal(t, 3.6, e.FlowRate)
		}
	}
}

func TestOptionValidation(t *testing.T) {
	ft := NewForwardTranslator(zap.NewNop())

	err := ft.SetAirtightnessLevel("Drafty")
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrBadParamInput)
	assert.Contains(t, err.Error(), "AirtightnessLevel must be one of [Tight Average Leaky]")
	assert.Equal(t, "Average", ft.Options().AirtightnessLevel)

	assert.Error(t, ft.SetReturnSupplyRatio(0))
	assert.Error(t, ft.SetReturnSupplyRatio(1.5))
	assert.Equal(t, 1.0, ft.Options().ReturnSupplyRatio)
	assert.NoError(t, ft.SetReturnSupplyRatio(0.9))
	assert.Equal(t, 0.9, ft.Options().ReturnSupplyRatio)

	assert.Error(t, ft.SetExteriorFlowRate(10, 0.3, 75))
	assert.Error(t, ft.SetExteriorFlowRate(0, 0.65, 75))
	assert.Nil(t, ft.Options().ExteriorLeakage)
}

func TestTranslateFailures(t *testing.T) {
	ft := NewForwardTranslator(zap.NewNop())

	_, err := ft.TranslateModel(nil)
	assert.ErrorIs(t, err, ErrNoModel)
	assert.NotEmpty(t, ft.Errors())

	_, err = ft.TranslateModel(osm.NewModel(osm.CURRENT_VERSION))
	assert.ErrorIs(t, err, ErrNoZones)

	m := osm.NewModel(osm.CURRENT_VERSION)
	zone := m.AddThermalZone("Empty Zone")
	space := m.AddSpace("No Surfaces")
	space.SetThermalZone(zone)
	_, err = ft.TranslateModel(m)
	assert.ErrorIs(t, err, ErrNoVolume)
}

func TestUnzonedSpacesAreSkipped(t *testing.T) {
	m := demoModel(t)
	m.AddThermalZone("Unused")
	for _, space := range m.Spaces() {
		if space.Name() == "Hallway" {
			space.Object().SetField(10, "")
		}
	}

	ft := NewForwardTranslator(zap.NewNop())
	prj, err := ft.TranslateModel(m)
	require.NoError(t, err)
	// the hallway zone has no space left, its roof, exterior wall and three interior walls are dropped
	assert.Len(t, ft.ZoneMap(), 3)
	assert.Len(t, leakagePaths(prj), 12)
	assert.NotEmpty(t, ft.Warnings())
}

func square(size, z float64) []r3.Vector {
	return []r3.Vector{{X: 0, Y: 0, Z: z}, {X: 0, Y: size, Z: z}, {X: size, Y: size, Z: z}, {X: size, Y: 0, Z: z}}
}

func TestTranslateStackedZones(t *testing.T) {
	m := osm.NewModel(osm.CURRENT_VERSION)
	// added out of order, levels follow the stories sorted by z
	upperStory := m.AddBuildingStory("S2", 3, 3)
	lowerStory := m.AddBuildingStory("S1", 0, 3)
	lower, err := m.SpaceFromFloorPrint(square(10, 0), 3)
	require.NoError(t, err)
	upper, err := m.SpaceFromFloorPrint(square(10, 3), 3)
	require.NoError(t, err)
	require.Equal(t, 1, m.MatchSurfaces(lower, upper))

	lower.SetBuildingStory(lowerStory)
	upper.SetBuildingStory(upperStory)
	lowerZone := m.AddThermalZone("Lower Zone")
	upperZone := m.AddThermalZone("Upper Zone")
	lower.SetThermalZone(lowerZone)
	upper.SetThermalZone(upperZone)

	ft := NewForwardTranslator(zap.NewNop())
	prj, err := ft.TranslateModel(m)
	require.NoError(t, err)
	assert.True(t, prj.Valid())

	require.Len(t, prj.Levels, 2)
	assert.Equal(t, "S1", prj.Levels[0].Name)
	assert.InDelta(t, 0.0, prj.Levels[0].RefHt, 1e-9)
	assert.Equal(t, "S2", prj.Levels[1].Name)
	assert.InDelta(t, 3.0, prj.Levels[1].RefHt, 1e-9)

	lowerNr := zoneByName(t, prj, "Lower Zone").Nr
	upperNr := zoneByName(t, prj, "Upper Zone").Nr
	assert.Equal(t, 1, zoneByName(t, prj, "Lower Zone").LevelNr)
	assert.Equal(t, 2, zoneByName(t, prj, "Upper Zone").LevelNr)
	assert.InDelta(t, 300.0, zoneByName(t, prj, "Upper Zone").Volume, 1e-6)

	// the ground floor is skipped and the matched floor/ceiling pair gives one path
	leaks := leakagePaths(prj)
	require.Len(t, leaks, 10)
	interior := make([]Path, 0)
	for _, p := range leaks {
		if p.To != AMBIENT {
			interior = append(interior, p)
			continue
		}
		level := prj.Levels[p.LevelNr-1]
		if p.From == upperNr {
			assert.Equal(t, 2, p.LevelNr)
		}
		// heights are relative to the zone's own level
		assert.GreaterOrEqual(t, p.Height, 0.0)
		assert.LessOrEqual(t, p.Height, level.DelHt+1e-9)
	}
	require.Len(t, interior, 1)
	floor := interior[0]
	assert.Equal(t, lowerNr, floor.From)
	assert.Equal(t, upperNr, floor.To)
	assert.Equal(t, 1, floor.LevelNr)
	assert.InDelta(t, 100.0, floor.Multiplier, 1e-6)
	assert.InDelta(t, 3.0, floor.Height, 1e-6)
	assert.Equal(t, "IntFloorAverage", prj.Elements[floor.ElementNr-1].Name)

	// both sides of the pair map to the same path
	assert.Len(t, ft.SurfaceMap(), 11)
}

func TestRunPeriod(t *testing.T) {
	m := demoModel(t)
	require.NoError(t, m.AddObject(osm.NewObjectWithHandle(osm.TypeRunPeriod, "Run Period 1", "1", "1", "1", "31")))

	ft := NewForwardTranslator(zap.NewNop())
	prj, err := ft.TranslateModel(m)
	require.NoError(t, err)

	start, ok := ft.StartDateTime()
	require.True(t, ok)
	end, ok := ft.EndDateTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(osm.DEFAULT_CALENDAR_YEAR, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(osm.DEFAULT_CALENDAR_YEAR, time.February, 1, 0, 0, 0, 0, time.UTC), end)
	assert.True(t, prj.RunControl.Transient())
	assert.True(t, strings.Contains(prj.ToString(), "Jan01 00:00:00 Jan01 00:00:00 Jan31 24:00:00"))
}
