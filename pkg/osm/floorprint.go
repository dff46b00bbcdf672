package osm

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/lintang-b-s/osm2prj/pkg/geometry"
	"github.com/lintang-b-s/osm2prj/pkg/util"
)

var (
	ErrFloorPrintNotHorizontal = errors.New("floor print points must share one z coordinate")
	ErrFloorPrintHeight        = errors.New("floor to ceiling height must be positive")
)

// AddSpace. new empty space.
func (m *Model) AddSpace(name string) Space {
	obj := NewObjectWithHandle(TypeSpace, name)
	obj.SetField(spaceOutdoorAirField, "")
	_ = m.AddObject(obj)
	return Space{obj: obj, model: m}
}

func (m *Model) AddSurface(space Space, name, surfaceType, boundary string, poly geometry.Polygon) Surface {
	obj := NewObjectWithHandle(TypeSurface, name, surfaceType, "", space.Handle(), boundary, "")
	sun, wind := "NoSun", "NoWind"
	if boundary == BoundaryOutdoors {
		sun, wind = "SunExposed", "WindExposed"
	}
	obj.SetField(surfaceSunExposureField, sun)
	obj.SetField(surfaceWindExposureField, wind)
	obj.SetField(surfaceNumberOfVerticesField, "")
	writeVertices(obj, surfaceFirstVertexField, poly)
	_ = m.AddObject(obj)
	return Surface{obj: obj, model: m}
}

// SpaceFromFloorPrint. creates a space extruded from a horizontal floor print: one floor, one roof and a wall
// per edge, all outward facing and exposed to outdoors (ground for the floor at z=0).
func (m *Model) SpaceFromFloorPrint(points []r3.Vector, floorToCeilingHeight float64) (Space, error) {
	if floorToCeilingHeight <= 0 {
		return Space{}, ErrFloorPrintHeight
	}
	floor := geometry.Polygon(points)
	if err := floor.Validate(); err != nil {
		return Space{}, fmt.Errorf("invalid floor print: %w", err)
	}
	z := points[0].Z
	for _, p := range points[1:] {
		if util.Abs(p.Z-z) > VERTEX_TOLERANCE {
			return Space{}, ErrFloorPrintNotHorizontal
		}
	}

	normal, _ := floor.UnitNormal()
	if normal.Z > 0 {
		// floors face down
		floor = floor.Reverse()
	}
	up := r3.Vector{Z: floorToCeilingHeight}
	roof := floor.Translate(up).Reverse()

	space := m.AddSpace(fmt.Sprintf("Space %d", len(m.Spaces())+1))
	floorBoundary := BoundaryOutdoors
	if util.Abs(z) < VERTEX_TOLERANCE {
		floorBoundary = BoundaryGround
	}
	surfaceIdx := len(m.Surfaces())
	nextName := func() string {
		surfaceIdx++
		return fmt.Sprintf("Surface %d", surfaceIdx)
	}

	m.AddSurface(space, nextName(), SurfaceTypeFloor, floorBoundary, floor)
	m.AddSurface(space, nextName(), SurfaceTypeRoofCeiling, BoundaryOutdoors, roof)
	for i := 0; i < len(floor); i++ {
		a := floor[i]
		b := floor[(i+1)%len(floor)]
		wall := geometry.Polygon{b.Add(up), b, a, a.Add(up)}
		m.AddSurface(space, nextName(), SurfaceTypeWall, BoundaryOutdoors, wall)
	}
	return space, nil
}
