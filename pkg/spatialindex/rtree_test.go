package spatialindex

import (
	"sort"
	"testing"

	"github.com/lintang-b-s/osm2prj/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func wall(x0, y0, x1, y1, z0, z1 float64) geometry.Polygon {
	return geometry.Polygon{
		geometry.NewPoint(x1, y1, z1), geometry.NewPoint(x1, y1, z0),
		geometry.NewPoint(x0, y0, z0), geometry.NewPoint(x0, y0, z1),
	}
}

func TestRtreeSearchIntersecting(t *testing.T) {
	rt := NewRtree[string](0.01)
	rt.Insert(wall(8, 0, 8, 10, 0, 3), "library east")
	rt.Insert(wall(8, 10, 8, 17, 0, 3), "library north east")
	rt.Insert(wall(0, 0, 0, 17, 0, 3), "library west")
	rt.Insert(wall(8, 0, 8, 10, 3, 6), "upper floor")

	assert.Equal(t, 4, rt.Len())

	got := rt.SearchIntersecting(wall(8, 10, 8, 0, 0, 3))
	sort.Strings(got)
	// touching end points and the edge of the upper story fall inside the tolerance
	assert.Equal(t, []string{"library east", "library north east", "upper floor"}, got)

	got = rt.SearchIntersecting(wall(0, 5, 0, 2, 0, 3))
	assert.Equal(t, []string{"library west"}, got)

	got = rt.SearchIntersecting(wall(20, 0, 20, 10, 0, 3))
	assert.Empty(t, got)
}
