package osm

import (
	"sort"

	"github.com/lintang-b-s/osm2prj/pkg/geometry"
	"github.com/lintang-b-s/osm2prj/pkg/spatialindex"
)

// MatchSurfaces. links surfaces of a and b that are the same polygon wound in opposite directions.
// partially overlapping surfaces are left alone, they would need to be intersected first.
// returns the number of matched pairs.
func (m *Model) MatchSurfaces(a, b Space) int {
	return m.matchSurfaces([]Space{a, b})
}

// MatchAllSurfaces. MatchSurfaces for every pair of spaces in the model.
func (m *Model) MatchAllSurfaces() int {
	return m.matchSurfaces(m.Spaces())
}

func (m *Model) matchSurfaces(spaces []Space) int {
	rt := spatialindex.NewRtree[int](VERTEX_TOLERANCE)
	candidates := make([]Surface, 0)
	polys := make([]geometry.Polygon, 0)
	owners := make([]Space, 0)
	for _, space := range spaces {
		for _, surface := range space.Surfaces() {
			if _, ok := surface.AdjacentSurface(); ok {
				continue
			}
			poly := surface.Vertices()
			rt.Insert(poly, len(candidates))
			candidates = append(candidates, surface)
			polys = append(polys, poly)
			owners = append(owners, space)
		}
	}

	matched := make([]bool, len(candidates))
	pairs := 0
	for i := range candidates {
		if matched[i] {
			continue
		}
		near := rt.SearchIntersecting(polys[i])
		sort.Ints(near)
		for _, j := range near {
			if j <= i || matched[j] || owners[i].Handle() == owners[j].Handle() {
				continue
			}
			if !geometry.CoincidentReversed(polys[i], polys[j], VERTEX_TOLERANCE) {
				continue
			}
			candidates[i].SetAdjacentSurface(candidates[j])
			matched[i], matched[j] = true, true
			pairs++
			break
		}
	}
	return pairs
}
