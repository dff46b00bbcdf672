package spatialindex

import (
	"github.com/golang/geo/r3"
	"github.com/lintang-b-s/osm2prj/pkg/geometry"
	"github.com/tidwall/rtree"
)

// Rtree. plan-view (x,y) r-tree over polygon bounding boxes, with the z range kept on the entry.
// vertical walls have zero-width boxes, so every box is padded by the tolerance.
type Rtree[T comparable] struct {
	tr        *rtree.RTreeG[entry[T]]
	tolerance float64
}

type entry[T comparable] struct {
	item T
	minZ float64
	maxZ float64
}

func NewRtree[T comparable](tolerance float64) *Rtree[T] {
	var tr rtree.RTreeG[entry[T]]
	return &Rtree[T]{
		tr:        &tr,
		tolerance: tolerance,
	}
}

func (rt *Rtree[T]) Insert(poly geometry.Polygon, item T) {
	lo, hi := rt.paddedBox(poly)
	rt.tr.Insert([2]float64{lo.X, lo.Y}, [2]float64{hi.X, hi.Y},
		entry[T]{item: item, minZ: lo.Z, maxZ: hi.Z})
}

func (rt *Rtree[T]) Len() int {
	return rt.tr.Len()
}

// SearchIntersecting. items whose padded 3d bounding box intersects the one of poly.
func (rt *Rtree[T]) SearchIntersecting(poly geometry.Polygon) []T {
	lo, hi := rt.paddedBox(poly)
	found := make([]T, 0)
	rt.tr.Search([2]float64{lo.X, lo.Y}, [2]float64{hi.X, hi.Y},
		func(min, max [2]float64, e entry[T]) bool {
			if e.maxZ >= lo.Z && e.minZ <= hi.Z {
				found = append(found, e.item)
			}
			return true
		})
	return found
}

func (rt *Rtree[T]) paddedBox(poly geometry.Polygon) (r3.Vector, r3.Vector) {
	lo, hi := poly.BoundingBox()
	pad := r3.Vector{X: rt.tolerance, Y: rt.tolerance, Z: rt.tolerance}
	return lo.Sub(pad), hi.Add(pad)
}
