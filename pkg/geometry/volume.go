package geometry

import "github.com/lintang-b-s/osm2prj/pkg/util"

// EnclosedVolume. volume of the polyhedron bounded by faces with outward winding, by the divergence theorem.
// open or inconsistently wound shells give a meaningless (possibly non-positive) result.
func EnclosedVolume(faces []Polygon) float64 {
	parts := make([]float64, 0, len(faces))
	for _, face := range faces {
		if len(face) < 3 {
			continue
		}
		origin := face[0]
		var v float64
		for i := 1; i+1 < len(face); i++ {
			v += origin.Dot(face[i].Cross(face[i+1]))
		}
		parts = append(parts, v/6.0)
	}
	return util.Sum(parts)
}
