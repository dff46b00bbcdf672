package geometry

import (
	"errors"
	"math"

	"github.com/golang/geo/r3"
	"github.com/lintang-b-s/osm2prj/pkg/util"
)

const (
	EPSILON = 1e-6
)

var (
	ErrDegeneratePolygon = errors.New("polygon needs at least 3 non-collinear vertices")
	ErrNonPlanarPolygon  = errors.New("polygon vertices are not coplanar")
)

type Polygon []r3.Vector

func NewPoint(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// NewellVector. un-normalized normal with length 2*area (Newell's method).
// vertices counterclockwise seen from outside give an outward vector.
func (p Polygon) NewellVector() r3.Vector {
	var n r3.Vector
	for i := 0; i < len(p); i++ {
		cur := p[i]
		next := p[(i+1)%len(p)]
		n.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		n.Y += (cur.Z - next.Z) * (cur.X + next.X)
		n.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	return n
}

// Area. in m^2
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	return p.NewellVector().Norm() / 2.0
}

func (p Polygon) UnitNormal() (r3.Vector, error) {
	if len(p) < 3 {
		return r3.Vector{}, ErrDegeneratePolygon
	}
	n := p.NewellVector()
	if n.Norm() < EPSILON {
		return r3.Vector{}, ErrDegeneratePolygon
	}
	return n.Normalize(), nil
}

func (p Polygon) Centroid() r3.Vector {
	var c r3.Vector
	if len(p) == 0 {
		return c
	}
	for _, v := range p {
		c = c.Add(v)
	}
	return c.Mul(1.0 / float64(len(p)))
}

// IsPlanar. every vertex lies within tol of the best-fit plane through the centroid.
func (p Polygon) IsPlanar(tol float64) bool {
	n, err := p.UnitNormal()
	if err != nil {
		return false
	}
	c := p.Centroid()
	for _, v := range p {
		if util.Abs(v.Sub(c).Dot(n)) > tol {
			return false
		}
	}
	return true
}

func (p Polygon) Validate() error {
	if _, err := p.UnitNormal(); err != nil {
		return err
	}
	if !p.IsPlanar(1e-3) {
		return ErrNonPlanarPolygon
	}
	return nil
}

func (p Polygon) Reverse() Polygon {
	return util.ReverseG(p)
}

func (p Polygon) Translate(offset r3.Vector) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Add(offset)
	}
	return out
}

func (p Polygon) BoundingBox() (r3.Vector, r3.Vector) {
	if len(p) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	lo, hi := p[0], p[0]
	for _, v := range p[1:] {
		lo = r3.Vector{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vector{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	return lo, hi
}

func (p Polygon) MinZ() float64 {
	lo, _ := p.BoundingBox()
	return lo.Z
}

// Tilt. angle in degrees between outward normal and +z. 0 for roofs, 90 for walls, 180 for floors.
func (p Polygon) Tilt() float64 {
	n, err := p.UnitNormal()
	if err != nil {
		return 0
	}
	cos := math.Max(-1, math.Min(1, n.Z))
	return math.Acos(cos) * 180.0 / math.Pi
}

func Eq(a, b r3.Vector, tol float64) bool {
	return a.Sub(b).Norm() <= tol
}

// CoincidentReversed. true if q has the vertices of p in the opposite winding, starting from any vertex.
// such a pair is the same wall seen from its two sides.
func CoincidentReversed(p, q Polygon, tol float64) bool {
	n := len(p)
	if n != len(q) || n == 0 {
		return false
	}
	for k := 0; k < n; k++ {
		if !Eq(p[0], q[k], tol) {
			continue
		}
		match := true
		for i := 1; i < n; i++ {
			if !Eq(p[i], q[((k-i)%n+n)%n], tol) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
