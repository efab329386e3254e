// Package geometry provides the bounded Voronoi partitioner used to turn a
// seed-point set into convex facets that tile the canvas.
//
// Cells are built by per-site half-plane intersection: the canvas rectangle is
// clipped, Sutherland-Hodgman style, by the perpendicular bisector between the
// site and every other site that can still reach the cell. Vertices are
// computed in float64 and rounded to the pixel grid on output.
package geometry

import "math"

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Vec is a float64 coordinate used during clipping.
type Vec struct {
	X, Y float64
}

func (p Point) vec() Vec { return Vec{float64(p.X), float64(p.Y)} }

func (v Vec) round() Point {
	return Point{int(math.Round(v.X)), int(math.Round(v.Y))}
}

// DistSq returns the squared Euclidean distance between a and b.
func DistSq(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Facet is one convex Voronoi cell with its vertices rounded to the pixel grid.
type Facet struct {
	Site     Point
	Vertices []Point
}

// Bounds returns the inclusive bounding box of the facet vertices.
func (f Facet) Bounds() (minX, minY, maxX, maxY int) {
	if len(f.Vertices) == 0 {
		return f.Site.X, f.Site.Y, f.Site.X, f.Site.Y
	}
	minX, minY = f.Vertices[0].X, f.Vertices[0].Y
	maxX, maxY = minX, minY
	for _, v := range f.Vertices[1:] {
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY
}

// Area returns the unsigned shoelace area of the facet.
func (f Facet) Area() float64 {
	n := len(f.Vertices)
	if n < 3 {
		return 0
	}
	var sum int
	for i, a := range f.Vertices {
		b := f.Vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(float64(sum)) / 2
}

// IsConvex reports whether the facet vertices form a convex polygon.
// Collinear runs are allowed.
func (f Facet) IsConvex() bool {
	n := len(f.Vertices)
	if n < 3 {
		return true
	}
	sign := 0
	for i := range n {
		c := cross(f.Vertices[i], f.Vertices[(i+1)%n], f.Vertices[(i+2)%n])
		switch {
		case c > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case c < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}

// Contains reports whether p lies inside or on the boundary of the facet.
func (f Facet) Contains(p Point) bool {
	n := len(f.Vertices)
	if n < 3 {
		return false
	}
	pos, neg := false, false
	for i, a := range f.Vertices {
		c := cross(a, f.Vertices[(i+1)%n], p)
		if c > 0 {
			pos = true
		} else if c < 0 {
			neg = true
		}
		if pos && neg {
			return false
		}
	}
	return true
}
