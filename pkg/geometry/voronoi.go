package geometry

import (
	"math"
	"slices"

	"github.com/matzehuels/voronoigen/pkg/errors"
)

// Partitioner computes Voronoi facets bounded to [0,Width]×[0,Height].
type Partitioner struct {
	Width  int
	Height int
}

// NewPartitioner returns a partitioner for a width×height canvas.
func NewPartitioner(width, height int) *Partitioner {
	return &Partitioner{Width: width, Height: height}
}

// Partition returns one convex facet per input point, in input order.
//
// Coincident points do not bisect each other, so every copy of a duplicated
// site receives the same facet and the count still matches the input.
// Points must lie inside [0,Width)×[0,Height).
func (p *Partitioner) Partition(points []Point) ([]Facet, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, errors.Geometry("canvas %dx%d has no area", p.Width, p.Height)
	}
	if len(points) == 0 {
		return nil, errors.Geometry("cannot partition an empty point set")
	}
	for i, pt := range points {
		if pt.X < 0 || pt.X >= p.Width || pt.Y < 0 || pt.Y >= p.Height {
			return nil, errors.Geometry("point %d (%d,%d) lies outside the %dx%d canvas", i, pt.X, pt.Y, p.Width, p.Height)
		}
	}

	facets := make([]Facet, len(points))
	order := make([]int, len(points))
	for i, site := range points {
		facets[i] = Facet{Site: site, Vertices: p.cell(points, i, order)}
	}
	return facets, nil
}

// cell clips the canvas rectangle by the bisectors between site i and its
// neighbours, nearest first. Once the next neighbour is more than twice the
// cell radius away, no remaining bisector can cut the cell.
func (p *Partitioner) cell(points []Point, i int, order []int) []Point {
	site := points[i]
	for j := range order {
		order[j] = j
	}
	slices.SortFunc(order, func(a, b int) int {
		return DistSq(site, points[a]) - DistSq(site, points[b])
	})

	sv := site.vec()
	poly := rectangle(p.Width, p.Height)
	radiusSq := cellRadiusSq(sv, poly)

	for _, j := range order {
		other := points[j]
		d := DistSq(site, other)
		if d == 0 {
			continue
		}
		if float64(d) > 4*radiusSq {
			break
		}
		poly = bisector(sv, other.vec()).clip(poly)
		if len(poly) == 0 {
			break
		}
		radiusSq = cellRadiusSq(sv, poly)
	}
	return roundPolygon(poly)
}

func cellRadiusSq(site Vec, poly []Vec) float64 {
	var r float64
	for _, v := range poly {
		dx, dy := v.X-site.X, v.Y-site.Y
		r = math.Max(r, dx*dx+dy*dy)
	}
	return r
}

// roundPolygon snaps vertices to the pixel grid and drops the repeats that
// rounding can introduce.
func roundPolygon(poly []Vec) []Point {
	out := make([]Point, 0, len(poly))
	for _, v := range poly {
		pt := v.round()
		if len(out) > 0 && out[len(out)-1] == pt {
			continue
		}
		out = append(out, pt)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return dropReflex(out)
}

// dropReflex removes vertices that rounding turned reflex or collinear, so
// the rounded facet stays convex.
func dropReflex(pts []Point) []Point {
	sign := orientation(pts)
	if sign == 0 {
		return pts
	}
	for changed := true; changed && len(pts) > 3; {
		changed = false
		for i := 0; i < len(pts) && len(pts) > 3; i++ {
			n := len(pts)
			if cross(pts[(i+n-1)%n], pts[i], pts[(i+1)%n])*sign <= 0 {
				pts = slices.Delete(pts, i, i+1)
				changed = true
				i--
			}
		}
	}
	return pts
}

func cross(o, a, b Point) int {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// orientation returns the sign of the polygon's signed area.
func orientation(pts []Point) int {
	var sum int
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	switch {
	case sum > 0:
		return 1
	case sum < 0:
		return -1
	}
	return 0
}
