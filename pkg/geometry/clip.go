package geometry

const clipEps = 1e-9

// halfPlane is the set of points v with N·v <= C.
type halfPlane struct {
	N Vec
	C float64
}

// bisector returns the half-plane of points at least as close to p as to q.
func bisector(p, q Vec) halfPlane {
	n := Vec{q.X - p.X, q.Y - p.Y}
	c := (q.X*q.X + q.Y*q.Y - p.X*p.X - p.Y*p.Y) / 2
	return halfPlane{N: n, C: c}
}

func (h halfPlane) eval(v Vec) float64 {
	return h.N.X*v.X + h.N.Y*v.Y - h.C
}

// clip returns the part of the convex polygon inside h.
func (h halfPlane) clip(polygon []Vec) []Vec {
	if len(polygon) == 0 {
		return nil
	}
	clipped := make([]Vec, 0, len(polygon)+1)

	for i := range polygon {
		current := polygon[i]
		next := polygon[(i+1)%len(polygon)]
		fc, fn := h.eval(current), h.eval(next)
		currentInside := fc <= clipEps
		nextInside := fn <= clipEps

		if currentInside {
			clipped = append(clipped, current)
			if !nextInside {
				clipped = append(clipped, intersect(current, next, fc, fn))
			}
		} else if nextInside {
			clipped = append(clipped, intersect(current, next, fc, fn))
		}
	}
	return clipped
}

// intersect returns the point where segment a-b crosses the zero level of
// the half-plane, given the evaluated values at both ends.
func intersect(a, b Vec, fa, fb float64) Vec {
	t := min(max(fa/(fa-fb), 0), 1)
	return Vec{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}
}

// rectangle returns the canvas rectangle [0,width]×[0,height] as a polygon.
func rectangle(width, height int) []Vec {
	w, h := float64(width), float64(height)
	return []Vec{{0, 0}, {0, h}, {w, h}, {w, 0}}
}
