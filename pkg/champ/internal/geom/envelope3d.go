package geom

import (
	"fmt"
	"math"
)

// Plane is one partition's affine quality function
// Q(gamma, omega) = A - gamma*P + omega*C.
type Plane struct {
	A, P, C float64
}

// eval evaluates the plane at a (gamma, omega) point.
func (p Plane) eval(gamma, omega float64) float64 {
	return p.A - gamma*p.P + omega*p.C
}

// DominancePolygons computes, for each plane, the convex polygon of the
// rectangle [0, gammaMax] x [0, omegaMax] over which it is the pointwise
// maximum of all planes (the projection of the upper envelope). Planes
// nowhere maximal are absent from the result. Exact duplicates are merged
// onto the first occurrence.
func DominancePolygons(planes []Plane, gammaMax, omegaMax float64) (map[int][][2]float64, error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("%w: no planes", ErrDegenerate)
	}
	if gammaMax <= 0 || omegaMax <= 0 {
		return nil, fmt.Errorf("%w: empty parameter rectangle (%g x %g)", ErrDegenerate, gammaMax, omegaMax)
	}

	firstOf := make(map[Plane]int, len(planes))
	for i, p := range planes {
		if _, seen := firstOf[p]; !seen {
			firstOf[p] = i
		}
	}

	rect := [][2]float64{{0, 0}, {gammaMax, 0}, {gammaMax, omegaMax}, {0, omegaMax}}

	domains := make(map[int][][2]float64)
	for i, pi := range planes {
		if firstOf[pi] != i {
			continue
		}
		poly := rect
		for j, pj := range planes {
			if firstOf[pj] != j || i == j {
				continue
			}
			// Keep the halfplane where plane i is at least plane j:
			// (A_i - A_j) - gamma*(P_i - P_j) + omega*(C_i - C_j) >= 0.
			poly = clipHalfplane(poly, pj.P-pi.P, pi.C-pj.C, pi.A-pj.A)
			if len(poly) == 0 {
				break
			}
		}
		if polygonArea(poly) > 1e-10 {
			domains[i] = poly
		}
	}

	if len(domains) == 0 {
		return nil, fmt.Errorf("%w: no plane dominates any region of the rectangle", ErrDegenerate)
	}
	return domains, nil
}

// clipHalfplane clips a convex polygon against a*x + b*y + c >= 0
// (Sutherland-Hodgman, single edge). A small tolerance keeps vertices that
// lie on the boundary.
func clipHalfplane(poly [][2]float64, a, b, c float64) [][2]float64 {
	const tol = 1e-12

	var out [][2]float64
	n := len(poly)
	for i := 0; i < n; i++ {
		cur := poly[i]
		next := poly[(i+1)%n]
		curVal := a*cur[0] + b*cur[1] + c
		nextVal := a*next[0] + b*next[1] + c

		if curVal >= -tol {
			out = append(out, cur)
		}
		if (curVal > tol && nextVal < -tol) || (curVal < -tol && nextVal > tol) {
			t := curVal / (curVal - nextVal)
			out = append(out, [2]float64{
				cur[0] + t*(next[0]-cur[0]),
				cur[1] + t*(next[1]-cur[1]),
			})
		}
	}
	return out
}

// polygonArea is the absolute shoelace area of a polygon.
func polygonArea(poly [][2]float64) float64 {
	if len(poly) < 3 {
		return 0
	}
	var area float64
	for i := range poly {
		j := (i + 1) % len(poly)
		area += poly[i][0]*poly[j][1] - poly[j][0]*poly[i][1]
	}
	return math.Abs(area) / 2
}
