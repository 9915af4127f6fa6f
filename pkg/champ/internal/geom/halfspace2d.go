// Package geom provides the exact halfspace-intersection geometry backing
// the CHAMP domain extraction: a 2D intersection via convex-hull duality
// around an interior point, and the 3D upper-envelope projection onto the
// resolution-parameter plane.
package geom

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrNotInterior reports a seed point that does not strictly satisfy
	// every halfspace.
	ErrNotInterior = errors.New("geom: point is not strictly interior to all halfspaces")

	// ErrDegenerate reports input whose intersection is lower-dimensional
	// or empty, for which no vertex structure can be recovered.
	ErrDegenerate = errors.New("geom: halfspace intersection is degenerate")
)

// Halfspace is the inequality Normal[0]*x + Normal[1]*y + Offset <= 0.
type Halfspace struct {
	Normal [2]float64
	Offset float64
}

// Intersection2D is the vertex set of a bounded 2D halfspace intersection.
// FacetPairs[k] names the two input halfspaces whose boundary lines meet at
// Vertices[k].
type Intersection2D struct {
	Vertices   [][2]float64
	FacetPairs [][2]int
}

// HalfspaceIntersection2D computes the vertices of the intersection of hs,
// which must be bounded and contain interior strictly. It dualizes each
// halfspace around the interior point, takes the convex hull of the dual
// points, and maps hull edges back to intersection vertices; halfspaces
// absent from the hull are redundant and appear in no FacetPair.
func HalfspaceIntersection2D(hs []Halfspace, interior [2]float64) (*Intersection2D, error) {
	if len(hs) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 halfspaces, got %d", ErrDegenerate, len(hs))
	}

	// Translate so the interior point is the origin; each halfspace becomes
	// n.x <= b with b > 0, and dualizes to the point n/b.
	duals := make([][2]float64, len(hs))
	for i, h := range hs {
		b := -(h.Offset + h.Normal[0]*interior[0] + h.Normal[1]*interior[1])
		if b <= 1e-12 {
			return nil, fmt.Errorf("%w: halfspace %d has margin %g", ErrNotInterior, i, b)
		}
		duals[i] = [2]float64{h.Normal[0] / b, h.Normal[1] / b}
	}

	hull := convexHull(duals)
	if len(hull) < 3 {
		return nil, fmt.Errorf("%w: dual hull has %d vertices", ErrDegenerate, len(hull))
	}

	result := &Intersection2D{}
	for k := range hull {
		i := hull[k]
		j := hull[(k+1)%len(hull)]
		v, ok := lineIntersection(hs[i], hs[j])
		if !ok {
			return nil, fmt.Errorf("%w: halfspaces %d and %d are parallel on the hull", ErrDegenerate, i, j)
		}
		result.Vertices = append(result.Vertices, v)
		result.FacetPairs = append(result.FacetPairs, [2]int{i, j})
	}
	return result, nil
}

// convexHull returns indices of the hull of pts in counter-clockwise order,
// excluding points interior to hull edges (strict turns only).
func convexHull(pts [][2]float64) []int {
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		pa, pb := pts[idx[a]], pts[idx[b]]
		if pa[0] != pb[0] {
			return pa[0] < pb[0]
		}
		return pa[1] < pb[1]
	})

	cross := func(o, a, b [2]float64) float64 {
		return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
	}

	var lower []int
	for _, i := range idx {
		for len(lower) >= 2 && cross(pts[lower[len(lower)-2]], pts[lower[len(lower)-1]], pts[i]) <= 1e-14 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, i)
	}
	var upper []int
	for k := len(idx) - 1; k >= 0; k-- {
		i := idx[k]
		for len(upper) >= 2 && cross(pts[upper[len(upper)-2]], pts[upper[len(upper)-1]], pts[i]) <= 1e-14 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, i)
	}
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// lineIntersection solves the 2x2 system placing the two halfspace boundary
// lines through their common point.
func lineIntersection(h1, h2 Halfspace) ([2]float64, bool) {
	a1, b1, c1 := h1.Normal[0], h1.Normal[1], -h1.Offset
	a2, b2, c2 := h2.Normal[0], h2.Normal[1], -h2.Offset
	det := a1*b2 - a2*b1
	if math.Abs(det) < 1e-14 {
		return [2]float64{}, false
	}
	return [2]float64{
		(c1*b2 - c2*b1) / det,
		(a1*c2 - a2*c1) / det,
	}, true
}
