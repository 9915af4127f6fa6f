package geom

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// unitSquare is x >= 0, x <= 1, y >= 0, y <= 1 in normal form.
func unitSquare() []Halfspace {
	return []Halfspace{
		{Normal: [2]float64{-1, 0}, Offset: 0},
		{Normal: [2]float64{1, 0}, Offset: -1},
		{Normal: [2]float64{0, -1}, Offset: 0},
		{Normal: [2]float64{0, 1}, Offset: -1},
	}
}

func sortVertices(vs [][2]float64) {
	sort.Slice(vs, func(a, b int) bool {
		if vs[a][0] != vs[b][0] {
			return vs[a][0] < vs[b][0]
		}
		return vs[a][1] < vs[b][1]
	})
}

func TestHalfspaceIntersectionUnitSquare(t *testing.T) {
	result, err := HalfspaceIntersection2D(unitSquare(), [2]float64{0.5, 0.5})
	require.NoError(t, err)
	require.Len(t, result.Vertices, 4)
	require.Len(t, result.FacetPairs, 4)

	got := append([][2]float64(nil), result.Vertices...)
	sortVertices(got)
	want := [][2]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for k := range want {
		require.InDelta(t, want[k][0], got[k][0], 1e-12)
		require.InDelta(t, want[k][1], got[k][1], 1e-12)
	}
}

func TestHalfspaceIntersectionDropsRedundant(t *testing.T) {
	// x <= 5 is implied by x <= 1 and must appear in no facet pair.
	hs := append(unitSquare(), Halfspace{Normal: [2]float64{1, 0}, Offset: -5})
	result, err := HalfspaceIntersection2D(hs, [2]float64{0.5, 0.5})
	require.NoError(t, err)
	require.Len(t, result.Vertices, 4)
	for _, pair := range result.FacetPairs {
		require.NotContains(t, pair[:], 4)
	}
}

func TestHalfspaceIntersectionTriangle(t *testing.T) {
	// x >= 0, y >= 0, x + y <= 2.
	hs := []Halfspace{
		{Normal: [2]float64{-1, 0}, Offset: 0},
		{Normal: [2]float64{0, -1}, Offset: 0},
		{Normal: [2]float64{1, 1}, Offset: -2},
	}
	result, err := HalfspaceIntersection2D(hs, [2]float64{0.5, 0.5})
	require.NoError(t, err)
	require.Len(t, result.Vertices, 3)

	got := append([][2]float64(nil), result.Vertices...)
	sortVertices(got)
	want := [][2]float64{{0, 0}, {0, 2}, {2, 0}}
	for k := range want {
		require.InDelta(t, want[k][0], got[k][0], 1e-12)
		require.InDelta(t, want[k][1], got[k][1], 1e-12)
	}
}

func TestHalfspaceIntersectionRejectsExteriorPoint(t *testing.T) {
	_, err := HalfspaceIntersection2D(unitSquare(), [2]float64{2, 0.5})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotInterior))
}

func TestHalfspaceIntersectionRejectsBoundaryPoint(t *testing.T) {
	_, err := HalfspaceIntersection2D(unitSquare(), [2]float64{0, 0.5})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotInterior))
}

func TestHalfspaceIntersectionTooFew(t *testing.T) {
	_, err := HalfspaceIntersection2D(unitSquare()[:2], [2]float64{0.5, 0.5})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDegenerate))
}

func TestDominancePolygonsTwoPlanes(t *testing.T) {
	// 1 - gamma crosses the zero plane at gamma = 1, splitting the
	// rectangle [0,2] x [0,1] into two unit-area halves.
	planes := []Plane{
		{A: 1, P: 1, C: 0},
		{A: 0, P: 0, C: 0},
	}
	domains, err := DominancePolygons(planes, 2, 1)
	require.NoError(t, err)
	require.Len(t, domains, 2)
	require.InDelta(t, 1.0, polygonArea(domains[0]), 1e-9)
	require.InDelta(t, 1.0, polygonArea(domains[1]), 1e-9)
}

func TestDominancePolygonsDropsDominated(t *testing.T) {
	planes := []Plane{
		{A: 1, P: 1, C: 0},
		{A: 0, P: 0, C: 0},
		{A: -10, P: 0, C: 0}, // below both everywhere
	}
	domains, err := DominancePolygons(planes, 2, 1)
	require.NoError(t, err)
	require.Len(t, domains, 2)
	require.NotContains(t, domains, 2)
}

func TestDominancePolygonsMergesDuplicates(t *testing.T) {
	planes := []Plane{
		{A: 1, P: 1, C: 0},
		{A: 1, P: 1, C: 0}, // duplicate of plane 0
		{A: 0, P: 0, C: 0},
	}
	domains, err := DominancePolygons(planes, 2, 1)
	require.NoError(t, err)
	require.Contains(t, domains, 0)
	require.NotContains(t, domains, 1)
}

func TestDominancePolygonsTessellate(t *testing.T) {
	planes := []Plane{
		{A: 2.0, P: 3.0, C: 0.1},
		{A: 1.5, P: 1.0, C: 0.4},
		{A: 0.5, P: 0.2, C: 1.2},
		{A: 1.0, P: 0.5, C: 0.8},
	}
	gammaMax, omegaMax := 2.0, 2.0
	domains, err := DominancePolygons(planes, gammaMax, omegaMax)
	require.NoError(t, err)
	require.NotEmpty(t, domains)

	// The dominance regions partition the rectangle up to boundary overlap.
	var total float64
	for _, poly := range domains {
		total += polygonArea(poly)
	}
	require.InDelta(t, gammaMax*omegaMax, total, 1e-9)

	// At each polygon centroid the owning plane is the pointwise maximum.
	for i, poly := range domains {
		var cx, cy float64
		for _, v := range poly {
			cx += v[0]
			cy += v[1]
		}
		cx /= float64(len(poly))
		cy /= float64(len(poly))

		best := math.Inf(-1)
		for _, p := range planes {
			if q := p.eval(cx, cy); q > best {
				best = q
			}
		}
		require.InDelta(t, best, planes[i].eval(cx, cy), 1e-9)
	}
}

func TestDominancePolygonsEmptyInput(t *testing.T) {
	_, err := DominancePolygons(nil, 1, 1)
	require.Error(t, err)
	_, err = DominancePolygons([]Plane{{A: 1}}, 0, 1)
	require.Error(t, err)
}
