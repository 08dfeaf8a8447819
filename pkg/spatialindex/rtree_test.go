package spatialindex

import (
	"math"
	"testing"

	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testNode struct {
	id       int64
	lat, lon float64
}

type testEdge struct {
	id             int64
	source, target int64
	cost           float64
	carAccess      bool
}

func buildGraph(t *testing.T, nodes []testNode, edges []testEdge) *datastructure.Graph {
	gb := datastructure.NewGraphBuilder()
	for _, n := range nodes {
		require.NoError(t, gb.AddNode(n.id, n.lat, n.lon))
	}
	for _, e := range edges {
		require.NoError(t, gb.AddEdge(e.id, e.source, e.target, e.cost, e.carAccess, nil))
	}
	g, err := gb.Build()
	require.NoError(t, err)
	return g
}

func centerGraph(t *testing.T) *datastructure.Graph {
	return buildGraph(t,
		[]testNode{
			{id: 902205, lat: 52.3730, lon: 4.8930},
			{id: 1001, lat: 52.3712, lon: 4.8921},
			{id: 1002, lat: 52.371198, lon: 4.8920418},
			{id: 1003, lat: 52.3800, lon: 4.9000},
			{id: 1004, lat: 52.3600, lon: 4.8800},
		},
		[]testEdge{
			{id: 1, source: 902205, target: 1001, cost: 120, carAccess: true},
			{id: 2, source: 902205, target: 1002, cost: 0, carAccess: true},
			{id: 3, source: 902205, target: 1003, cost: 900, carAccess: true},
			{id: 5, source: 1003, target: 1004, cost: 0, carAccess: false},
		})
}

func nodeIdOf(t *testing.T, g *datastructure.Graph, u datastructure.Index) int64 {
	require.NotEqual(t, datastructure.INVALID_VERTEX_ID, u)
	return g.GetVertex(u).GetID()
}

func TestIsCandidate(t *testing.T) {
	testCases := []struct {
		name      string
		cost      float64
		carAccess bool
		want      bool
	}{
		{name: "car edge with cost", cost: 10, carAccess: true, want: true},
		{name: "zero cost car connector", cost: 0, carAccess: true, want: false},
		{name: "zero cost, no car access", cost: 0, carAccess: false, want: true},
		{name: "no car access", cost: 3, carAccess: false, want: true},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			e := datastructure.NewEdge(1, 0, 1, tt.cost, tt.carAccess, nil)
			assert.Equal(t, tt.want, IsCandidate(e))
		})
	}
}

func TestLocate(t *testing.T) {
	g := centerGraph(t)
	rt := NewRtree(0.05, 16)
	rt.Build(g, zap.NewNop())
	assert.Equal(t, 3, rt.Len(), "zero cost car edge is not indexed")

	t.Run("known query location", func(t *testing.T) {
		u, err := rt.Locate(52.371198, 4.8920418)
		require.NoError(t, err)
		assert.Equal(t, int64(1001), nodeIdOf(t, g, u),
			"node 1002 lies exactly on the query but is only reached by a zero cost car edge")
	})

	t.Run("deterministic and cached", func(t *testing.T) {
		first, err := rt.Locate(52.371198, 4.8920418)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			u, err := rt.Locate(52.371198, 4.8920418)
			require.NoError(t, err)
			assert.Equal(t, first, u)
		}
	})

	t.Run("far outside the network", func(t *testing.T) {
		u, err := rt.Locate(48.8566, 2.3522)
		require.NoError(t, err)
		assert.Equal(t, int64(1004), nodeIdOf(t, g, u), "south west corner is nearest to Paris")
	})
}

func TestLocateMatchesExhaustiveScan(t *testing.T) {
	g := centerGraph(t)
	rt := NewRtree(0.01, 16)
	rt.Build(g, zap.NewNop())

	queries := [][2]float64{
		{52.3731, 4.8931},
		{52.3650, 4.8850},
		{52.3790, 4.8990},
		{52.3712, 4.8950},
		{52.4000, 4.9500},
	}
	for _, q := range queries {
		u, err := rt.Locate(q[0], q[1])
		require.NoError(t, err)

		want, _, found := rt.nearest(rt.all(), pointOf(q))
		require.True(t, found)
		assert.Equal(t, want, u, "query %v", q)
	}
}

func TestSearchWithinRadius(t *testing.T) {
	g := centerGraph(t)
	rt := NewRtree(0.05, 16)
	rt.Build(g, zap.NewNop())

	got := rt.SearchWithinRadius(52.3712, 4.8921, 0.01)
	require.NotEmpty(t, got)
	edgeIds := make(map[int64]bool)
	for _, c := range got {
		edgeIds[g.GetEdge(c.GetEdge()).GetEdgeId()] = true
		assert.Equal(t, g.GetEdge(c.GetEdge()).GetHead(), c.GetHead())
	}
	assert.True(t, edgeIds[1])
	assert.False(t, edgeIds[2])

	assert.Len(t, rt.SearchWithinRadius(52.3712, 4.8921, 100), 3)
}

func TestLocateTieBreak(t *testing.T) {
	shared := []geo.Coordinate{geo.NewCoordinate(52.3700, 4.8900), geo.NewCoordinate(52.3710, 4.8910)}

	gb := datastructure.NewGraphBuilder()
	for _, n := range []testNode{
		{id: 1, lat: 52.3690, lon: 4.8890},
		{id: 2, lat: 52.3720, lon: 4.8920},
		{id: 9, lat: 52.3711, lon: 4.8911},
		{id: 5, lat: 52.3712, lon: 4.8912},
	} {
		require.NoError(t, gb.AddNode(n.id, n.lat, n.lon))
	}
	// same geometry, different heads
	require.NoError(t, gb.AddEdge(10, 1, 9, 10, true, shared))
	require.NoError(t, gb.AddEdge(11, 2, 5, 10, true, shared))
	g, err := gb.Build()
	require.NoError(t, err)

	rt := NewRtree(0.05, 16)
	rt.Build(g, zap.NewNop())
	u, err := rt.Locate(52.3705, 4.8906)
	require.NoError(t, err)
	assert.Equal(t, int64(5), nodeIdOf(t, g, u))
}

func pointOf(q [2]float64) geo.Coordinate {
	return geo.NewCoordinate(q[0], q[1])
}

func TestLocateInvalidLocation(t *testing.T) {
	rt := NewRtree(0.05, 16)
	rt.Build(centerGraph(t), zap.NewNop())

	testCases := []struct {
		name     string
		lat, lon float64
	}{
		{name: "lat NaN", lat: math.NaN(), lon: 4.89},
		{name: "lon NaN", lat: 52.37, lon: math.NaN()},
		{name: "lat infinite", lat: math.Inf(1), lon: 4.89},
		{name: "lon negative infinite", lat: 52.37, lon: math.Inf(-1)},
		{name: "lat past the pole", lat: 91, lon: 4.89},
		{name: "lon past the antimeridian", lat: 52.37, lon: -180.5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			u, err := rt.Locate(tt.lat, tt.lon)
			assert.ErrorIs(t, err, ErrInvalidLocation)
			assert.Equal(t, datastructure.INVALID_VERTEX_ID, u)
			assert.Zero(t, rt.cache.Len(), "rejected locations are not cached")
		})
	}

	_, err := rt.Locate(90, 180)
	require.NoError(t, err, "bounds are inclusive")
	assert.Equal(t, 1, rt.cache.Len())
}

func TestLocateNoCandidates(t *testing.T) {
	t.Run("empty graph", func(t *testing.T) {
		rt := NewRtree(0.05, 16)
		rt.Build(buildGraph(t, nil, nil), zap.NewNop())
		_, err := rt.Locate(52.37, 4.89)
		assert.ErrorIs(t, err, ErrNoReachableNode)
	})

	t.Run("only zero cost car edges", func(t *testing.T) {
		g := buildGraph(t,
			[]testNode{{id: 1, lat: 52.37, lon: 4.89}, {id: 2, lat: 52.371, lon: 4.891}},
			[]testEdge{{id: 1, source: 1, target: 2, cost: 0, carAccess: true}})
		rt := NewRtree(0.05, 16)
		rt.Build(g, zap.NewNop())
		_, err := rt.Locate(52.37, 4.89)
		assert.ErrorIs(t, err, ErrNoReachableNode)
	})

	t.Run("not built", func(t *testing.T) {
		_, err := NewRtree(0, 0).Locate(52.37, 4.89)
		assert.ErrorIs(t, err, ErrNoReachableNode)
	})
}
