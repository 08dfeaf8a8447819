package datastructure

import (
	"testing"

	"github.com/lintang-b-s/Bollardx/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestGraph(t *testing.T) *Graph {
	gb := NewGraphBuilder()
	require.NoError(t, gb.AddNode(30, 52.3710, 4.8910))
	require.NoError(t, gb.AddNode(10, 52.3700, 4.8900))
	require.NoError(t, gb.AddNode(20, 52.3705, 4.8905))

	require.NoError(t, gb.AddEdge(-5, 20, 10, 3, true, nil))
	require.NoError(t, gb.AddEdge(7, 10, 30, 9, false, nil))
	require.NoError(t, gb.AddEdge(5, 10, 20, 3, true, []geo.Coordinate{
		geo.NewCoordinate(52.3700, 4.8900),
		geo.NewCoordinate(52.3702, 4.8904),
		geo.NewCoordinate(52.3705, 4.8905),
	}))
	require.NoError(t, gb.AddEdge(8, 20, 30, 4, true, nil))

	g, err := gb.Build()
	require.NoError(t, err)
	return g
}

func TestGraphBuilder(t *testing.T) {
	g := buildTestGraph(t)

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())

	t.Run("vertices ordered by node id", func(t *testing.T) {
		for i, want := range []int64{10, 20, 30} {
			assert.Equal(t, want, g.GetVertex(Index(i)).GetID())
			u, ok := g.GetVertexIndex(want)
			require.True(t, ok)
			assert.Equal(t, Index(i), u)
		}
		_, ok := g.GetVertexIndex(99)
		assert.False(t, ok)
	})

	t.Run("out edges grouped by tail, ordered by edge id", func(t *testing.T) {
		testCases := []struct {
			name    string
			node    int64
			wantIds []int64
		}{
			{name: "node 10", node: 10, wantIds: []int64{5, 7}},
			{name: "node 20", node: 20, wantIds: []int64{-5, 8}},
			{name: "node 30", node: 30, wantIds: []int64{}},
		}
		for _, tt := range testCases {
			t.Run(tt.name, func(t *testing.T) {
				u, _ := g.GetVertexIndex(tt.node)
				got := make([]int64, 0)
				g.ForOutEdgesOf(u, func(e *Edge, eId Index) {
					assert.Equal(t, u, e.GetTail())
					got = append(got, e.GetEdgeId())
				})
				assert.Equal(t, tt.wantIds, got)
				assert.Equal(t, Index(len(tt.wantIds)), g.GetOutDegree(u))
			})
		}
	})

	t.Run("edge attributes", func(t *testing.T) {
		u, _ := g.GetVertexIndex(20)
		v, _ := g.GetVertexIndex(10)
		var reverse *Edge
		g.ForOutEdgesOf(u, func(e *Edge, eId Index) {
			if e.GetEdgeId() == -5 {
				reverse = e
			}
		})
		require.NotNil(t, reverse)
		assert.Equal(t, int64(5), reverse.GetSegmentId())
		assert.Equal(t, v, reverse.GetHead())
		assert.True(t, reverse.IsCarAccessible())
		assert.Len(t, reverse.GetGeometry(), 2, "missing geometry defaults to a straight line")

		w, _ := g.GetVertexIndex(10)
		g.ForOutEdgesOf(w, func(e *Edge, eId Index) {
			if e.GetEdgeId() == 5 {
				assert.Len(t, e.GetGeometry(), 3)
			}
			if e.GetEdgeId() == 7 {
				assert.False(t, e.IsCarAccessible())
				assert.Equal(t, 9.0, e.GetWeight())
			}
		})
	})

	t.Run("bounding box", func(t *testing.T) {
		bb := g.GetBoundingBox()
		assert.Equal(t, 52.3700, bb.GetMinLat())
		assert.Equal(t, 4.8900, bb.GetMinLon())
		assert.Equal(t, 52.3710, bb.GetMaxLat())
		assert.Equal(t, 4.8910, bb.GetMaxLon())
		assert.Greater(t, bb.DiagonalKm(), 0.0)
	})
}

func TestGraphBuilderErrors(t *testing.T) {
	testCases := []struct {
		name    string
		build   func(gb *GraphBuilder) error
		wantErr error
	}{
		{
			name: "negative cost",
			build: func(gb *GraphBuilder) error {
				return gb.AddEdge(1, 1, 2, -1, true, nil)
			},
			wantErr: ErrNegativeCost,
		},
		{
			name: "duplicate edge id",
			build: func(gb *GraphBuilder) error {
				if err := gb.AddEdge(1, 1, 2, 1, true, nil); err != nil {
					return err
				}
				return gb.AddEdge(1, 2, 1, 1, true, nil)
			},
			wantErr: ErrDuplicateEdge,
		},
		{
			name: "duplicate node",
			build: func(gb *GraphBuilder) error {
				return gb.AddNode(1, 52.1, 4.1)
			},
			wantErr: ErrDuplicateNode,
		},
		{
			name: "unknown node",
			build: func(gb *GraphBuilder) error {
				if err := gb.AddEdge(1, 1, 3, 1, true, nil); err != nil {
					return err
				}
				_, err := gb.Build()
				return err
			},
			wantErr: ErrUnknownNode,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			gb := NewGraphBuilder()
			require.NoError(t, gb.AddNode(1, 52.1, 4.1))
			require.NoError(t, gb.AddNode(2, 52.2, 4.2))
			assert.ErrorIs(t, tt.build(gb), tt.wantErr)
		})
	}
}

func TestEmptyGraph(t *testing.T) {
	g, err := NewGraphBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumberOfVertices())
	assert.Equal(t, 0, g.NumberOfEdges())
}
