package customizer

import (
	"context"
	"testing"

	da "github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// 1 -30-> 2 -40-> 3 -10-> 1, plus 1 -500-> 4 closed to cars
func loopGraph(t *testing.T) *da.Graph {
	gb := da.NewGraphBuilder()
	require.NoError(t, gb.AddNode(1, 52.3700, 4.8900))
	require.NoError(t, gb.AddNode(2, 52.3710, 4.8900))
	require.NoError(t, gb.AddNode(3, 52.3710, 4.8910))
	require.NoError(t, gb.AddNode(4, 52.3690, 4.8890))
	require.NoError(t, gb.AddEdge(1, 1, 2, 30, true, nil))
	require.NoError(t, gb.AddEdge(2, 2, 3, 40, true, nil))
	require.NoError(t, gb.AddEdge(3, 3, 1, 10, true, nil))
	require.NoError(t, gb.AddEdge(4, 1, 4, 500, false, nil))
	g, err := gb.Build()
	require.NoError(t, err)
	return g
}

func TestValidateTierSeparation(t *testing.T) {
	g := loopGraph(t)
	origin, ok := g.GetVertexIndex(1)
	require.True(t, ok)

	testCases := []struct {
		name       string
		k          float64
		wantErr    error
		wantStrict bool
		wantWarn   bool
	}{
		{name: "every simple path separated", k: 100, wantStrict: true},
		{name: "only shortest paths separated", k: 75, wantWarn: true},
		{name: "eccentricity reaches K", k: 70, wantErr: ErrTierSeparation},
		{name: "K of one", k: 1, wantErr: ErrTierFactorTooSmall},
		{name: "negative K", k: -10, wantErr: ErrTierFactorTooSmall},
		{name: "K squared overflows", k: 1e200, wantErr: ErrTierFactorTooSmall},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			report, err := NewCustomizer(g, zap.New(core)).ValidateTierSeparation(context.Background(), origin, tt.k)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.k, report.TierFactor)
			assert.Equal(t, 70.0, report.Eccentricity)
			assert.Equal(t, 80.0, report.TotalCarCost, "edge closed to cars is not counted")
			assert.Equal(t, 3, report.Reachable)
			assert.Equal(t, tt.wantStrict, report.Strict)
			assert.Equal(t, tt.wantWarn, logs.Len() == 1)
		})
	}
}

func TestValidateTierSeparationCancelled(t *testing.T) {
	g := loopGraph(t)
	origin, _ := g.GetVertexIndex(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCustomizer(g, zap.NewNop()).ValidateTierSeparation(ctx, origin, 100)
	assert.Error(t, err)
}
