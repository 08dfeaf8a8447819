package customizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/Bollardx/pkg"
	da "github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/engine/routing"
	"github.com/lintang-b-s/Bollardx/pkg/metrics"
	"go.uber.org/zap"
)

var (
	ErrTierFactorTooSmall = errors.New("tier factor must be greater than 1")
	ErrTierSeparation     = errors.New("tier factor does not separate access tiers for this road network")
)

// TierReport. bounds on base cost sums of the car network, compared against the tier factor K.
//
//	Eccentricity: largest shortest path base cost from the origin to any reachable vertex
//	TotalCarCost: sum of all car edge base costs, an upper bound for any simple path
//
// tier 0 paths stay below K and tier 1 paths below K*K while these sums stay below K.
type TierReport struct {
	TierFactor   float64
	Eccentricity float64
	TotalCarCost float64
	Reachable    int
	Strict       bool // TotalCarCost < K, separation holds for every simple path
}

type Customizer struct {
	logger *zap.Logger
	graph  *da.Graph
}

func NewCustomizer(graph *da.Graph, logger *zap.Logger) *Customizer {
	return &Customizer{
		graph:  graph,
		logger: logger,
	}
}

// ValidateTierSeparation. checks K against the base costs of the road network seen from origin.
// fails if some shortest path from the origin already costs K or more, warns if only shortest
// paths (not every simple path) are guaranteed to be separated.
func (c *Customizer) ValidateTierSeparation(ctx context.Context, origin da.Index, k float64) (TierReport, error) {
	report := TierReport{TierFactor: k}
	if k <= 1 || math.IsInf(k*k, 1) {
		return report, fmt.Errorf("%w: K = %v", ErrTierFactorTooSmall, k)
	}

	c.graph.ForEdges(func(e *da.Edge, _ da.Index) {
		if e.IsCarAccessible() {
			report.TotalCarCost += e.GetWeight()
		}
	})

	dijkstra := routing.NewDijkstra(c.graph, metrics.NewCarNetworkMetric())
	dists, err := dijkstra.ShortestPathTree(ctx, origin)
	if err != nil {
		return report, err
	}
	for _, d := range dists {
		if d >= pkg.INF_WEIGHT {
			continue
		}
		report.Reachable++
		report.Eccentricity = math.Max(report.Eccentricity, d)
	}

	report.Strict = da.Lt(report.TotalCarCost, k)

	c.logger.Info("tier separation",
		zap.Float64("tier_factor", k),
		zap.Float64("eccentricity", report.Eccentricity),
		zap.Float64("total_car_cost", report.TotalCarCost),
		zap.Int("reachable_vertices", report.Reachable),
		zap.Bool("strict", report.Strict))

	if da.Ge(report.Eccentricity, k) {
		return report, fmt.Errorf("%w: shortest path cost %v from the origin reaches K = %v",
			ErrTierSeparation, report.Eccentricity, k)
	}
	if !report.Strict {
		c.logger.Warn("tier factor only separates shortest paths, a long detour may cost more than one bollard",
			zap.Float64("total_car_cost", report.TotalCarCost), zap.Float64("tier_factor", k))
	}
	return report, nil
}
