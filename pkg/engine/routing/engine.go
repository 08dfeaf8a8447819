package routing

import (
	"context"
	"fmt"
	"sync"

	"github.com/lintang-b-s/Bollardx/pkg/costfunction"
	da "github.com/lintang-b-s/Bollardx/pkg/datastructure"
	met "github.com/lintang-b-s/Bollardx/pkg/metrics"
	"go.uber.org/zap"
)

// BollardRoutingEngine. one immutable snapshot of the road network and the bollard register.
// safe for concurrent queries.
type BollardRoutingEngine struct {
	graph        *da.Graph
	restrictions *da.RestrictionIndex
	locator      Locator
	costFunction costfunction.CostFunction
	extractor    *RestrictionExtractor
	origin       da.Index
	logger       *zap.Logger
	dijkstraPool sync.Pool
}

func NewBollardRoutingEngine(graph *da.Graph, restrictions *da.RestrictionIndex, locator Locator,
	costFunction costfunction.CostFunction, originNodeId int64, logger *zap.Logger) (*BollardRoutingEngine, error) {
	origin, ok := graph.GetVertexIndex(originNodeId)
	if !ok {
		return nil, fmt.Errorf("%w: node %d", ErrUnknownOrigin, originNodeId)
	}

	e := &BollardRoutingEngine{
		graph:        graph,
		restrictions: restrictions,
		locator:      locator,
		costFunction: costFunction,
		extractor:    NewRestrictionExtractor(graph, restrictions),
		origin:       origin,
		logger:       logger,
	}
	e.dijkstraPool = sync.Pool{
		New: func() any {
			return NewDijkstra(graph, nil)
		},
	}
	return e, nil
}

func (bre *BollardRoutingEngine) GetGraph() *da.Graph {
	return bre.graph
}

func (bre *BollardRoutingEngine) GetRestrictions() *da.RestrictionIndex {
	return bre.restrictions
}

func (bre *BollardRoutingEngine) GetOrigin() da.Index {
	return bre.origin
}

func (bre *BollardRoutingEngine) GetCostFunction() costfunction.CostFunction {
	return bre.costFunction
}

// Locate. road network node id nearest to (lat, lon)
func (bre *BollardRoutingEngine) Locate(lat, lon float64) (int64, error) {
	u, err := bre.locator.Locate(lat, lon)
	if err != nil {
		return 0, err
	}
	return bre.graph.GetVertex(u).GetID(), nil
}

// Route. shortest path from the origin to the node nearest to the query location, under the
// edge weights of q.
func (bre *BollardRoutingEngine) Route(ctx context.Context, q da.Query) (*RouteResult, error) {
	if !q.IsParameterized() {
		return nil, ErrNotParameterized
	}

	target, err := bre.locator.Locate(q.GetLat(), q.GetLon())
	if err != nil {
		return nil, err
	}

	dijkstra := bre.dijkstraPool.Get().(*Dijkstra)
	defer bre.dijkstraPool.Put(dijkstra)
	dijkstra.SetMetric(met.NewMetric(bre.restrictions, bre.costFunction, q))

	route, err := dijkstra.ShortestPath(ctx, bre.origin, target)
	if err != nil {
		return nil, err
	}

	if bre.logger.Core().Enabled(zap.DebugLevel) {
		bre.logger.Debug("route found",
			zap.Int64("target", bre.graph.GetVertex(target).GetID()),
			zap.Int("edges", len(route.GetEdges())),
			zap.Float64("cost", route.GetCost()),
			zap.Int("settled", dijkstra.GetNumSettledNodes()))
	}
	return route, nil
}

// FindBollards. bollards encountered on the way from the origin to the query location that
// block passage on the query's day & time window.
func (bre *BollardRoutingEngine) FindBollards(ctx context.Context, q da.Query) ([]RestrictionHit, error) {
	route, err := bre.Route(ctx, q)
	if err != nil {
		return nil, err
	}
	return bre.extractor.Extract(route, q), nil
}

// AllRestrictions. the full bollard register, in load order.
func (bre *BollardRoutingEngine) AllRestrictions() []*da.BollardRestriction {
	return bre.restrictions.All()
}
