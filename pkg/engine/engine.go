package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/costfunction"
	"github.com/lintang-b-s/Bollardx/pkg/customizer"
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/engine/routing"
	"github.com/lintang-b-s/Bollardx/pkg/spatialindex"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NetworkSource. the road network & bollard register, populated by the import pipeline.
type NetworkSource interface {
	LoadNetwork(ctx context.Context) (*datastructure.Graph, error)
	LoadRestrictions(ctx context.Context) ([]*datastructure.BollardRestriction, error)
}

type Config struct {
	OriginNodeId     int64
	TierFactor       float64
	LocatorRadius    float64 // km
	LocatorCacheSize int
}

func DefaultConfig() Config {
	return Config{
		OriginNodeId:     pkg.DEFAULT_ORIGIN_NODE,
		TierFactor:       pkg.DEFAULT_TIER_FACTOR,
		LocatorRadius:    pkg.DEFAULT_LOCATOR_RADIUS,
		LocatorCacheSize: pkg.DEFAULT_LOCATOR_CACHE_SIZE,
	}
}

// Engine. publishes immutable routing snapshots. Reload builds a complete new snapshot and swaps
// it in atomically, queries already running keep the snapshot they started with.
type Engine struct {
	source   NetworkSource
	config   Config
	logger   *zap.Logger
	snapshot atomic.Pointer[routing.BollardRoutingEngine]
	version  atomic.Uint64
	reloadMu sync.Mutex
}

func NewEngine(ctx context.Context, source NetworkSource, config Config, logger *zap.Logger) (*Engine, error) {
	e := &Engine{
		source: source,
		config: config,
		logger: logger,
	}
	if err := e.Reload(ctx); err != nil {
		return nil, err
	}
	return e, nil
}

// GetRoutingEngine. current snapshot
func (e *Engine) GetRoutingEngine() *routing.BollardRoutingEngine {
	return e.snapshot.Load()
}

// Version. incremented on every successful reload
func (e *Engine) Version() uint64 {
	return e.version.Load()
}

// Reload. on error the previous snapshot stays published.
func (e *Engine) Reload(ctx context.Context) error {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	start := time.Now()
	e.logger.Info("Loading road network & bollard register...")

	var (
		graph        *datastructure.Graph
		restrictions []*datastructure.BollardRestriction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		graph, err = e.source.LoadNetwork(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		restrictions, err = e.source.LoadRestrictions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		e.logger.Error("failed to load road network", zap.Error(err))
		return err
	}

	snapshot, err := e.build(ctx, graph, restrictions)
	if err != nil {
		e.logger.Error("failed to build routing snapshot", zap.Error(err))
		return err
	}

	e.snapshot.Store(snapshot)
	version := e.version.Add(1)

	e.logger.Info("routing snapshot published",
		zap.Uint64("version", version),
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()),
		zap.Int("bollards", len(restrictions)),
		zap.Duration("took", time.Since(start)))
	return nil
}

func (e *Engine) build(ctx context.Context, graph *datastructure.Graph,
	restrictions []*datastructure.BollardRestriction) (*routing.BollardRoutingEngine, error) {
	index, err := datastructure.NewRestrictionIndex(restrictions)
	if err != nil {
		return nil, err
	}

	origin, ok := graph.GetVertexIndex(e.config.OriginNodeId)
	if !ok {
		return nil, fmt.Errorf("%w: node %d", routing.ErrUnknownOrigin, e.config.OriginNodeId)
	}

	tierFactor := e.config.TierFactor
	if tierFactor == 0 {
		tierFactor = pkg.DEFAULT_TIER_FACTOR
	}
	if _, err := customizer.NewCustomizer(graph, e.logger).ValidateTierSeparation(ctx, origin, tierFactor); err != nil {
		return nil, err
	}

	rtree := spatialindex.NewRtree(e.config.LocatorRadius, e.config.LocatorCacheSize)
	rtree.Build(graph, e.logger)

	return routing.NewBollardRoutingEngine(graph, index, rtree, costfunction.NewTierCostFunction(tierFactor),
		e.config.OriginNodeId, e.logger)
}
