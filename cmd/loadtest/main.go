package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/concurrent"
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/engine"
	"github.com/lintang-b-s/Bollardx/pkg/engine/routing"
	"github.com/lintang-b-s/Bollardx/pkg/logger"
	"github.com/lintang-b-s/Bollardx/pkg/networkstore"
	"github.com/lintang-b-s/Bollardx/pkg/spatialindex"
	"github.com/lintang-b-s/Bollardx/pkg/util"
	"go.uber.org/zap"
)

var (
	networkFile         = flag.String("network", "./data/network.geojson", "road network GeoJSON (.bz2 allowed)")
	bollardsFile        = flag.String("bollards", "./data/bollards.geojson", "bollard register GeoJSON (.bz2 allowed)")
	windowTimeRoadsFile = flag.String("window_time_roads", "./data/window_time_roads.csv", "CSV of load/unload road link_nr")
	numQueries          = flag.Int("n", 10000, "number of queries")
	numWorkers          = flag.Int("workers", runtime.NumCPU(), "concurrent queries")
	seed                = flag.Int64("seed", 1, "random seed for query locations")
	queryTimeout        = flag.Duration("timeout", 5*time.Second, "per query timeout")
)

type queryResult struct {
	took     time.Duration
	bollards int
	err      error
}

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	store := networkstore.NewGeoJSONStore(*networkFile, *bollardsFile, *windowTimeRoadsFile, logger)
	bollardEngine, err := engine.NewEngine(ctx, store, engine.DefaultConfig(), logger)
	if err != nil {
		logger.Fatal("failed to load routing engine", zap.Error(err))
	}
	re := bollardEngine.GetRoutingEngine()

	queries := randomQueries(re.GetGraph().GetBoundingBox(), *numQueries, *seed)

	wp := concurrent.NewWorkerPool[datastructure.Query, queryResult](*numWorkers, len(queries))
	wp.Start(ctx, func(ctx context.Context, q datastructure.Query) queryResult {
		qctx, cancel := context.WithTimeout(ctx, *queryTimeout)
		defer cancel()
		start := time.Now()
		hits, err := re.FindBollards(qctx, q)
		return queryResult{took: time.Since(start), bollards: len(hits), err: err}
	})

	start := time.Now()
	go func() {
		for _, q := range queries {
			wp.AddJob(q)
		}
		wp.Close()
		wp.Wait()
	}()

	latencies := make([]time.Duration, 0, len(queries))
	var unreachable, timeouts, failed, bollards int
	for res := range wp.CollectResults() {
		latencies = append(latencies, res.took)
		switch {
		case res.err == nil:
			bollards += res.bollards
		case errors.Is(res.err, spatialindex.ErrNoReachableNode), errors.Is(res.err, routing.ErrNoPathFound):
			unreachable++
		case errors.Is(res.err, routing.ErrTimeout):
			timeouts++
		default:
			failed++
			logger.Warn("query failed", zap.Error(res.err))
		}
	}
	elapsed := time.Since(start)

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	logger.Info("load test finished",
		zap.Int("queries", len(latencies)),
		zap.Int("workers", *numWorkers),
		zap.Duration("elapsed", elapsed),
		zap.Float64("qps", float64(len(latencies))/elapsed.Seconds()),
		zap.Duration("p50", percentile(latencies, 0.50)),
		zap.Duration("p95", percentile(latencies, 0.95)),
		zap.Duration("p99", percentile(latencies, 0.99)),
		zap.Int("bollards_found", bollards),
		zap.Int("unreachable", unreachable),
		zap.Int("timeouts", timeouts),
		zap.Int("failed", failed))
}

// randomQueries. uniform locations inside the network bounding box, random day & window
func randomQueries(bb *datastructure.BoundingBox, n int, seed int64) []datastructure.Query {
	rd := rand.New(rand.NewSource(seed))
	queries := make([]datastructure.Query, n)
	for i := range queries {
		lat := bb.GetMinLat() + rd.Float64()*(bb.GetMaxLat()-bb.GetMinLat())
		lon := bb.GetMinLon() + rd.Float64()*(bb.GetMaxLon()-bb.GetMinLon())
		q := datastructure.NewQuery(lat, lon)
		if rd.Intn(4) > 0 {
			q = q.WithDay(pkg.Weekday(1 + rd.Intn(7)))
		}
		if rd.Intn(2) == 0 {
			from := datastructure.ClockTime(rd.Intn(pkg.SECONDS_PER_DAY))
			to := from + datastructure.ClockTime(rd.Intn(4*3600))
			if to > pkg.SECONDS_PER_DAY {
				to = pkg.SECONDS_PER_DAY
			}
			q = q.WithTimeWindow(from, to)
		}
		queries[i] = q
	}
	return queries
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(p*float64(len(sorted)-1))]
}
