package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/customizer"
	"github.com/lintang-b-s/Bollardx/pkg/logger"
	"github.com/lintang-b-s/Bollardx/pkg/networkstore"
	"go.uber.org/zap"
)

var (
	networkFile         = flag.String("network", "./data/network.geojson", "road network GeoJSON (.bz2 allowed)")
	windowTimeRoadsFile = flag.String("window_time_roads", "./data/window_time_roads.csv", "CSV of load/unload road link_nr")
	originNode          = flag.Int64("origin", pkg.DEFAULT_ORIGIN_NODE, "origin node id")
	tierFactor          = flag.Float64("k", pkg.DEFAULT_TIER_FACTOR, "tier factor K")
)

// checks that K separates the access tiers of a road network before it is deployed
func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	store := networkstore.NewGeoJSONStore(*networkFile, "", *windowTimeRoadsFile, logger)
	graph, err := store.LoadNetwork(ctx)
	if err != nil {
		logger.Fatal("failed to read road network", zap.Error(err))
	}

	origin, ok := graph.GetVertexIndex(*originNode)
	if !ok {
		logger.Fatal("origin node not in road network", zap.Int64("origin", *originNode))
	}

	report, err := customizer.NewCustomizer(graph, logger).ValidateTierSeparation(ctx, origin, *tierFactor)
	if err != nil {
		logger.Fatal("tier factor rejected", zap.Error(err))
	}
	logger.Sugar().Infof("K = %v separates access tiers (eccentricity %.1f, total car cost %.1f, strict %v)",
		report.TierFactor, report.Eccentricity, report.TotalCarCost, report.Strict)
}
