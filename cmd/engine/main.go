package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/engine"
	"github.com/lintang-b-s/Bollardx/pkg/http"
	"github.com/lintang-b-s/Bollardx/pkg/http/usecases"
	"github.com/lintang-b-s/Bollardx/pkg/logger"
	"github.com/lintang-b-s/Bollardx/pkg/networkstore"
	"github.com/lintang-b-s/Bollardx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	networkFile         = flag.String("network", "./data/network.geojson", "road network GeoJSON (.bz2 allowed)")
	bollardsFile        = flag.String("bollards", "./data/bollards.geojson", "bollard register GeoJSON (.bz2 allowed)")
	windowTimeRoadsFile = flag.String("window_time_roads", "./data/window_time_roads.csv", "CSV of load/unload road link_nr, empty to disable")
	useRateLimit        = flag.Bool("rate_limit", false, "enable the global request rate limiter")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	viper.SetDefault("ORIGIN_NODE_ID", pkg.DEFAULT_ORIGIN_NODE)
	viper.SetDefault("TIER_FACTOR", pkg.DEFAULT_TIER_FACTOR)
	viper.SetDefault("LOCATOR_RADIUS", pkg.DEFAULT_LOCATOR_RADIUS)
	viper.SetDefault("LOCATOR_CACHE_SIZE", pkg.DEFAULT_LOCATOR_CACHE_SIZE)
	viper.SetDefault("QUERY_TIMEOUT", "5s")

	config := engine.Config{
		OriginNodeId:     viper.GetInt64("ORIGIN_NODE_ID"),
		TierFactor:       viper.GetFloat64("TIER_FACTOR"),
		LocatorRadius:    viper.GetFloat64("LOCATOR_RADIUS"),
		LocatorCacheSize: viper.GetInt("LOCATOR_CACHE_SIZE"),
	}

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	defer cleanup()

	store := networkstore.NewGeoJSONStore(*networkFile, *bollardsFile, *windowTimeRoadsFile, logger)
	bollardEngine, err := engine.NewEngine(ctx, store, config, logger)
	if err != nil {
		logger.Fatal("failed to load routing engine", zap.Error(err))
	}

	go reloadOnHangup(ctx, bollardEngine, logger)

	bollardService := usecases.NewBollardService(logger, func() usecases.RoutingEngine {
		if re := bollardEngine.GetRoutingEngine(); re != nil {
			return re
		}
		return nil
	}, viper.GetDuration("QUERY_TIMEOUT"))

	api := http.NewServer(logger)
	api.Use(ctx, logger, *useRateLimit, bollardService)

	sig := http.GracefulShutdown()
	logger.Info("Bollardx Routing Engine Server Stopped", zap.String("signal", sig.String()))
	cleanup()
	if err := api.Wait(); err != nil && err != context.Canceled {
		logger.Error("api stopped with error", zap.Error(err))
	}
}

// reloadOnHangup. SIGHUP reloads the network files, a failed reload keeps serving the old snapshot
func reloadOnHangup(ctx context.Context, e *engine.Engine, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := e.Reload(ctx); err != nil {
				logger.Error("reload failed, keeping snapshot", zap.Uint64("version", e.Version()), zap.Error(err))
			}
		}
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
