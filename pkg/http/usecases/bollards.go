package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/engine/routing"
	"github.com/lintang-b-s/Bollardx/pkg/geo"
	"github.com/lintang-b-s/Bollardx/pkg/spatialindex"
	"github.com/lintang-b-s/Bollardx/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

type BollardService struct {
	log          *zap.Logger
	snapshot     SnapshotFunc
	queryTimeout time.Duration
}

func NewBollardService(log *zap.Logger, snapshot SnapshotFunc, queryTimeout time.Duration) *BollardService {
	return &BollardService{
		log:          log,
		snapshot:     snapshot,
		queryTimeout: queryTimeout,
	}
}

// FindBollards. bollards between the configured origin and the query location that are closed
// for the query's day & time window. unreachable locations give an empty collection.
func (bs *BollardService) FindBollards(ctx context.Context, q datastructure.Query) (*geojson.FeatureCollection, error) {
	if bs.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, bs.queryTimeout)
		defer cancel()
	}

	engine := bs.snapshot()
	if engine == nil {
		return nil, util.WrapErrorf(nil, util.ErrServiceUnavailable, "road network is not loaded yet")
	}

	hits, err := engine.FindBollards(ctx, q)
	switch {
	case err == nil:
	case errors.Is(err, spatialindex.ErrNoReachableNode), errors.Is(err, routing.ErrNoPathFound):
		bs.log.Info("no route to query location", zap.Float64("lat", q.GetLat()),
			zap.Float64("lon", q.GetLon()), zap.Error(err))
		return geojson.NewFeatureCollection(), nil
	case errors.Is(err, routing.ErrTimeout):
		return nil, util.WrapErrorf(err, util.ErrServiceUnavailable, "query timed out, try again")
	case errors.Is(err, spatialindex.ErrInvalidLocation):
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "lat and lon must be a location on earth")
	case errors.Is(err, routing.ErrNotParameterized):
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "lat and lon are required")
	default:
		return nil, util.WrapErrorf(err, util.ErrInternalServerError, util.MessageInternalServerError)
	}

	fc := geojson.NewFeatureCollection()
	for _, hit := range hits {
		fc.Append(routedFeature(hit))
	}
	return fc, nil
}

// AllBollards. the complete bollard register, including window times & details.
func (bs *BollardService) AllBollards(ctx context.Context) (*geojson.FeatureCollection, error) {
	engine := bs.snapshot()
	if engine == nil {
		return nil, util.WrapErrorf(nil, util.ErrServiceUnavailable, "road network is not loaded yet")
	}

	fc := geojson.NewFeatureCollection()
	for _, r := range engine.AllRestrictions() {
		if util.StopConcurrentOperation(ctx) {
			return nil, util.WrapErrorf(ctx.Err(), util.ErrServiceUnavailable, "request cancelled")
		}
		fc.Append(dumpFeature(r))
	}
	return fc, nil
}

func routedFeature(hit routing.RestrictionHit) *geojson.Feature {
	r := hit.GetRestriction()
	f := geojson.NewFeature(toPoint(hit.GetPoint()))
	setCommonProperties(f, r)
	return f
}

func dumpFeature(r *datastructure.BollardRestriction) *geojson.Feature {
	// null geometry for register entries without a location
	var geometry orb.Geometry
	if r.Point != nil {
		geometry = toPoint(*r.Point)
	}
	f := geojson.NewFeature(geometry)
	setCommonProperties(f, r)
	f.Properties["window_times"] = r.WindowTimes
	f.Properties["details"] = r.Details
	return f
}

func setCommonProperties(f *geojson.Feature, r *datastructure.BollardRestriction) {
	f.Properties["id"] = r.ID
	f.Properties["type"] = r.Type
	f.Properties["location"] = r.Location
	f.Properties["start_time"] = clockTimeProperty(r.Start)
	f.Properties["end_time"] = clockTimeProperty(r.End)
	f.Properties["entry_system"] = r.EntrySystem
	days := r.RawDays
	if days == nil {
		days = []string{}
	}
	f.Properties["days"] = days
}

// clockTimeProperty. nil (json null) for an unset time
func clockTimeProperty(t datastructure.ClockTime) interface{} {
	if !t.IsSet() {
		return nil
	}
	return t.String()
}

func toPoint(c geo.Coordinate) orb.Point {
	return orb.Point{c.GetLon(), c.GetLat()}
}
