package networkstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/geo"
	"github.com/lintang-b-s/Bollardx/pkg/util"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

var (
	ErrMissingProperty = errors.New("feature is missing a required property")
	ErrGeometryType    = errors.New("unexpected feature geometry type")
)

// GeoJSONStore. reads the road network and bollard register exported by the import pipeline.
//
//	network:          FeatureCollection of (Multi)LineStrings, properties id, source, target, cost, car_network
//	bollards:         FeatureCollection of Points, properties id, link_nr, type, location, days, start_time, ...
//	windowTimeRoads:  CSV with a link_nr column, segments closed to cars that stay routable (load/unload roads)
//
// files ending in .bz2 are decompressed on the fly.
type GeoJSONStore struct {
	networkPath         string
	bollardsPath        string
	windowTimeRoadsPath string
	logger              *zap.Logger
}

func NewGeoJSONStore(networkPath, bollardsPath, windowTimeRoadsPath string, logger *zap.Logger) *GeoJSONStore {
	return &GeoJSONStore{
		networkPath:         networkPath,
		bollardsPath:        bollardsPath,
		windowTimeRoadsPath: windowTimeRoadsPath,
		logger:              logger,
	}
}

func (s *GeoJSONStore) LoadNetwork(ctx context.Context) (*datastructure.Graph, error) {
	windowTimeRoads, err := s.loadWindowTimeRoads()
	if err != nil {
		return nil, err
	}

	fc, err := readFeatureCollection(s.networkPath)
	if err != nil {
		return nil, err
	}

	gb := datastructure.NewGraphBuilder()
	skipped := 0
	for i, f := range fc.Features {
		if i%4096 == 0 && util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		edge, err := parseNetworkFeature(f)
		if err != nil {
			return nil, fmt.Errorf("network feature %d: %w", i, err)
		}

		// edges closed to cars are routable only when they are part of the window time roads
		if !edge.carNetwork {
			if _, ok := windowTimeRoads[util.Abs(edge.id)]; !ok {
				skipped++
				continue
			}
		}

		if err := addEndpoint(gb, edge.source, edge.geometry[0]); err != nil {
			return nil, err
		}
		if err := addEndpoint(gb, edge.target, edge.geometry[len(edge.geometry)-1]); err != nil {
			return nil, err
		}
		if err := gb.AddEdge(edge.id, edge.source, edge.target, edge.cost, edge.carNetwork, edge.geometry); err != nil {
			return nil, err
		}
	}

	s.logger.Info("road network read", zap.String("path", s.networkPath),
		zap.Int("features", len(fc.Features)), zap.Int("skipped_not_routable", skipped))
	return gb.Build()
}

func (s *GeoJSONStore) LoadRestrictions(ctx context.Context) ([]*datastructure.BollardRestriction, error) {
	fc, err := readFeatureCollection(s.bollardsPath)
	if err != nil {
		return nil, err
	}

	restrictions := make([]*datastructure.BollardRestriction, 0, len(fc.Features))
	for i, f := range fc.Features {
		if i%4096 == 0 && util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}
		r, err := parseBollardFeature(f)
		if err != nil {
			return nil, fmt.Errorf("bollard feature %d: %w", i, err)
		}
		restrictions = append(restrictions, r)
	}

	s.logger.Info("bollard register read", zap.String("path", s.bollardsPath),
		zap.Int("bollards", len(restrictions)))
	return restrictions, nil
}

func (s *GeoJSONStore) loadWindowTimeRoads() (map[int64]struct{}, error) {
	links := make(map[int64]struct{})
	if s.windowTimeRoadsPath == "" {
		return links, nil
	}

	rc, err := open(s.windowTimeRoadsPath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("window time roads %s: %w", s.windowTimeRoadsPath, err)
	}
	col := -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "link_nr", "linknr":
			col = i
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: window time roads %s has no link_nr column", ErrMissingProperty,
			s.windowTimeRoadsPath)
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("window time roads %s: %w", s.windowTimeRoadsPath, err)
		}
		if col >= len(record) || strings.TrimSpace(record[col]) == "" {
			continue
		}
		linkNr, err := strconv.ParseInt(strings.TrimSpace(record[col]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("window time roads %s: link_nr %q: %w", s.windowTimeRoadsPath, record[col], err)
		}
		links[util.Abs(linkNr)] = struct{}{}
	}
	return links, nil
}

func addEndpoint(gb *datastructure.GraphBuilder, id int64, c geo.Coordinate) error {
	if gb.HasNode(id) {
		return nil
	}
	return gb.AddNode(id, c.Lat, c.Lon)
}

type networkEdge struct {
	id, source, target int64
	cost               float64
	carNetwork         bool
	geometry           []geo.Coordinate
}

func parseNetworkFeature(f *geojson.Feature) (networkEdge, error) {
	var (
		edge networkEdge
		err  error
	)
	if edge.id, err = int64Property(f.Properties, "id"); err != nil {
		return edge, err
	}
	if edge.source, err = int64Property(f.Properties, "source"); err != nil {
		return edge, err
	}
	if edge.target, err = int64Property(f.Properties, "target"); err != nil {
		return edge, err
	}
	cost, ok := f.Properties["cost"].(float64)
	if !ok {
		return edge, fmt.Errorf("%w: cost", ErrMissingProperty)
	}
	edge.cost = cost
	edge.carNetwork = f.Properties.MustBool("car_network", true)
	// roads closed to cars are exported with cost -1, their cost is flat anyway
	if !edge.carNetwork && edge.cost < 0 {
		edge.cost = 0
	}

	edge.geometry, err = mergeLines(f.Geometry)
	if err != nil {
		return edge, err
	}
	return edge, nil
}

// mergeLines. (Multi)LineString as one polyline, shared joints are not repeated
func mergeLines(g orb.Geometry) ([]geo.Coordinate, error) {
	var lines []orb.LineString
	switch geom := g.(type) {
	case orb.LineString:
		lines = []orb.LineString{geom}
	case orb.MultiLineString:
		lines = geom
	default:
		return nil, fmt.Errorf("%w: %T, want LineString", ErrGeometryType, g)
	}

	coords := make([]geo.Coordinate, 0)
	for _, line := range lines {
		for _, p := range line {
			c := geo.NewCoordinate(p.Lat(), p.Lon())
			if len(coords) > 0 && coords[len(coords)-1] == c {
				continue
			}
			coords = append(coords, c)
		}
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrGeometryType)
	}
	return coords, nil
}

func parseBollardFeature(f *geojson.Feature) (*datastructure.BollardRestriction, error) {
	props := f.Properties
	r := &datastructure.BollardRestriction{
		ID:          stringProperty(props, "id", "paal_nr"),
		Type:        stringProperty(props, "type"),
		Location:    stringProperty(props, "location", "standplaats"),
		EntrySystem: stringProperty(props, "entry_system", "toegangssysteem"),
		WindowTimes: stringProperty(props, "window_times", "venstertijden"),
		Details:     stringProperty(props, "details", "bijzonderheden"),
		Start:       datastructure.NO_TIME,
		End:         datastructure.NO_TIME,
	}
	if r.ID == "" && f.ID != nil {
		r.ID = fmt.Sprint(f.ID)
	}

	if linkNr, err := int64Property(props, "link_nr"); err == nil {
		r.SegmentID = linkNr
	}

	r.RawDays = stringsProperty(props, "days", "dagen")
	days, err := datastructure.ParseDaySet(r.RawDays)
	if err != nil {
		return nil, err
	}
	r.Days = days

	if s := stringProperty(props, "start_time", "begin_tijd"); s != "" {
		if r.Start, err = datastructure.ParseClockTime(s); err != nil {
			return nil, err
		}
	}
	if s := stringProperty(props, "end_time", "eind_tijd"); s != "" {
		if r.End, err = datastructure.ParseClockTime(s); err != nil {
			return nil, err
		}
	}

	switch p := f.Geometry.(type) {
	case orb.Point:
		c := geo.NewCoordinate(p.Lat(), p.Lon())
		r.Point = &c
	case nil:
	default:
		return nil, fmt.Errorf("%w: %T, want Point", ErrGeometryType, f.Geometry)
	}
	return r, nil
}

func int64Property(props geojson.Properties, key string) (int64, error) {
	switch v := props[key].(type) {
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("%w: %s", ErrMissingProperty, key)
	}
}

// stringProperty. first non empty value among keys
func stringProperty(props geojson.Properties, keys ...string) string {
	for _, key := range keys {
		switch v := props[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// stringsProperty. array or comma separated string
func stringsProperty(props geojson.Properties, keys ...string) []string {
	for _, key := range keys {
		switch v := props[key].(type) {
		case []interface{}:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case string:
			if v == "" {
				continue
			}
			return strings.Split(strings.Trim(v, "{}[]"), ",")
		}
	}
	return []string{}
}

func readFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	rc, err := open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return fc, nil
}

type bz2ReadCloser struct {
	*bzip2.Reader
	f *os.File
}

func (b *bz2ReadCloser) Close() error {
	b.Reader.Close()
	return b.f.Close()
}

func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		return f, nil
	}
	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &bz2ReadCloser{Reader: bz, f: f}, nil
}
