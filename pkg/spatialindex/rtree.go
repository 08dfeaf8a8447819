package spatialindex

import (
	"errors"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var (
	ErrNoReachableNode = errors.New("no reachable node near the query location")
	ErrInvalidLocation = errors.New("query location is not a coordinate on earth")
)

// EdgeCandidate. an edge whose head can be a routing target
type EdgeCandidate struct {
	edge datastructure.Index
	head datastructure.Index
}

func (ec EdgeCandidate) GetEdge() datastructure.Index {
	return ec.edge
}

func (ec EdgeCandidate) GetHead() datastructure.Index {
	return ec.head
}

type Rtree struct {
	tr            *rtree.RTreeG[EdgeCandidate]
	graph         *datastructure.Graph
	initialRadius float64 // km
	cache         *lru.Cache[locateKey, datastructure.Index]
}

type locateKey struct {
	lat, lon float64
}

func NewRtree(initialRadius float64, cacheSize int) *Rtree {
	var tr rtree.RTreeG[EdgeCandidate]
	if initialRadius <= 0 {
		initialRadius = pkg.DEFAULT_LOCATOR_RADIUS
	}
	if cacheSize <= 0 {
		cacheSize = pkg.DEFAULT_LOCATOR_CACHE_SIZE
	}
	cache, _ := lru.New[locateKey, datastructure.Index](cacheSize)
	return &Rtree{
		tr:            &tr,
		initialRadius: initialRadius,
		cache:         cache,
	}
}

// IsCandidate. edges with zero cost on the car network are connectors without real travel,
// their heads are never snapped to.
func IsCandidate(e *datastructure.Edge) bool {
	return e.GetWeight() > 0 || !e.IsCarAccessible()
}

// Build. build r-tree over the bounding boxes of all candidate edges.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	rt.graph = graph
	graph.ForEdges(func(e *datastructure.Edge, eId datastructure.Index) {
		if !IsCandidate(e) {
			return
		}
		min, max := geo.BoundingBox(e.GetGeometry())
		rt.tr.Insert(min, max, EdgeCandidate{edge: eId, head: e.GetHead()})
	})

	log.Info("R-tree spatial index built.", zap.Int("candidates", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius search for all candidate edges whose bounding box intersects the square
// circumscribing the circle of radius (in km) around (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []EdgeCandidate {
	diagonal := radius * math.Sqrt2
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, diagonal)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, diagonal)

	results := make([]EdgeCandidate, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data EdgeCandidate) bool {
			results = append(results, data)
			return true
		})
	return results
}

func (rt *Rtree) all() []EdgeCandidate {
	results := make([]EdgeCandidate, 0, rt.tr.Len())
	rt.tr.Scan(func(min, max [2]float64, data EdgeCandidate) bool {
		results = append(results, data)
		return true
	})
	return results
}

// Locate. head node of the candidate edge nearest to (lat, lon), ties broken by smallest node id.
// the radius is doubled until the nearest candidate lies within it, so the result equals a full scan.
func (rt *Rtree) Locate(lat, lon float64) (datastructure.Index, error) {
	if rt.graph == nil || rt.tr.Len() == 0 {
		return datastructure.INVALID_VERTEX_ID, ErrNoReachableNode
	}
	// NaN keys never hit the cache and would evict real entries
	if !validLocation(lat, lon) {
		return datastructure.INVALID_VERTEX_ID, fmt.Errorf("%w: (%v, %v)", ErrInvalidLocation, lat, lon)
	}

	key := locateKey{lat: lat, lon: lon}
	if u, ok := rt.cache.Get(key); ok {
		return u, nil
	}

	point := geo.NewCoordinate(lat, lon)
	bb := rt.graph.GetBoundingBox()
	// beyond this radius every candidate has been searched
	maxRadius := bb.DiagonalKm() +
		geo.CalculateHaversineDistance(lat, lon, bb.GetMinLat(), bb.GetMinLon()) +
		geo.CalculateHaversineDistance(lat, lon, bb.GetMaxLat(), bb.GetMaxLon())

	for radius := rt.initialRadius; ; radius *= 2 {
		var candidates []EdgeCandidate
		exhaustive := radius > maxRadius
		if exhaustive {
			candidates = rt.all()
		} else {
			candidates = rt.SearchWithinRadius(lat, lon, radius)
		}

		u, dist, found := rt.nearest(candidates, point)
		if found && (exhaustive || dist <= radius*1000) {
			rt.cache.Add(key, u)
			return u, nil
		}
		if exhaustive {
			return datastructure.INVALID_VERTEX_ID, ErrNoReachableNode
		}
	}
}

// nearest. distance in meter
func (rt *Rtree) nearest(candidates []EdgeCandidate, point geo.Coordinate) (datastructure.Index, float64, bool) {
	best := datastructure.INVALID_VERTEX_ID
	bestDist := math.Inf(1)
	bestId := int64(math.MaxInt64)
	for _, c := range candidates {
		e := rt.graph.GetEdge(c.edge)
		dist := geo.PointPolylineDistance(e.GetGeometry(), point)
		nodeId := rt.graph.GetVertex(c.head).GetID()
		if dist < bestDist || (dist == bestDist && nodeId < bestId) {
			best, bestDist, bestId = c.head, dist, nodeId
		}
	}
	return best, bestDist, best != datastructure.INVALID_VERTEX_ID
}

func validLocation(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
