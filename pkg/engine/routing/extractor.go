package routing

import (
	"github.com/lintang-b-s/Bollardx/pkg/costfunction"
	da "github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/geo"
)

// RestrictionHit. a bollard encountered on a route, with the edge it was found on
type RestrictionHit struct {
	restriction  *da.BollardRestriction
	edgeId       int64
	edgeGeometry []geo.Coordinate
}

func NewRestrictionHit(restriction *da.BollardRestriction, edgeId int64, edgeGeometry []geo.Coordinate) RestrictionHit {
	return RestrictionHit{restriction: restriction, edgeId: edgeId, edgeGeometry: edgeGeometry}
}

func (rh RestrictionHit) GetRestriction() *da.BollardRestriction {
	return rh.restriction
}

func (rh RestrictionHit) GetEdgeId() int64 {
	return rh.edgeId
}

func (rh RestrictionHit) GetEdgeGeometry() []geo.Coordinate {
	return rh.edgeGeometry
}

// GetPoint. location of the bollard, the middle of the edge when the register has no point.
func (rh RestrictionHit) GetPoint() geo.Coordinate {
	if rh.restriction.Point != nil {
		return *rh.restriction.Point
	}
	return geo.PolylineMidPoint(rh.edgeGeometry)
}

type RestrictionExtractor struct {
	graph        *da.Graph
	restrictions *da.RestrictionIndex
}

func NewRestrictionExtractor(graph *da.Graph, restrictions *da.RestrictionIndex) *RestrictionExtractor {
	return &RestrictionExtractor{graph: graph, restrictions: restrictions}
}

// Extract. bollards on the route that block passage for q, in path order, one entry per segment.
// an unconstrained query (no day, no time) reports every bollard on the route.
func (re *RestrictionExtractor) Extract(route *RouteResult, q da.Query) []RestrictionHit {
	hits := make([]RestrictionHit, 0)
	seen := make(map[int64]struct{})

	for _, eId := range route.GetEdges() {
		e := re.graph.GetEdge(eId)
		segmentId := e.GetSegmentId()
		if _, ok := seen[segmentId]; ok {
			continue
		}

		r, ok := re.restrictions.Get(segmentId)
		if !ok {
			continue
		}
		if !q.IsUnconstrained() && !costfunction.IsRestrictionActive(r, q) {
			continue
		}

		seen[segmentId] = struct{}{}
		hits = append(hits, NewRestrictionHit(r, e.GetEdgeId(), e.GetGeometry()))
	}
	return hits
}
