package routing

import (
	da "github.com/lintang-b-s/Bollardx/pkg/datastructure"
)

// VertexInfo. search label of a vertex
type VertexInfo struct {
	dist       float64
	parentEdge da.Index // edge through which the vertex was reached, INVALID_EDGE_ID for the source
	heapNode   *da.PriorityQueueNode[da.Index]
	settled    bool
}

func NewVertexInfo(dist float64, parentEdge da.Index, heapNode *da.PriorityQueueNode[da.Index]) VertexInfo {
	return VertexInfo{
		dist:       dist,
		parentEdge: parentEdge,
		heapNode:   heapNode,
	}
}

func (vi *VertexInfo) GetDist() float64 {
	return vi.dist
}

func (vi *VertexInfo) GetParentEdge() da.Index {
	return vi.parentEdge
}

func (vi *VertexInfo) IsLabelled() bool {
	return vi.heapNode != nil
}

func (vi *VertexInfo) IsSettled() bool {
	return vi.settled
}

// RouteResult. edges of a shortest path in travel order
type RouteResult struct {
	origin da.Index
	target da.Index
	edges  []da.Index
	cost   float64
}

func NewRouteResult(origin, target da.Index, edges []da.Index, cost float64) *RouteResult {
	return &RouteResult{origin: origin, target: target, edges: edges, cost: cost}
}

func (rr *RouteResult) GetOrigin() da.Index {
	return rr.origin
}

func (rr *RouteResult) GetTarget() da.Index {
	return rr.target
}

func (rr *RouteResult) GetEdges() []da.Index {
	return rr.edges
}

func (rr *RouteResult) GetCost() float64 {
	return rr.cost
}
