package datastructure

import (
	"github.com/lintang-b-s/Bollardx/pkg/geo"
	"github.com/lintang-b-s/Bollardx/pkg/util"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = ^Index(0)
	INVALID_EDGE_ID   Index = ^Index(0)
)

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.edges array
	id       int64 // node id in the road network
}

func NewVertex(lat, lon float64, id int64) *Vertex {
	return &Vertex{
		lat: lat,
		lon: lon,
		id:  id,
	}
}

func (v *Vertex) GetID() int64 {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetFirstOut() Index {
	return v.firstOut
}

// Edge. one traversal direction of a road segment.
// sign of id = direction, abs(id) = segment id shared with the opposite direction.
type Edge struct {
	id        int64
	tail      Index
	head      Index
	cost      float64 // base cost (length/speed)
	carAccess bool
	geometry  []geo.Coordinate
}

func NewEdge(id int64, tail, head Index, cost float64, carAccess bool, geometry []geo.Coordinate) *Edge {
	return &Edge{
		id:        id,
		tail:      tail,
		head:      head,
		cost:      cost,
		carAccess: carAccess,
		geometry:  geometry,
	}
}

func (e *Edge) GetEdgeId() int64 {
	return e.id
}

func (e *Edge) GetSegmentId() int64 {
	return util.Abs(e.id)
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

// GetWeight. base cost of the edge, before any reweighting
func (e *Edge) GetWeight() float64 {
	return e.cost
}

func (e *Edge) IsCarAccessible() bool {
	return e.carAccess
}

func (e *Edge) GetGeometry() []geo.Coordinate {
	return e.geometry
}

// Graph. static directed road network. edges are stored grouped by tail (compressed sparse row),
// vertices[n] is a sentinel so that outDegree(u) = vertices[u+1].firstOut - vertices[u].firstOut.
// immutable after Build, safe for concurrent readers.
type Graph struct {
	vertices  []*Vertex
	edges     []*Edge
	nodeIndex map[int64]Index

	boundingBox *BoundingBox
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetEdge(e Index) *Edge {
	return g.edges[e]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

// GetVertexIndex. arena index of a road network node id
func (g *Graph) GetVertexIndex(nodeID int64) (Index, bool) {
	u, ok := g.nodeIndex[nodeID]
	return u, ok
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge, eId Index)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(g.edges[e], e)
	}
}

func (g *Graph) ForEdges(handle func(e *Edge, eId Index)) {
	for e := range g.edges {
		handle(g.edges[e], Index(e))
	}
}
