package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/Bollardx/pkg/geo"
)

var (
	ErrUnknownNode   = errors.New("edge references a node that does not exist")
	ErrNegativeCost  = errors.New("edge base cost must be non-negative")
	ErrDuplicateEdge = errors.New("duplicate directed edge id")
	ErrDuplicateNode = errors.New("duplicate node id")
)

type edgeRecord struct {
	id        int64
	source    int64
	target    int64
	cost      float64
	carAccess bool
	geometry  []geo.Coordinate
}

// GraphBuilder. collects nodes & edges of the road network, Build() validates them
// and packs them into an immutable Graph.
type GraphBuilder struct {
	nodes   map[int64]geo.Coordinate
	edges   []edgeRecord
	edgeIds map[int64]struct{}
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		nodes:   make(map[int64]geo.Coordinate),
		edges:   make([]edgeRecord, 0),
		edgeIds: make(map[int64]struct{}),
	}
}

func (gb *GraphBuilder) AddNode(id int64, lat, lon float64) error {
	if _, ok := gb.nodes[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}
	gb.nodes[id] = geo.NewCoordinate(lat, lon)
	return nil
}

func (gb *GraphBuilder) HasNode(id int64) bool {
	_, ok := gb.nodes[id]
	return ok
}

// AddEdge. geometry may be nil, then the straight line between source & target is used.
func (gb *GraphBuilder) AddEdge(id, source, target int64, cost float64, carAccess bool,
	geometry []geo.Coordinate) error {
	if cost < 0 || math.IsNaN(cost) {
		return fmt.Errorf("%w: edge %d has cost %v", ErrNegativeCost, id, cost)
	}
	if _, ok := gb.edgeIds[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateEdge, id)
	}
	gb.edgeIds[id] = struct{}{}
	gb.edges = append(gb.edges, edgeRecord{
		id:        id,
		source:    source,
		target:    target,
		cost:      cost,
		carAccess: carAccess,
		geometry:  geometry,
	})
	return nil
}

func (gb *GraphBuilder) Build() (*Graph, error) {
	nodeIds := make([]int64, 0, len(gb.nodes))
	for id := range gb.nodes {
		nodeIds = append(nodeIds, id)
	}
	sort.Slice(nodeIds, func(i, j int) bool {
		return nodeIds[i] < nodeIds[j]
	})

	minLat, minLon := math.MaxFloat64, math.MaxFloat64
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)

	vertices := make([]*Vertex, len(nodeIds)+1)
	nodeIndex := make(map[int64]Index, len(nodeIds))
	for i, id := range nodeIds {
		c := gb.nodes[id]
		vertices[i] = NewVertex(c.Lat, c.Lon, id)
		nodeIndex[id] = Index(i)

		minLat = math.Min(minLat, c.Lat)
		minLon = math.Min(minLon, c.Lon)
		maxLat = math.Max(maxLat, c.Lat)
		maxLon = math.Max(maxLon, c.Lon)
	}
	// sentinel
	vertices[len(nodeIds)] = NewVertex(0, 0, -1)

	edges := make([]*Edge, len(gb.edges))
	for i, er := range gb.edges {
		tail, ok := nodeIndex[er.source]
		if !ok {
			return nil, fmt.Errorf("%w: edge %d source %d", ErrUnknownNode, er.id, er.source)
		}
		head, ok := nodeIndex[er.target]
		if !ok {
			return nil, fmt.Errorf("%w: edge %d target %d", ErrUnknownNode, er.id, er.target)
		}

		geometry := er.geometry
		if len(geometry) < 2 {
			geometry = []geo.Coordinate{gb.nodes[er.source], gb.nodes[er.target]}
		}
		edges[i] = NewEdge(er.id, tail, head, er.cost, er.carAccess, geometry)
	}

	// group by tail, out edges of a vertex ordered by edge id
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].tail != edges[j].tail {
			return edges[i].tail < edges[j].tail
		}
		return edges[i].id < edges[j].id
	})

	e := 0
	for u := 0; u < len(nodeIds); u++ {
		vertices[u].firstOut = Index(e)
		for e < len(edges) && edges[e].tail == Index(u) {
			e++
		}
	}
	vertices[len(nodeIds)].firstOut = Index(len(edges))

	g := &Graph{
		vertices:  vertices,
		edges:     edges,
		nodeIndex: nodeIndex,
	}
	if len(nodeIds) > 0 {
		g.boundingBox = NewBoundingBox(minLat, minLon, maxLat, maxLon)
	} else {
		g.boundingBox = NewBoundingBox(0, 0, 0, 0)
	}
	return g, nil
}
