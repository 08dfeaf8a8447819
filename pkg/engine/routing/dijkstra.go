package routing

import (
	"context"
	"fmt"
	"math"

	"github.com/lintang-b-s/Bollardx/pkg"
	da "github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/util"
)

// Dijkstra. single-source shortest path over non-negative edge weights. weights come from
// the metric and are evaluated while relaxing, so one graph serves every query.
// not safe for concurrent use, create one per query.
type Dijkstra struct {
	graph  *da.Graph
	metric WeightFunction

	info []VertexInfo
	pq   *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph *da.Graph, metric WeightFunction) *Dijkstra {
	return &Dijkstra{
		graph:  graph,
		metric: metric,
		pq:     da.NewFourAryHeap[da.Index](),
	}
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}

func (us *Dijkstra) SetMetric(metric WeightFunction) {
	us.metric = metric
}

func (us *Dijkstra) preallocate() {
	n := us.graph.NumberOfVertices()
	if len(us.info) != n {
		us.info = make([]VertexInfo, n)
	}
	for i := range us.info {
		us.info[i] = NewVertexInfo(pkg.INF_WEIGHT, da.INVALID_EDGE_ID, nil)
	}
	us.pq.Clear()
	us.numSettledNodes = 0
}

// ShortestPath. shortest path from s to t. vertices leave the queue in increasing
// (distance, reaching edge id) order, so equal cost paths are resolved the same way on every call.
func (us *Dijkstra) ShortestPath(ctx context.Context, s, t da.Index) (*RouteResult, error) {
	if err := us.search(ctx, s, t); err != nil {
		return nil, err
	}

	if !us.info[t].IsSettled() {
		return nil, ErrNoPathFound
	}

	edges := make([]da.Index, 0)
	for v := t; v != s; {
		eId := us.info[v].GetParentEdge()
		edges = append(edges, eId)
		v = us.graph.GetEdge(eId).GetTail()
	}

	return NewRouteResult(s, t, util.ReverseG(edges), us.info[t].GetDist()), nil
}

// ShortestPathTree. distances from s to every vertex, INF_WEIGHT if unreachable.
func (us *Dijkstra) ShortestPathTree(ctx context.Context, s da.Index) ([]float64, error) {
	if err := us.search(ctx, s, da.INVALID_VERTEX_ID); err != nil {
		return nil, err
	}
	dists := make([]float64, len(us.info))
	for v := range us.info {
		dists[v] = us.info[v].GetDist()
	}
	return dists, nil
}

// search. runs until t is settled or the queue is empty. t = INVALID_VERTEX_ID explores everything.
func (us *Dijkstra) search(ctx context.Context, s, t da.Index) error {
	us.preallocate()
	if int(s) >= len(us.info) {
		return ErrNoPathFound
	}

	sNode := da.NewPriorityQueueNode(0, math.MinInt64, s)
	us.pq.Insert(sNode)
	us.info[s] = NewVertexInfo(0, da.INVALID_EDGE_ID, sNode)

	for !us.pq.IsEmpty() {
		if us.numSettledNodes%CANCEL_CHECK_INTERVAL == 0 && util.StopConcurrentOperation(ctx) {
			return fmt.Errorf("%w after settling %d vertices: %v", ErrTimeout, us.numSettledNodes, ctx.Err())
		}

		if us.graphSearchUni() == t {
			return nil
		}
		us.numSettledNodes++
	}
	return nil
}

// graphSearchUni. settle the minimum of the queue and relax its out edges. returns the settled vertex.
func (us *Dijkstra) graphSearchUni() da.Index {
	queryKey, _ := us.pq.ExtractMin()
	uId := queryKey.GetItem()

	us.info[uId].settled = true
	uDist := us.info[uId].GetDist()

	us.graph.ForOutEdgesOf(uId, func(e *da.Edge, eId da.Index) {
		vId := e.GetHead()
		if us.info[vId].IsSettled() {
			return
		}

		newDist := uDist + us.metric.GetWeight(e)
		if newDist >= pkg.INF_WEIGHT {
			return
		}

		vInfo := &us.info[vId]
		if !vInfo.IsLabelled() {
			vhNode := da.NewPriorityQueueNode(newDist, e.GetEdgeId(), vId)
			us.pq.Insert(vhNode)
			*vInfo = NewVertexInfo(newDist, eId, vhNode)
			return
		}

		better := newDist < vInfo.dist ||
			(newDist == vInfo.dist && e.GetEdgeId() < us.graph.GetEdge(vInfo.parentEdge).GetEdgeId())
		if !better {
			return
		}

		vInfo.dist = newDist
		vInfo.parentEdge = eId
		_ = us.pq.DecreaseKey(vInfo.heapNode, newDist, e.GetEdgeId())
	})

	return uId
}
