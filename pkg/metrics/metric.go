package metrics

import (
	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/costfunction"
	da "github.com/lintang-b-s/Bollardx/pkg/datastructure"
)

// Metric. edge weights of the road network for one query. weights are computed lazily
// when the search relaxes an edge, the graph itself is never copied or mutated.
type Metric struct {
	restrictions *da.RestrictionIndex
	costFunction costfunction.CostFunction
	query        da.Query
}

func NewMetric(restrictions *da.RestrictionIndex, costFunction costfunction.CostFunction, q da.Query) *Metric {
	return &Metric{
		restrictions: restrictions,
		costFunction: costFunction,
		query:        q,
	}
}

func (met *Metric) GetWeight(e *da.Edge) float64 {
	return met.costFunction.GetWeight(e, met.restriction(e), met.query)
}

func (met *Metric) GetTier(e *da.Edge) pkg.AccessTier {
	return met.costFunction.GetTier(e, met.restriction(e), met.query)
}

func (met *Metric) GetQuery() da.Query {
	return met.query
}

func (met *Metric) restriction(e *da.Edge) *da.BollardRestriction {
	r, ok := met.restrictions.Get(e.GetSegmentId())
	if !ok {
		return nil
	}
	return r
}

// CarNetworkMetric. base costs of the car network without reweighting, edges closed to cars are
// left out. used to check tier separation.
type CarNetworkMetric struct{}

func NewCarNetworkMetric() CarNetworkMetric {
	return CarNetworkMetric{}
}

func (CarNetworkMetric) GetWeight(e *da.Edge) float64 {
	if !e.IsCarAccessible() {
		return pkg.INF_WEIGHT
	}
	return e.GetWeight()
}
