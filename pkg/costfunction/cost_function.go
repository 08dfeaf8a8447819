package costfunction

import (
	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
)

type EdgeAttributes interface {
	GetWeight() float64
	GetEdgeId() int64
	GetSegmentId() int64
	IsCarAccessible() bool
}

// CostFunction. effective cost of traversing an edge for one query.
// restriction is the bollard on the edge's segment, nil if none.
type CostFunction interface {
	GetWeight(e EdgeAttributes, restriction *datastructure.BollardRestriction, q datastructure.Query) float64
	GetTier(e EdgeAttributes, restriction *datastructure.BollardRestriction, q datastructure.Query) pkg.AccessTier
	GetTierFactor() float64
}
