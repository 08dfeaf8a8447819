package usecases

import (
	"context"

	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/lintang-b-s/Bollardx/pkg/engine/routing"
)

type RoutingEngine interface {
	FindBollards(ctx context.Context, q datastructure.Query) ([]routing.RestrictionHit, error)
	AllRestrictions() []*datastructure.BollardRestriction
}

// SnapshotFunc. returns the routing engine currently published, looked up once per request
type SnapshotFunc func() RoutingEngine
