package controllers

import (
	"context"

	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/paulmach/orb/geojson"
)

type BollardService interface {
	FindBollards(ctx context.Context, q datastructure.Query) (*geojson.FeatureCollection, error)
	AllBollards(ctx context.Context) (*geojson.FeatureCollection, error)
}
