package routing

import (
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
)

type WeightFunction interface {
	GetWeight(e *datastructure.Edge) float64
}

type Locator interface {
	Locate(lat, lon float64) (datastructure.Index, error)
}
