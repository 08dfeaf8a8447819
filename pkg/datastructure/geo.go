package datastructure

import "github.com/lintang-b-s/Bollardx/pkg/geo"

type BoundingBox struct {
	minLat, minLon float64
	maxLat, maxLon float64
}

func NewBoundingBox(minLat, minLon, maxLat, maxLon float64) *BoundingBox {
	return &BoundingBox{minLat: minLat, minLon: minLon, maxLat: maxLat, maxLon: maxLon}
}

func (bb *BoundingBox) GetMinLat() float64 {
	return bb.minLat
}

func (bb *BoundingBox) GetMinLon() float64 {
	return bb.minLon
}

func (bb *BoundingBox) GetMaxLat() float64 {
	return bb.maxLat
}

func (bb *BoundingBox) GetMaxLon() float64 {
	return bb.maxLon
}

// DiagonalKm. length of the bounding box diagonal in km
func (bb *BoundingBox) DiagonalKm() float64 {
	return geo.CalculateHaversineDistance(bb.minLat, bb.minLon, bb.maxLat, bb.maxLon)
}
