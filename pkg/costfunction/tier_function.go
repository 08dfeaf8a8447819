package costfunction

import (
	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
)

// TierFunction. encodes access tiers as cost multipliers so the router only uses a bollard,
// or a road closed to cars, when every alternative is worse:
//
//	tier 0: car access, no bollard             -> cost
//	tier 1: car access, bollard (up or down)   -> cost * K
//	tier 2: no car access, bollard not blocking -> K * K
//	tier 3: no car access, bollard blocking    -> 2 * K * K
//
// separation only holds while base cost sums along paths stay below K, see customizer.ValidateTierSeparation.
type TierFunction struct {
	k float64
}

func NewTierCostFunction(k float64) *TierFunction {
	if k <= 0 {
		k = pkg.DEFAULT_TIER_FACTOR
	}
	return &TierFunction{k: k}
}

func (tf *TierFunction) GetTierFactor() float64 {
	return tf.k
}

func (tf *TierFunction) GetTier(e EdgeAttributes, restriction *datastructure.BollardRestriction,
	q datastructure.Query) pkg.AccessTier {
	if e.IsCarAccessible() {
		if restriction == nil {
			return pkg.TIER_UNRESTRICTED
		}
		return pkg.TIER_BOLLARD
	}

	if restriction != nil && IsRestrictionActive(restriction, q) {
		return pkg.TIER_NO_CAR_ACCESS_SHUT
	}
	return pkg.TIER_NO_CAR_ACCESS
}

func (tf *TierFunction) GetWeight(e EdgeAttributes, restriction *datastructure.BollardRestriction,
	q datastructure.Query) float64 {
	switch tf.GetTier(e, restriction, q) {
	case pkg.TIER_UNRESTRICTED:
		return e.GetWeight()
	case pkg.TIER_BOLLARD:
		return e.GetWeight() * tf.k
	case pkg.TIER_NO_CAR_ACCESS:
		return tf.k * tf.k
	default:
		return 2 * tf.k * tf.k
	}
}
