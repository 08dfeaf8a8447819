package costfunction

import (
	"github.com/lintang-b-s/Bollardx/pkg/datastructure"
)

// IsRestrictionActive. whether the bollard blocks passage for the query, i.e. any supplied
// constraint falls outside the retraction window:
//   - the day is not one of the restriction's days (an empty day set blocks every supplied day)
//   - time_from is not covered by [start, end]
//   - time_to is not covered by [start, end]
//
// constraints that are not supplied never block, so an unconstrained query sees every bollard as open.
func IsRestrictionActive(r *datastructure.BollardRestriction, q datastructure.Query) bool {
	if q.HasDay() && !r.Days.Contains(q.GetDay()) {
		return true
	}
	if from := q.GetTimeFrom(); from.IsSet() && !r.Covers(from) {
		return true
	}
	if to := q.GetTimeTo(); to.IsSet() && !r.Covers(to) {
		return true
	}
	return false
}
