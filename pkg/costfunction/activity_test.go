package costfunction

import (
	"testing"

	"github.com/lintang-b-s/Bollardx/pkg"
	da "github.com/lintang-b-s/Bollardx/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestIsRestrictionActive(t *testing.T) {
	r := weekdayMorningBollard()
	at := da.NewClockTime
	base := da.NewQuery(52.371198, 4.8920418)

	testCases := []struct {
		name  string
		query da.Query
		want  bool
	}{
		{name: "unconstrained query never blocks", query: base, want: false},
		{name: "day in set", query: base.WithDay(pkg.MONDAY), want: false},
		{name: "day not in set", query: base.WithDay(pkg.WEDNESDAY), want: true},
		{name: "window inside retraction window",
			query: base.WithDay(pkg.TUESDAY).WithTimeWindow(at(8, 0, 0), at(10, 0, 0)), want: false},
		{name: "window on the bounds",
			query: base.WithDay(pkg.TUESDAY).WithTimeWindow(at(7, 0, 0), at(11, 0, 0)), want: false},
		{name: "window starts early",
			query: base.WithDay(pkg.TUESDAY).WithTimeWindow(at(6, 0, 0), at(10, 0, 0)), want: true},
		{name: "window ends late",
			query: base.WithDay(pkg.TUESDAY).WithTimeWindow(at(8, 0, 0), at(12, 0, 0)), want: true},
		{name: "only time from, covered",
			query: base.WithTimeWindow(at(9, 0, 0), da.NO_TIME), want: false},
		{name: "only time to, not covered",
			query: base.WithTimeWindow(da.NO_TIME, at(11, 30, 0)), want: true},
		{name: "right day, wrong time",
			query: base.WithDay(pkg.MONDAY).WithTimeWindow(at(12, 0, 0), at(13, 0, 0)), want: true},
		{name: "wrong day, right time",
			query: base.WithDay(pkg.SUNDAY).WithTimeWindow(at(8, 0, 0), at(9, 0, 0)), want: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRestrictionActive(r, tt.query))
		})
	}
}

// a bollard without active days is never retracted: it blocks every query that names a day,
// and a query without day cannot be blocked by the day rule.
func TestIsRestrictionActiveEmptyDaySet(t *testing.T) {
	r := &da.BollardRestriction{ID: "no-days", Days: da.NewDaySet(), Start: da.NO_TIME, End: da.NO_TIME}
	base := da.NewQuery(52.37, 4.89)

	for d := pkg.MONDAY; d <= pkg.SUNDAY; d++ {
		assert.True(t, IsRestrictionActive(r, base.WithDay(d)), "day %v", d)
	}
	assert.False(t, IsRestrictionActive(r, base))
	assert.False(t, IsRestrictionActive(r, base.WithTimeWindow(da.NewClockTime(6, 0, 0), da.NewClockTime(12, 0, 0))))
}

func TestIsRestrictionActiveMidnightWindow(t *testing.T) {
	r := &da.BollardRestriction{
		ID:    "night",
		Days:  da.NewDaySet(pkg.FRIDAY, pkg.SATURDAY),
		Start: da.NewClockTime(22, 0, 0),
		End:   da.NewClockTime(6, 0, 0),
	}
	q := da.NewQuery(52.37, 4.89).WithDay(pkg.FRIDAY)

	assert.False(t, IsRestrictionActive(r, q.WithTimeWindow(da.NewClockTime(23, 0, 0), da.NewClockTime(23, 30, 0))))
	assert.False(t, IsRestrictionActive(r, q.WithTimeWindow(da.NewClockTime(1, 0, 0), da.NewClockTime(5, 0, 0))))
	assert.True(t, IsRestrictionActive(r, q.WithTimeWindow(da.NewClockTime(5, 0, 0), da.NewClockTime(7, 0, 0))))
}
