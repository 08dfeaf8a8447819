package datastructure

import (
	"testing"

	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    ClockTime
		wantErr bool
	}{
		{name: "hours and minutes", input: "06:00", want: NewClockTime(6, 0, 0)},
		{name: "with seconds", input: "12:30:15", want: NewClockTime(12, 30, 15)},
		{name: "surrounding whitespace", input: " 07:45 ", want: NewClockTime(7, 45, 0)},
		{name: "midnight", input: "00:00", want: 0},
		{name: "end of day", input: "24:00", want: pkg.SECONDS_PER_DAY},
		{name: "after end of day", input: "24:01", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "single digit hour", input: "6:00", wantErr: true},
		{name: "missing minutes", input: "06", wantErr: true},
		{name: "not a number", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClockTime)
				assert.False(t, got.IsSet())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockTimeString(t *testing.T) {
	assert.Equal(t, "06:05:09", NewClockTime(6, 5, 9).String())
	assert.Equal(t, "", NO_TIME.String())
}

func TestParseDaySet(t *testing.T) {
	testCases := []struct {
		name    string
		raw     []string
		want    []pkg.Weekday
		wantErr bool
	}{
		{name: "dutch abbreviations", raw: []string{"ma", "di", "wo"},
			want: []pkg.Weekday{pkg.MONDAY, pkg.TUESDAY, pkg.WEDNESDAY}},
		{name: "english abbreviations", raw: []string{"sat", "sun"}, want: []pkg.Weekday{pkg.SATURDAY, pkg.SUNDAY}},
		{name: "array notation in one string", raw: []string{"{ma,do,vr}"},
			want: []pkg.Weekday{pkg.MONDAY, pkg.THURSDAY, pkg.FRIDAY}},
		{name: "json array notation with quotes", raw: []string{`["za", "zo"]`},
			want: []pkg.Weekday{pkg.SATURDAY, pkg.SUNDAY}},
		{name: "duplicates and case", raw: []string{"MA", "ma"}, want: []pkg.Weekday{pkg.MONDAY}},
		{name: "empty", raw: []string{}, want: []pkg.Weekday{}},
		{name: "empty array notation", raw: []string{"{}"}, want: []pkg.Weekday{}},
		{name: "unknown day", raw: []string{"ma", "xx"}, wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDaySet(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeekday)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Days())
		})
	}
}

func TestDaySet(t *testing.T) {
	ds := NewDaySet(pkg.MONDAY, pkg.SUNDAY, pkg.NO_DAY)
	assert.True(t, ds.Contains(pkg.MONDAY))
	assert.True(t, ds.Contains(pkg.SUNDAY))
	assert.False(t, ds.Contains(pkg.TUESDAY))
	assert.False(t, ds.Contains(pkg.NO_DAY))
	assert.Equal(t, []pkg.Weekday{pkg.MONDAY, pkg.SUNDAY}, ds.Days())
	assert.False(t, ds.IsEmpty())
	assert.True(t, NewDaySet().IsEmpty())
}

func TestCovers(t *testing.T) {
	testCases := []struct {
		name  string
		start ClockTime
		end   ClockTime
		at    ClockTime
		want  bool
	}{
		{name: "inside", start: NewClockTime(7, 0, 0), end: NewClockTime(11, 0, 0), at: NewClockTime(9, 0, 0), want: true},
		{name: "start is inclusive", start: NewClockTime(7, 0, 0), end: NewClockTime(11, 0, 0), at: NewClockTime(7, 0, 0), want: true},
		{name: "end is inclusive", start: NewClockTime(7, 0, 0), end: NewClockTime(11, 0, 0), at: NewClockTime(11, 0, 0), want: true},
		{name: "before", start: NewClockTime(7, 0, 0), end: NewClockTime(11, 0, 0), at: NewClockTime(6, 59, 59), want: false},
		{name: "after", start: NewClockTime(7, 0, 0), end: NewClockTime(11, 0, 0), at: NewClockTime(11, 0, 1), want: false},
		{name: "window past midnight, late", start: NewClockTime(22, 0, 0), end: NewClockTime(6, 0, 0), at: NewClockTime(23, 0, 0), want: true},
		{name: "window past midnight, early", start: NewClockTime(22, 0, 0), end: NewClockTime(6, 0, 0), at: NewClockTime(5, 0, 0), want: true},
		{name: "window past midnight, midday", start: NewClockTime(22, 0, 0), end: NewClockTime(6, 0, 0), at: NewClockTime(12, 0, 0), want: false},
		{name: "no bounds cover the whole day", start: NO_TIME, end: NO_TIME, at: NewClockTime(3, 0, 0), want: true},
		{name: "open end", start: NewClockTime(10, 0, 0), end: NO_TIME, at: NewClockTime(23, 59, 0), want: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			r := &BollardRestriction{Start: tt.start, End: tt.end}
			assert.Equal(t, tt.want, r.Covers(tt.at))
		})
	}
}

func TestRestrictionIndex(t *testing.T) {
	restrictions := []*BollardRestriction{
		{ID: "b1", SegmentID: 12},
		{ID: "b2", SegmentID: -40},
		{ID: "unlinked"},
	}

	ri, err := NewRestrictionIndex(restrictions)
	require.NoError(t, err)
	assert.Equal(t, 3, ri.Len())

	t.Run("lookup by signed edge id", func(t *testing.T) {
		for _, id := range []int64{12, -12} {
			r, ok := ri.Get(id)
			require.True(t, ok)
			assert.Equal(t, "b1", r.ID)
		}
		r, ok := ri.Get(40)
		require.True(t, ok)
		assert.Equal(t, "b2", r.ID)

		_, ok = ri.Get(13)
		assert.False(t, ok)
		_, ok = ri.Get(0)
		assert.False(t, ok, "unlinked bollards are not attached to any segment")
	})

	t.Run("all keeps load order and is a copy", func(t *testing.T) {
		all := ri.All()
		require.Len(t, all, 3)
		assert.Equal(t, "b1", all[0].ID)
		assert.Equal(t, "b2", all[1].ID)
		assert.Equal(t, "unlinked", all[2].ID)

		all[0] = nil
		assert.NotNil(t, ri.All()[0])
	})

	t.Run("duplicate segment", func(t *testing.T) {
		_, err := NewRestrictionIndex([]*BollardRestriction{
			{ID: "a", SegmentID: 7},
			{ID: "b", SegmentID: -7},
		})
		assert.ErrorIs(t, err, ErrDuplicateRestriction)
	})
}

func TestQuery(t *testing.T) {
	dump := NewDumpQuery()
	assert.False(t, dump.IsParameterized())
	assert.True(t, dump.IsUnconstrained())

	q := NewQuery(52.37, 4.89)
	assert.True(t, q.IsParameterized())
	assert.True(t, q.IsUnconstrained())
	assert.False(t, q.HasDay())

	q = q.WithDay(pkg.TUESDAY)
	assert.True(t, q.HasDay())
	assert.False(t, q.IsUnconstrained())

	q = NewQuery(52.37, 4.89).WithTimeWindow(NewClockTime(6, 0, 0), NO_TIME)
	assert.False(t, q.IsUnconstrained())
	assert.Equal(t, NewClockTime(6, 0, 0), q.GetTimeFrom())
	assert.False(t, q.GetTimeTo().IsSet())
}
