package datastructure

import (
	"github.com/lintang-b-s/Bollardx/pkg"
)

// Query. one accessibility question. a query without location is a full-dataset dump.
type Query struct {
	lat, lon    float64
	hasLocation bool
	day         pkg.Weekday
	timeFrom    ClockTime
	timeTo      ClockTime
}

// NewDumpQuery. query without location
func NewDumpQuery() Query {
	return Query{timeFrom: NO_TIME, timeTo: NO_TIME}
}

func NewQuery(lat, lon float64) Query {
	return Query{lat: lat, lon: lon, hasLocation: true, timeFrom: NO_TIME, timeTo: NO_TIME}
}

func (q Query) WithDay(day pkg.Weekday) Query {
	q.day = day
	return q
}

func (q Query) WithTimeWindow(from, to ClockTime) Query {
	q.timeFrom = from
	q.timeTo = to
	return q
}

func (q Query) GetLat() float64 {
	return q.lat
}

func (q Query) GetLon() float64 {
	return q.lon
}

func (q Query) GetDay() pkg.Weekday {
	return q.day
}

func (q Query) GetTimeFrom() ClockTime {
	return q.timeFrom
}

func (q Query) GetTimeTo() ClockTime {
	return q.timeTo
}

func (q Query) HasDay() bool {
	return q.day != pkg.NO_DAY
}

// IsParameterized. true if the query carries a location and must be routed
func (q Query) IsParameterized() bool {
	return q.hasLocation
}

// IsUnconstrained. no day and no time window supplied
func (q Query) IsUnconstrained() bool {
	return !q.HasDay() && !q.timeFrom.IsSet() && !q.timeTo.IsSet()
}
