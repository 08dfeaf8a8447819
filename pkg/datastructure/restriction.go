package datastructure

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lintang-b-s/Bollardx/pkg"
	"github.com/lintang-b-s/Bollardx/pkg/geo"
	"github.com/lintang-b-s/Bollardx/pkg/util"
)

var (
	ErrInvalidClockTime     = errors.New("time must be formatted as HH:MM or HH:MM:SS")
	ErrInvalidWeekday       = errors.New("unknown day of the week")
	ErrDuplicateRestriction = errors.New("segment already has a bollard restriction")
)

// ClockTime. seconds since midnight. NO_TIME = not supplied.
type ClockTime int32

const NO_TIME ClockTime = -1

func NewClockTime(hour, minute, second int) ClockTime {
	return ClockTime(hour*3600 + minute*60 + second)
}

// ParseClockTime. parses "HH:MM" or "HH:MM:SS". "24:00" is accepted as end of day.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return NO_TIME, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	vals := [3]int{}
	for i, p := range parts {
		if len(p) != 2 {
			return NO_TIME, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return NO_TIME, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
		}
		vals[i] = v
	}

	hour, minute, second := vals[0], vals[1], vals[2]
	if minute > 59 || second > 59 || hour > 24 || (hour == 24 && (minute > 0 || second > 0)) {
		return NO_TIME, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return NewClockTime(hour, minute, second), nil
}

func (c ClockTime) IsSet() bool {
	return c >= 0
}

func (c ClockTime) String() string {
	if !c.IsSet() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d:%02d", c/3600, (c%3600)/60, c%60)
}

// DaySet. bitmask of active days, bit i = pkg.Weekday(i).
type DaySet uint8

func NewDaySet(days ...pkg.Weekday) DaySet {
	var ds DaySet
	for _, d := range days {
		if d == pkg.NO_DAY {
			continue
		}
		ds |= 1 << d
	}
	return ds
}

// ParseDaySet. parses day abbreviations, tolerating the "{ma,di}" / "[ma, di]" array notation of the register.
func ParseDaySet(raw []string) (DaySet, error) {
	days := make([]pkg.Weekday, 0, len(raw))
	for _, r := range raw {
		for _, token := range strings.Split(strings.Trim(r, "[]{} "), ",") {
			token = strings.Trim(token, "[]{}\"' ")
			if token == "" {
				continue
			}
			d, ok := pkg.GetWeekday(token)
			if !ok {
				return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, token)
			}
			days = append(days, d)
		}
	}
	return NewDaySet(days...), nil
}

func (ds DaySet) Contains(d pkg.Weekday) bool {
	return d != pkg.NO_DAY && ds&(1<<d) != 0
}

func (ds DaySet) IsEmpty() bool {
	return ds == 0
}

func (ds DaySet) Days() []pkg.Weekday {
	days := make([]pkg.Weekday, 0, 7)
	for d := pkg.MONDAY; d <= pkg.SUNDAY; d++ {
		if ds.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// BollardRestriction. retractable bollard on a road segment. the bollard is lowered
// (passage open) on Days between Start and End.
type BollardRestriction struct {
	SegmentID   int64 // abs(edge id). 0 = not linked to the network
	ID          string
	Type        string
	Location    string
	Days        DaySet
	RawDays     []string
	Start       ClockTime
	End         ClockTime
	EntrySystem string
	Point       *geo.Coordinate // nil when the register has no location
	WindowTimes string
	Details     string
}

// Covers. whether t lies inside the retraction window, bounds inclusive.
// a window with Start > End wraps past midnight. unset bounds cover the whole day.
func (r *BollardRestriction) Covers(t ClockTime) bool {
	start, end := r.Start, r.End
	if !start.IsSet() {
		start = 0
	}
	if !end.IsSet() {
		end = pkg.SECONDS_PER_DAY
	}
	if start <= end {
		return start <= t && t <= end
	}
	return t >= start || t <= end
}

// RestrictionIndex. segment id -> zero or one bollard restriction. immutable after NewRestrictionIndex.
type RestrictionIndex struct {
	bySegment map[int64]*BollardRestriction
	ordered   []*BollardRestriction
}

func NewRestrictionIndex(restrictions []*BollardRestriction) (*RestrictionIndex, error) {
	ri := &RestrictionIndex{
		bySegment: make(map[int64]*BollardRestriction, len(restrictions)),
		ordered:   make([]*BollardRestriction, 0, len(restrictions)),
	}
	for _, r := range restrictions {
		r.SegmentID = util.Abs(r.SegmentID)
		if r.SegmentID != 0 {
			if other, ok := ri.bySegment[r.SegmentID]; ok {
				return nil, fmt.Errorf("%w: segment %d has %q and %q", ErrDuplicateRestriction,
					r.SegmentID, other.ID, r.ID)
			}
			ri.bySegment[r.SegmentID] = r
		}
		ri.ordered = append(ri.ordered, r)
	}
	return ri, nil
}

// Get. restriction of a segment. segmentID may be a signed edge id.
func (ri *RestrictionIndex) Get(segmentID int64) (*BollardRestriction, bool) {
	r, ok := ri.bySegment[util.Abs(segmentID)]
	return r, ok
}

func (ri *RestrictionIndex) All() []*BollardRestriction {
	all := make([]*BollardRestriction, len(ri.ordered))
	copy(all, ri.ordered)
	return all
}

func (ri *RestrictionIndex) Len() int {
	return len(ri.ordered)
}
