package pkg

import "strings"

// enum of access tier. lower tier = preferred by the router
type AccessTier uint8

const (
	TIER_UNRESTRICTED       AccessTier = iota // car access, no bollard
	TIER_BOLLARD                              // car access, bollard on the segment
	TIER_NO_CAR_ACCESS                        // no car access, bollard absent or retracted
	TIER_NO_CAR_ACCESS_SHUT                   // no car access, bollard up
)

func (t AccessTier) String() string {
	switch t {
	case TIER_UNRESTRICTED:
		return "unrestricted"
	case TIER_BOLLARD:
		return "bollard"
	case TIER_NO_CAR_ACCESS:
		return "no_car_access"
	case TIER_NO_CAR_ACCESS_SHUT:
		return "no_car_access_shut"
	default:
		return "unknown"
	}
}

const (
	INF_WEIGHT float64 = 1e30

	DEFAULT_TIER_FACTOR float64 = 10000.0
	DEFAULT_ORIGIN_NODE int64   = 902205

	// locator search radius in km. doubled until a candidate is within radius.
	DEFAULT_LOCATOR_RADIUS     = 0.05
	DEFAULT_LOCATOR_CACHE_SIZE = 1 << 14

	SECONDS_PER_DAY = 24 * 60 * 60
)

type Weekday uint8

// enum of day of the week. NO_DAY = day not supplied
const (
	NO_DAY Weekday = iota
	MONDAY
	TUESDAY
	WEDNESDAY
	THURSDAY
	FRIDAY
	SATURDAY
	SUNDAY
)

var weekdayNames = [...]string{"", "mon", "tue", "wed", "thu", "fri", "sat", "sun"}

func (d Weekday) String() string {
	if int(d) >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[d]
}

// GetWeekday. accepts english (mon..sun) and dutch (ma..zo) abbreviations, as used by the bollard register.
func GetWeekday(day string) (Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(day)) {
	case "mon", "monday", "ma":
		return MONDAY, true
	case "tue", "tuesday", "di":
		return TUESDAY, true
	case "wed", "wednesday", "wo":
		return WEDNESDAY, true
	case "thu", "thursday", "do":
		return THURSDAY, true
	case "fri", "friday", "vr":
		return FRIDAY, true
	case "sat", "saturday", "za":
		return SATURDAY, true
	case "sun", "sunday", "zo":
		return SUNDAY, true
	default:
		return NO_DAY, false
	}
}
