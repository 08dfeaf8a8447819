package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWeekday(t *testing.T) {
	testCases := []struct {
		input  string
		want   Weekday
		wantOk bool
	}{
		{input: "mon", want: MONDAY, wantOk: true},
		{input: "tue", want: TUESDAY, wantOk: true},
		{input: "Wednesday", want: WEDNESDAY, wantOk: true},
		{input: " do ", want: THURSDAY, wantOk: true},
		{input: "vr", want: FRIDAY, wantOk: true},
		{input: "ZA", want: SATURDAY, wantOk: true},
		{input: "zo", want: SUNDAY, wantOk: true},
		{input: "", want: NO_DAY, wantOk: false},
		{input: "holiday", want: NO_DAY, wantOk: false},
	}

	for _, tt := range testCases {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := GetWeekday(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayString(t *testing.T) {
	assert.Equal(t, "mon", MONDAY.String())
	assert.Equal(t, "sun", SUNDAY.String())
	assert.Equal(t, "", NO_DAY.String())
	assert.Equal(t, "", Weekday(42).String())
}

func TestAccessTierOrder(t *testing.T) {
	assert.Less(t, int(TIER_UNRESTRICTED), int(TIER_BOLLARD))
	assert.Less(t, int(TIER_BOLLARD), int(TIER_NO_CAR_ACCESS))
	assert.Less(t, int(TIER_NO_CAR_ACCESS), int(TIER_NO_CAR_ACCESS_SHUT))
}
