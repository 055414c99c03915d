package pokeclock

import (
	"math"
	"testing"
	"time"
)

var vancouver = time.FixedZone("PDT", -7*60*60)

func at(hour, min int) time.Time {
	return time.Date(2024, time.June, 10, hour, min, 0, 0, vancouver)
}

func TestSunProgress(t *testing.T) {
	sunrise, sunset := at(6, 0), at(18, 0)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"rising", at(6, 15), 0.5},
		{"sunrise", at(6, 0), 0.0},
		{"risen", at(6, 30), 1.0},
		{"noon", at(12, 0), 1.0},
		{"setting", at(18, 10), 2.0 / 3.0},
		{"sunset", at(18, 0), 1.0},
		{"set", at(18, 30), 0.0},
		{"small hours", at(2, 0), 0.0},
		{"late evening", at(23, 0), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SunProgress(tt.now, sunrise, sunset); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SunProgress at %s = %v, want %v", tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestMoonProgress(t *testing.T) {
	alm := Almanac{
		SunsetYesterday: time.Date(2024, time.June, 9, 18, 0, 0, 0, vancouver),
		Sunrise:         at(6, 0),
		Sunset:          at(18, 0),
		SunriseTomorrow: time.Date(2024, time.June, 11, 6, 0, 0, 0, vancouver),
	}

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"daytime", at(12, 0), 0.0},
		{"sun still setting", at(18, 20), 0.0},
		{"rising", at(18, 45), 0.5},
		{"up", at(22, 0), 1.0},
		{"past midnight uses yesterdays sunset", at(2, 0), 1.0},
		{"setting before sunrise", at(5, 45), 0.5},
		{"set at sunrise", at(6, 0), 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoonProgress(tt.now, alm); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MoonProgress at %s = %v, want %v", tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestLookupAlmanac(t *testing.T) {
	now := at(12, 0)
	alm := LookupAlmanac(&fixedSun{riseHour: 5, setHour: 21}, Observer{}, now)

	if !alm.Sunrise.Equal(at(5, 0)) || !alm.Sunset.Equal(at(21, 0)) {
		t.Errorf("Unexpected sun times %v %v", alm.Sunrise, alm.Sunset)
	}
	if want := time.Date(2024, time.June, 9, 21, 0, 0, 0, vancouver); !alm.SunsetYesterday.Equal(want) {
		t.Errorf("Expected yesterdays sunset %v, got %v", want, alm.SunsetYesterday)
	}
	if want := time.Date(2024, time.June, 11, 5, 0, 0, 0, vancouver); !alm.SunriseTomorrow.Equal(want) {
		t.Errorf("Expected tomorrows sunrise %v, got %v", want, alm.SunriseTomorrow)
	}
}

func TestLookupAlmanacFallback(t *testing.T) {
	now := at(6, 15)
	alm := LookupAlmanac(&fixedSun{fail: true}, Observer{Latitude: 89.9}, now)

	if !alm.Sunrise.Equal(at(6, 0)) || !alm.Sunset.Equal(at(18, 0)) {
		t.Errorf("Expected the 06:00/18:00 fallback, got %v %v", alm.Sunrise, alm.Sunset)
	}
	if got := alm.SunProgress(now); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected progress 0.5 from fallback times, got %v", got)
	}

	// A missing source behaves the same
	if alm = LookupAlmanac(nil, Observer{}, now); !alm.Sunset.Equal(at(18, 0)) {
		t.Errorf("Expected fallback sunset, got %v", alm.Sunset)
	}
}
