package pokeclock

// This file converts the time of day and the sun times for the observers
// location into the progress values that position the sun and moon and
// select the sky colors

import (
	"time"
)

// TransitionWindow is how long the sun and moon take to rise or set
const TransitionWindow = 30 * time.Minute

// ramp is the shared rise, hold, set shape. It returns 0 before riseStart,
// climbs linearly to 1 over the window, holds at 1 until setStart and then
// falls back to 0 over the window
func ramp(now, riseStart, setStart time.Time, window time.Duration) float64 {
	riseEnd := riseStart.Add(window)
	setEnd := setStart.Add(window)

	switch {
	case !now.Before(riseStart) && !now.After(riseEnd):
		return now.Sub(riseStart).Seconds() / window.Seconds()
	case now.After(riseEnd) && now.Before(setStart):
		return 1.0
	case !now.Before(setStart) && !now.After(setEnd):
		return 1.0 - now.Sub(setStart).Seconds()/window.Seconds()
	}
	return 0.0
}

// SunProgress is 0 at night, 1 during the day and ramps in between over the
// half hour following sunrise and sunset
func SunProgress(now, sunrise, sunset time.Time) float64 {
	return ramp(now, sunrise, sunset, TransitionWindow)
}

// Almanac holds the sun times around the current day, the neighbouring days
// are needed to place the moon across midnight
type Almanac struct {
	SunsetYesterday time.Time
	Sunrise         time.Time
	Sunset          time.Time
	SunriseTomorrow time.Time
}

// MoonProgress rises half an hour after the sun has finished setting and
// is fully set by the next sunrise
func MoonProgress(now time.Time, alm Almanac) float64 {
	sunset, sunrise := alm.Sunset, alm.SunriseTomorrow
	if now.Before(alm.Sunrise) {
		sunset, sunrise = alm.SunsetYesterday, alm.Sunrise
	}
	return ramp(now, sunset.Add(TransitionWindow), sunrise.Add(-TransitionWindow), TransitionWindow)
}

// SunProgress for the almanacs current day
func (alm Almanac) SunProgress(now time.Time) float64 {
	return SunProgress(now, alm.Sunrise, alm.Sunset)
}

// LookupAlmanac gathers sun times for yesterday, today and tomorrow relative
// to now in now's location. Days the source cannot answer for use a 06:00
// sunrise and 18:00 sunset instead, this never fails
func LookupAlmanac(src SunSource, obs Observer, now time.Time) (alm Almanac) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	_, alm.SunsetYesterday = sunTimes(src, obs, today.AddDate(0, 0, -1))
	alm.Sunrise, alm.Sunset = sunTimes(src, obs, today)
	alm.SunriseTomorrow, _ = sunTimes(src, obs, today.AddDate(0, 0, 1))
	return alm
}

func sunTimes(src SunSource, obs Observer, date time.Time) (sunrise, sunset time.Time) {
	if src != nil {
		rise, set, err := src.SunriseSunset(obs, date)
		if err == nil {
			return rise.In(date.Location()), set.In(date.Location())
		}
		logger.Debug("sun times unavailable, using fallback", "date", date.Format("2006-01-02"), "error", err.Error())
	}
	return FallbackSunTimes(date)
}

// FallbackSunTimes gives the fixed 06:00 and 18:00 local times used when no
// real sun times are available for date
func FallbackSunTimes(date time.Time) (sunrise, sunset time.Time) {
	loc := date.Location()
	sunrise = time.Date(date.Year(), date.Month(), date.Day(), 6, 0, 0, 0, loc)
	sunset = time.Date(date.Year(), date.Month(), date.Day(), 18, 0, 0, 0, loc)
	return sunrise, sunset
}
