package pokeclock

// This module wraps the astronomical calculation of sunrise and sunset so
// that the renderer can be driven from real or canned sun times

import (
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
	"github.com/nathan-osman/go-sunrise"
)

// Observer is a position on the earth
type Observer struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// SunSource produces the sunrise and sunset for the calendar day of date,
// the returned times may be in any location
type SunSource interface {
	SunriseSunset(obs Observer, date time.Time) (sunrise time.Time, sunset time.Time, err errors.Error)
}

type sunriseSource struct{}

// NewSunriseSource returns a SunSource computing sun times using the NOAA
// algorithm
func NewSunriseSource() SunSource {
	return &sunriseSource{}
}

func (*sunriseSource) SunriseSunset(obs Observer, date time.Time) (rise time.Time, set time.Time, err errors.Error) {
	rise, set = sunrise.SunriseSunset(obs.Latitude, obs.Longitude, date.Year(), date.Month(), date.Day())

	// Polar day and polar night are reported as zero times
	if rise.IsZero() || set.IsZero() {
		return rise, set, errors.New("no sunrise or sunset on this date").
			With("date", date.Format("2006-01-02")).With("latitude", obs.Latitude).
			With("stack", stack.Trace().TrimRuntime())
	}
	return rise, set, nil
}
