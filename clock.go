package pokeclock

import (
	"time"
)

// Clock supplies the time of day that the sky is drawn for
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock in a fixed location
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Location)
}

// ScaledClock starts at a chosen time and runs scale times faster than real
// time, it is used to preview a whole day in a few minutes
type ScaledClock struct {
	origin time.Time
	start  time.Time
	scale  float64
	wall   func() time.Time
}

// NewScaledClock creates a clock reading start now, advancing scale seconds
// per real second
func NewScaledClock(start time.Time, scale float64) *ScaledClock {
	return newScaledClock(start, scale, time.Now)
}

func newScaledClock(start time.Time, scale float64, wall func() time.Time) *ScaledClock {
	return &ScaledClock{
		origin: wall(),
		start:  start,
		scale:  scale,
		wall:   wall,
	}
}

func (c *ScaledClock) Now() time.Time {
	elapsed := c.wall().Sub(c.origin)
	return c.start.Add(time.Duration(float64(elapsed) * c.scale))
}
