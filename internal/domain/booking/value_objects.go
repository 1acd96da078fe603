package booking

import (
	"errors"
	"time"
)

var ErrInvalidStay = errors.New("check-out must be after check-in")

// Stay is the booked occupancy window.
type Stay struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	if !checkOut.After(checkIn) {
		return Stay{}, ErrInvalidStay
	}
	return Stay{checkIn: checkIn, checkOut: checkOut}, nil
}

func (s Stay) CheckIn() time.Time  { return s.checkIn }
func (s Stay) CheckOut() time.Time { return s.checkOut }

func (s Stay) Nights() int {
	return int(s.checkOut.Sub(s.checkIn).Hours() / 24)
}

// HoursUntilCheckIn is the real-valued distance from now to check-in.
// Negative once check-in has passed. Callers sample now once and pass
// the same value through the whole decision.
func (s Stay) HoursUntilCheckIn(now time.Time) float64 {
	return s.checkIn.Sub(now).Hours()
}
