package service

import (
	"time"

	"github.com/noah-isme/radio-cms-api/internal/models"
)

// CountdownService counts down to Christmas Day in the station timezone.
type CountdownService struct {
	clock    Clock
	location *time.Location
}

// NewCountdownService constructs the service.
func NewCountdownService(clock Clock, loc *time.Location) *CountdownService {
	if clock == nil {
		clock = RealClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &CountdownService{clock: clock, location: loc}
}

// Current returns the time left until Dec 25 00:00 of the current year.
// Once the target has passed every component is zero.
func (s *CountdownService) Current() models.Countdown {
	now := s.clock.Now().In(s.location)
	target := time.Date(now.Year(), time.December, 25, 0, 0, 0, 0, s.location)

	out := models.Countdown{Target: target}
	remaining := target.Sub(now)
	if remaining <= 0 {
		out.Passed = true
		return out
	}

	total := int(remaining / time.Second)
	out.Days = total / 86400
	out.Hours = total % 86400 / 3600
	out.Minutes = total % 3600 / 60
	out.Seconds = total % 60
	return out
}
