package simulator

import "time"

// ServicePattern describes how seating demand moves across a taverna day.
type ServicePattern struct {
	Type            string
	TimeMultipliers map[int]float64
}

// Taverna service runs late: lunch builds after 13:00 and dinner holds
// past midnight. Hours absent from both tables see no walk-ins.
var ServicePatterns = map[string]ServicePattern{
	"lunch": {
		Type: "lunch",
		TimeMultipliers: map[int]float64{
			12: 0.3,
			13: 0.8,
			14: 1.0,
			15: 0.7,
			16: 0.3,
			17: 0.1,
		},
	},
	"dinner": {
		Type: "dinner",
		TimeMultipliers: map[int]float64{
			19: 0.3,
			20: 0.7,
			21: 1.0,
			22: 0.9,
			23: 0.6,
			0:  0.3,
		},
	},
}

// arrivalRate returns expected party arrivals per hour at time t.
func (s *Simulator) arrivalRate(t time.Time) float64 {
	hour := t.Hour()
	var rate float64
	for _, pattern := range ServicePatterns {
		multiplier, ok := pattern.TimeMultipliers[hour]
		if !ok {
			continue
		}
		if r := s.Config.SeatingRate * multiplier; r > rate {
			rate = r
		}
	}
	if rate == 0 {
		return 0
	}
	if isWeekendService(t) {
		rate *= s.Config.WeekendFactor
	}
	return rate
}

// Friday dinner trades like the weekend.
func isWeekendService(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	case time.Friday:
		return t.Hour() >= 19
	}
	return false
}
