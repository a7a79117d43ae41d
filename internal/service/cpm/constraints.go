package cpm

import (
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

// applyForwardConstraints clamps an early start. Upper bounds
// (*_no_later_than) only take part in the backward pass.
func applyForwardConstraints(es time.Time, duration int, cs []domain.Constraint) time.Time {
	for _, c := range cs {
		d := Day(c.Date)
		switch c.Type {
		case domain.StartNoEarlierThan:
			es = maxTime(es, d)
		case domain.FinishNoEarlierThan:
			es = maxTime(es, addDays(d, -duration))
		case domain.MustStartOn:
			es = d
		case domain.MustFinishOn:
			es = addDays(d, -duration)
		}
	}
	return es
}

// applyBackwardConstraints clamps a late finish. Lower bounds
// (*_no_earlier_than) only take part in the forward pass.
func applyBackwardConstraints(lf time.Time, duration int, cs []domain.Constraint) time.Time {
	for _, c := range cs {
		d := Day(c.Date)
		switch c.Type {
		case domain.FinishNoLaterThan:
			lf = minTime(lf, d)
		case domain.StartNoLaterThan:
			lf = minTime(lf, addDays(d, duration))
		case domain.MustFinishOn:
			lf = d
		case domain.MustStartOn:
			lf = addDays(d, duration)
		}
	}
	return lf
}
