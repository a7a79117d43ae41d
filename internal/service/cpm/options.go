package cpm

import (
	"time"
)

const (
	// DefaultDurationDays applies when a task has no positive duration.
	DefaultDurationDays = 1
	// DefaultMaxWalkDepth bounds the recursive date walks.
	DefaultMaxWalkDepth = 10000
)

type Options struct {
	// ProjectStart seeds tasks with no predecessors and no planned start.
	// The zero value means "today" according to Now.
	ProjectStart        time.Time
	DefaultDurationDays int
	MaxWalkDepth        int
	Now                 func() time.Time
}

func DefaultOptions() Options {
	return Options{
		DefaultDurationDays: DefaultDurationDays,
		MaxWalkDepth:        DefaultMaxWalkDepth,
		Now:                 time.Now,
	}
}

func (o Options) withDefaults() Options {
	if o.DefaultDurationDays <= 0 {
		o.DefaultDurationDays = DefaultDurationDays
	}
	if o.MaxWalkDepth <= 0 {
		o.MaxWalkDepth = DefaultMaxWalkDepth
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// baseStart is the earliest start used for tasks without predecessors and
// without a planned start.
func (o Options) baseStart() time.Time {
	if !o.ProjectStart.IsZero() {
		return Day(o.ProjectStart)
	}
	return Day(o.Now())
}
