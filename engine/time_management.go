package engine

import (
	"time"
)

const (
	minThinkTime = 10 * time.Millisecond
	// Share of the budget after which no new update is consumed.
	StopFraction = 0.8
)

// ThinkTime is the budget for one move given the clock and increment:
// a fortieth of the remaining time plus the increment, but never more than
// half of what is left minus a second.
func ThinkTime(remaining, increment time.Duration) time.Duration {
	think := min(remaining/40+increment, remaining/2-time.Second)
	return max(think, minThinkTime)
}

// Deadline tracks how much of a think budget has been used.
type Deadline struct {
	now    func() time.Time
	start  time.Time
	budget time.Duration
}

// NewDeadline returns a Deadline reading the given clock, or the wall clock
// when now is nil.
func NewDeadline(now func() time.Time) *Deadline {
	if now == nil {
		now = time.Now
	}
	return &Deadline{now: now}
}

func (d *Deadline) Start(budget time.Duration) {
	d.start = d.now()
	d.budget = budget
}

func (d *Deadline) Elapsed() time.Duration {
	return d.now().Sub(d.start)
}

func (d *Deadline) Budget() time.Duration { return d.budget }

// Expired reports whether more than fraction of the budget has elapsed.
func (d *Deadline) Expired(fraction float64) bool {
	return d.Elapsed() > time.Duration(fraction*float64(d.budget))
}
