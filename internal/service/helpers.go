package service

import (
	"time"
)

// DefaultRiskThreshold is the number of near-term open items that marks a
// property as at risk.
const DefaultRiskThreshold = 5

// DefaultDueSoonDays is the window used for the due-soon column of
// PropertiesWithStats.
const DefaultDueSoonDays = 7

// Option configures a service.
type Option func(*options)

type options struct {
	now           func() time.Time
	observer      UseCaseObserver
	riskThreshold int
	dueSoonDays   int
}

func newOptions(opts []Option) options {
	o := options{
		now:           time.Now,
		observer:      NoopUseCaseObserver{},
		riskThreshold: DefaultRiskThreshold,
		dueSoonDays:   DefaultDueSoonDays,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock replaces time.Now for every date comparison and timestamp.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithRiskThreshold sets the at-risk threshold. Values below 1 are ignored.
func WithRiskThreshold(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.riskThreshold = n
		}
	}
}

// WithDueSoonDays sets the due-soon window used by PropertiesWithStats.
func WithDueSoonDays(days int) Option {
	return func(o *options) {
		if days >= 0 {
			o.dueSoonDays = days
		}
	}
}

// nowUTC is for stored timestamps. Calendar-day arithmetic uses o.now()
// so "today" follows the clock's own zone.
func (o options) nowUTC() time.Time {
	return o.now().UTC()
}
