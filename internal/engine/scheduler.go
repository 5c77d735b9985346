package engine

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ParseSchedule parses a standard five-field cron expression or a descriptor
// such as "@every 1m" or "@hourly".
func ParseSchedule(spec string) (cron.Schedule, error) {
	s, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule %q: %w", spec, err)
	}
	return s, nil
}

// NextRuns returns the next n activation times of s after from, each computed
// from the previous one.
func NextRuns(s cron.Schedule, from time.Time, n int) []time.Time {
	runs := make([]time.Time, 0, n)
	t := from
	for range n {
		t = s.Next(t)
		runs = append(runs, t)
	}
	return runs
}
