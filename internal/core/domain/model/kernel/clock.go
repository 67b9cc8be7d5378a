package kernel

import "time"

// SystemClock reads the wall clock in UTC, truncated to microseconds so a
// timestamp survives a round trip through a PostgreSQL timestamptz unchanged.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
