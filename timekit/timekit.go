// Package timekit converts between Unix timestamps and time.Time.
// Timestamps are milliseconds when ms is true and seconds otherwise.
package timekit

import (
	"fmt"
	"time"
)

// Now is the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// TimestampNow returns the current Unix timestamp.
func TimestampNow(ms bool) int64 {
	if ms {
		return time.Now().UnixMilli()
	}
	return time.Now().Unix()
}

// FromTimestamp converts ts into a UTC time. Sub-second precision of
// millisecond timestamps is dropped.
func FromTimestamp(ts int64, ms bool) time.Time {
	if ms {
		ts /= 1000
	}
	return time.Unix(ts, 0).UTC()
}

// ToTimestamp converts t into a whole-second Unix timestamp, scaled to
// milliseconds when ms is true.
func ToTimestamp(t time.Time, ms bool) int64 {
	sec := t.Unix()
	if ms {
		return sec * 1000
	}
	return sec
}

// InOffset returns ts in a fixed zone offset by hours from UTC.
// A ts of -1 means now.
func InOffset(ts int64, hours int, ms bool) time.Time {
	if ts == -1 {
		ts = TimestampNow(ms)
	}
	return FromTimestamp(ts, ms).In(Zone(hours))
}

// Zone returns a fixed zone named like "UTC+08:00".
func Zone(hours int) *time.Location {
	sign, h := '+', hours
	if h < 0 {
		sign, h = '-', -h
	}
	return time.FixedZone(fmt.Sprintf("UTC%c%02d:00", sign, h), hours*3600)
}
