package timekit

import (
	"testing"
	"time"
)

func TestFromTimestamp(t *testing.T) {
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	if got := FromTimestamp(1704164645, false); !got.Equal(want) {
		t.Errorf("FromTimestamp(sec) = %v, want %v", got, want)
	}
	if got := FromTimestamp(1704164645999, true); !got.Equal(want) {
		t.Errorf("FromTimestamp(ms) = %v, want %v", got, want)
	}
	if got := FromTimestamp(0, false); got.Location() != time.UTC {
		t.Errorf("FromTimestamp location = %v, want UTC", got.Location())
	}
}

func TestToTimestamp(t *testing.T) {
	tm := time.Date(2024, 1, 2, 3, 4, 5, 600_000_000, time.UTC)

	if got := ToTimestamp(tm, false); got != 1704164645 {
		t.Errorf("ToTimestamp(sec) = %d", got)
	}
	if got := ToTimestamp(tm, true); got != 1704164645000 {
		t.Errorf("ToTimestamp(ms) = %d", got)
	}
}

func TestRoundTrip_Seconds(t *testing.T) {
	ts := TimestampNow(false)
	if got := ToTimestamp(FromTimestamp(ts, false), false); got != ts {
		t.Errorf("round trip = %d, want %d", got, ts)
	}
}

func TestTimestampNow(t *testing.T) {
	before := time.Now().Unix()
	sec := TimestampNow(false)
	ms := TimestampNow(true)
	after := time.Now().Unix()

	if sec < before || sec > after {
		t.Errorf("TimestampNow(false) = %d, want in [%d, %d]", sec, before, after)
	}
	if ms/1000 < before || ms/1000 > after {
		t.Errorf("TimestampNow(true) = %d", ms)
	}
}

func TestNow(t *testing.T) {
	if loc := Now().Location(); loc != time.UTC {
		t.Errorf("Now() location = %v", loc)
	}
}

func TestInOffset(t *testing.T) {
	got := InOffset(1704164645000, 8, true)

	if got.Hour() != 11 || got.Day() != 2 {
		t.Errorf("InOffset() = %v, want 11:04:05 on the 2nd", got)
	}
	name, offset := got.Zone()
	if name != "UTC+08:00" || offset != 8*3600 {
		t.Errorf("zone = %s %d", name, offset)
	}

	west := InOffset(1704164645, -5, false)
	if west.Day() != 1 || west.Hour() != 22 {
		t.Errorf("InOffset(-5) = %v", west)
	}
	if name, _ := west.Zone(); name != "UTC-05:00" {
		t.Errorf("zone name = %s", name)
	}
}

func TestInOffset_Now(t *testing.T) {
	got := InOffset(-1, 0, true)
	if d := time.Since(got); d < 0 || d > 2*time.Second {
		t.Errorf("InOffset(-1) = %v, not close to now", got)
	}
}
