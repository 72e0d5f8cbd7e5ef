package helpers

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if FormatDate(date) != "2024-03-01" {
		t.Errorf("FormatDate(ParseDate()) = %q", FormatDate(date))
	}

	for _, bad := range []string{"01/03/2024", "2024-3-1", "yesterday", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) accepted an invalid date", bad)
		}
	}
}

func TestParseDuration(t *testing.T) {
	if got := ParseDuration("2h", time.Minute); got != 2*time.Hour {
		t.Errorf("ParseDuration(2h) = %v", got)
	}
	if got := ParseDuration("", time.Minute); got != time.Minute {
		t.Errorf("ParseDuration(empty) = %v, want the fallback", got)
	}
	if got := ParseDuration("soon", time.Minute); got != time.Minute {
		t.Errorf("ParseDuration(invalid) = %v, want the fallback", got)
	}
}
