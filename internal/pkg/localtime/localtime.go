// Package localtime serializes timestamps as ISO-8601 local date-times
// ("2006-01-02T15:04:05") in the process time zone.
package localtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const Layout = "2006-01-02T15:04:05"

// DateTime is a time.Time that travels over JSON without a zone offset.
type DateTime struct {
	time.Time
}

func New(t time.Time) DateTime {
	return DateTime{Time: t}
}

// Parse accepts the local layout (fractional seconds allowed) and RFC 3339.
func Parse(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(Layout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q: expected %s", s, Layout)
	}
	return t, nil
}

func (d DateTime) String() string {
	return d.In(time.Local).Format(Layout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	t, err := Parse(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
