package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ISO-8601 without a zone designator; values are UTC. The fraction is
// printed with all six digits, or not at all when it is zero.
const (
	wireLayout         = "2006-01-02T15:04:05"
	wireLayoutFraction = "2006-01-02T15:04:05.000000"
)

var ErrInvalidDateTime = errors.New("value is not a valid ISO-8601 datetime")

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// DateTime is a timestamp carried on the wire in ISO-8601 form.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: normalizeTime(t)}
}

// ParseDateTime parses zoned and naive ISO-8601 strings. Zoned values are
// converted to UTC, naive values are taken as UTC.
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDateTime(t), nil
		}
	}
	return DateTime{}, fmt.Errorf("%w: got %q", ErrInvalidDateTime, s)
}

func (d DateTime) String() string {
	t := d.UTC()
	if t.Nanosecond() == 0 {
		return t.Format(wireLayout)
	}
	return t.Format(wireLayoutFraction)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: got %s", ErrInvalidDateTime, data)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// normalizeTime drops the zone and anything below the microsecond, which is
// what the relational backends keep.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
