package backend

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-precision format the facility backend uses.
const DateLayout = "2006-01-02"

// Date wraps time.Time with tolerant JSON decoding. The backend mixes
// day-precision strings and full RFC 3339 timestamps; empty strings and
// null decode to the zero value.
type Date struct {
	time.Time
}

// NewDate builds a Date from a time.Time.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 {
		return []byte(`"` + d.Format(DateLayout) + `"`), nil
	}
	return []byte(`"` + d.Format(time.RFC3339) + `"`), nil
}

func (d *Date) UnmarshalJSON(raw []byte) error {
	s := strings.Trim(string(raw), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339, DateLayout, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("backend: unparseable date %q", s)
}

// Ptr returns a *time.Time, nil when zero. Aggregations that treat a
// missing date as excluded rather than as epoch rely on this.
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
