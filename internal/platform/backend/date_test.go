package backend

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		in       string
		wantZero bool
		wantDay  string
	}{
		{`"2026-03-15"`, false, "2026-03-15"},
		{`"2026-03-15T14:30:00Z"`, false, "2026-03-15"},
		{`"2026-03-15T14:30:00"`, false, "2026-03-15"},
		{`""`, true, ""},
		{`null`, true, ""},
	}
	for _, tt := range tests {
		var d Date
		if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if d.IsZero() != tt.wantZero {
			t.Errorf("%s: IsZero = %v, want %v", tt.in, d.IsZero(), tt.wantZero)
		}
		if !tt.wantZero && d.Format(DateLayout) != tt.wantDay {
			t.Errorf("%s: day = %s, want %s", tt.in, d.Format(DateLayout), tt.wantDay)
		}
	}

	var d Date
	if err := json.Unmarshal([]byte(`"pas-une-date"`), &d); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestDateMarshal(t *testing.T) {
	day := NewDate(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	raw, err := json.Marshal(day)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2026-03-15"` {
		t.Errorf("day-precision marshal = %s", raw)
	}

	full := NewDate(time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC))
	raw, err = json.Marshal(full)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2026-03-15T14:30:00Z"` {
		t.Errorf("timestamp marshal = %s", raw)
	}

	raw, _ = json.Marshal(Date{})
	if string(raw) != "null" {
		t.Errorf("zero marshal = %s", raw)
	}
}

func TestDatePtr(t *testing.T) {
	if (Date{}).Ptr() != nil {
		t.Error("zero date must yield nil")
	}
	d := NewDate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	p := d.Ptr()
	if p == nil || !p.Equal(d.Time) {
		t.Error("non-zero date must round-trip through Ptr")
	}
}
