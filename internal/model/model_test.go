package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestStringArrayScan(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "nil", value: nil, want: []string{}},
		{name: "empty string", value: "", want: []string{}},
		{name: "json null", value: "null", want: []string{}},
		{name: "bytes", value: []byte(`["focus","study"]`), want: []string{"focus", "study"}},
		{name: "string", value: `["resume"]`, want: []string{"resume"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a StringArray
			if err := a.Scan(tt.value); err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if len(a) != len(tt.want) {
				t.Fatalf("got %v, want %v", a, tt.want)
			}
			for i := range a {
				if a[i] != tt.want[i] {
					t.Errorf("index %d: got %q, want %q", i, a[i], tt.want[i])
				}
			}
		})
	}
}

func TestStringArrayScanErrors(t *testing.T) {
	var a StringArray
	if err := a.Scan(42); err == nil {
		t.Error("expected error for unsupported type")
	}
	if err := a.Scan("{not json"); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestStringArrayValueAndJSON(t *testing.T) {
	var empty StringArray

	v, err := empty.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "[]" {
		t.Errorf("nil array stored as %v, want []", v)
	}

	b, err := json.Marshal(struct {
		Tags StringArray `json:"tags"`
	}{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(b) != `{"tags":[]}` {
		t.Errorf("got %s", b)
	}

	v, err = StringArray{"a", "b"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != `["a","b"]` {
		t.Errorf("got %v", v)
	}
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 3, 14, 18, 30, 0, 0, loc)

	w := DayOf(now)

	if !w.Start.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, loc)) {
		t.Errorf("start = %v", w.Start)
	}
	if !w.End.Equal(time.Date(2026, 3, 14, 23, 59, 59, 999_000_000, loc)) {
		t.Errorf("end = %v", w.End)
	}

	if !w.Contains(w.Start) || !w.Contains(w.End) || !w.Contains(now) {
		t.Error("window should contain its bounds and the reference time")
	}
	if w.Contains(w.Start.Add(-time.Nanosecond)) {
		t.Error("window should not contain the previous day")
	}
	if w.Contains(w.End.Add(time.Millisecond)) {
		t.Error("window should not contain the next day")
	}
}

func TestGoalPatchIsEmpty(t *testing.T) {
	if !(GoalPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	done := false
	if (GoalPatch{IsCompleted: &done}).IsEmpty() {
		t.Error("patch with completion flag should not be empty")
	}
}
