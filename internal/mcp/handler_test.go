package mcp

import (
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      int
		min      int
		max      int
		expected int
	}{
		{"value in range", 5, 1, 10, 5},
		{"value below min", -3, 1, 10, 1},
		{"value above max", 15, 1, 10, 10},
		{"value equals min", 1, 1, 10, 1},
		{"value equals max", 10, 1, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clamp(tt.val, tt.min, tt.max)
			if got != tt.expected {
				t.Errorf("clamp(%d, %d, %d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.expected)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	loc := time.FixedZone("SAST", 2*60*60)
	got, err := parseDay("2025-03-05", loc)
	if err != nil {
		t.Fatalf("parseDay: %v", err)
	}
	if want := time.Date(2025, 3, 5, 0, 0, 0, 0, loc); !got.Equal(want) {
		t.Errorf("parseDay = %v, want %v", got, want)
	}
	for _, bad := range []string{"05/03/2025", "2025-3-5", "tomorrow"} {
		if _, err := parseDay(bad, loc); err == nil {
			t.Errorf("parseDay(%q) should fail", bad)
		}
	}
}

func TestReadOnlyAnnotation(t *testing.T) {
	ann := readOnlyAnnotation()

	if ann.ReadOnlyHint == nil {
		t.Fatal("ReadOnlyHint should not be nil for readOnlyAnnotation")
	}
	if *ann.ReadOnlyHint != true {
		t.Errorf("ReadOnlyHint = %v, want true", *ann.ReadOnlyHint)
	}
}
