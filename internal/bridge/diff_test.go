package bridge

import "testing"

func TestDiffNote(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		cand     string
		expected string
	}{
		{
			name:     "identical outputs yield no note",
			ref:      "NPV: 95.24",
			cand:     "NPV: 95.24",
			expected: "",
		},
		{
			name:     "empty reference yields no note",
			ref:      "",
			cand:     "NPV: 95.24",
			expected: "",
		},
		{
			name:     "empty candidate yields no note",
			ref:      "NPV: 95.24",
			cand:     "",
			expected: "",
		},
		{
			name:     "numeric difference rounded to 4 places",
			ref:      "NPV: 398.67",
			cand:     "NPV: 398.68",
			expected: "0.0100 (C++: 398.67, Mojo: 398.68)",
		},
		{
			name:     "sub-precision difference",
			ref:      "IRR: 0.10163",
			cand:     "IRR: 0.10164",
			expected: "0.0000 (C++: 0.10163, Mojo: 0.10164)",
		},
		{
			name:     "no colon falls back to last token",
			ref:      "result 1.5",
			cand:     "result 2.5",
			expected: "1.0000 (C++: 1.5, Mojo: 2.5)",
		},
		{
			name:     "non-numeric outputs yield qualitative note",
			ref:      "Date: 2020-01-15",
			cand:     "Date: 2020-01-16",
			expected: "'Date: 2020-01-16' vs 'Date: 2020-01-15'",
		},
		{
			name:     "one side non-numeric yields qualitative note",
			ref:      "NPV: 398.67",
			cand:     "error: overflow",
			expected: "'error: overflow' vs 'NPV: 398.67'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiffNote(tt.ref, tt.cand)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTrailingNumber(t *testing.T) {
	tests := []struct {
		output   string
		expected float64
		ok       bool
	}{
		{"NPV: 95.24", 95.24, true},
		{"IRR: 0.1016", 0.1016, true},
		{"Serial: Date: 43845", 43845, true}, // last colon wins
		{"95.24", 95.24, true},
		{"plain text", 0, false},
		{"", 0, false},
		{"rate: n/a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			val, ok := trailingNumber(tt.output)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && val != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, val)
			}
		})
	}
}
