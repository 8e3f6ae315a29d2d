package utils

import "testing"

func TestParseLimitOffset(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{"defaults", "", "", 5, 0, false},
		{"explicit values", "10", "20", 10, 20, false},
		{"max limit", "50", "", 50, 0, false},
		{"zero limit", "0", "", 0, 0, true},
		{"limit above max", "51", "", 0, 0, true},
		{"negative offset", "10", "-1", 0, 0, true},
		{"garbage limit", "ten", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ParseLimitOffset(tt.limit, tt.offset)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLimitOffset(%q, %q) expected error", tt.limit, tt.offset)
				}
				return
			}
			if err != nil || limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("ParseLimitOffset(%q, %q) = %d, %d, %v; want %d, %d",
					tt.limit, tt.offset, limit, offset, err, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestValidQuoteID(t *testing.T) {
	if !ValidQuoteID("7c9e6679-7425-40de-944b-e07fc1f90ae7") {
		t.Error("valid uuid rejected")
	}
	if ValidQuoteID("42") {
		t.Error("non-uuid accepted")
	}
}
