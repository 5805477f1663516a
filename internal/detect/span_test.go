package detect

import "testing"

func TestNewSpan_Validation(t *testing.T) {
	buffer := "hello world"

	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{"valid", 0, 5, false},
		{"full buffer", 0, 11, false},
		{"negative start", -1, 3, true},
		{"empty", 3, 3, true},
		{"inverted", 5, 2, true},
		{"past end", 0, 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpan(tt.start, tt.end, buffer)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSpan(%d, %d) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestNewSpan_RuneOffsets(t *testing.T) {
	// 4 runes, 8 bytes: span bounds are rune counts.
	buffer := "héllö"
	if _, err := NewSpan(0, 5, buffer); err != nil {
		t.Errorf("NewSpan(0, 5) over 5-rune buffer: %v", err)
	}
	if _, err := NewSpan(0, 6, buffer); err == nil {
		t.Error("NewSpan(0, 6) should exceed 5-rune buffer")
	}
}

func TestSpan_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{0, 3}, Span{5, 8}, false},
		{"adjacent half-open", Span{0, 3}, Span{3, 6}, false},
		{"partial", Span{0, 5}, Span{3, 8}, true},
		{"contained", Span{0, 10}, Span{3, 5}, true},
		{"identical", Span{2, 4}, Span{2, 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("overlap must be symmetric: %v vs %v", tt.b, tt.a)
			}
		})
	}
}
