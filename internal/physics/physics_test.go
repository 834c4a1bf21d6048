package physics

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct{ v, want float64 }{
		{-2, -1}, {-1, -1}, {0.3, 0.3}, {1, 1}, {5, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, -1, 1); got != tt.want {
			t.Errorf("Clamp(%g) = %g, want %g", tt.v, got, tt.want)
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(0, 0.2, 0.25) {
		t.Errorf("0.2 apart should be within 0.25")
	}
	if WithinTolerance(0, 0.25, 0.25) {
		t.Errorf("tolerance is exclusive")
	}
	if WithinTolerance(0.9, 0, 0.25) {
		t.Errorf("0.9 apart should not be within 0.25")
	}
}

func TestSweptThrough(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     bool
	}{
		{"inside", 140, 140, true},
		{"entering", 160, 149, true},
		{"jumped over", 200, 100, true},
		{"still ahead", 200, 150, false},
		{"already behind", 120, 90, false},
		{"on near edge", 120, 120, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SweptThrough(tt.from, tt.to, 120, 150); got != tt.want {
				t.Fatalf("SweptThrough(%g, %g) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
