package control

import "testing"

func TestMapSpeed(t *testing.T) {
	tests := []struct {
		raw  uint16
		want int16
	}{
		{0, -255},
		{1023, 255},
		{511, -1},
		{512, 0},
		{256, -128},
		{768, 127},
		{4095, 255}, // out of range input is clamped first
	}
	for _, tt := range tests {
		if got := mapSpeed(tt.raw); got != tt.want {
			t.Errorf("mapSpeed(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestMapSteering(t *testing.T) {
	tests := []struct {
		raw  uint16
		want int
	}{
		{0, 30},
		{1023, 150},
		{512, 90},
		{511, 89},
		{2000, 150},
	}
	for _, tt := range tests {
		if got := mapSteering(tt.raw); got != tt.want {
			t.Errorf("mapSteering(%d) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestMapSpeedIsMonotonic(t *testing.T) {
	prev := mapSpeed(0)
	for raw := uint16(1); raw <= MAX_RAW_VALUE; raw++ {
		got := mapSpeed(raw)
		if got < prev {
			t.Fatalf("mapSpeed(%d) = %d is below mapSpeed(%d) = %d", raw, got, raw-1, prev)
		}
		if got < MIN_SPEED || got > MAX_SPEED {
			t.Fatalf("mapSpeed(%d) = %d out of range", raw, got)
		}
		prev = got
	}
}

func TestConstrain(t *testing.T) {
	if got := Constrain(-5, 0, 10); got != 0 {
		t.Errorf("Constrain(-5) = %d, want 0", got)
	}
	if got := Constrain(15, 0, 10); got != 10 {
		t.Errorf("Constrain(15) = %d, want 10", got)
	}
	if got := Constrain(2.5, 0.0, 10.0); got != 2.5 {
		t.Errorf("Constrain(2.5) = %v, want 2.5", got)
	}
}

func TestAbs16(t *testing.T) {
	if got := abs16(-255); got != 255 {
		t.Errorf("abs16(-255) = %d, want 255", got)
	}
	if got := abs16(42); got != 42 {
		t.Errorf("abs16(42) = %d, want 42", got)
	}
}
