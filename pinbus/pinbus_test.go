package pinbus

import (
	"errors"
	"testing"
)

type mockPin bool

func (p mockPin) Get() bool { return bool(p) }

func pins(bits ...bool) []Pin {
	out := make([]Pin, len(bits))
	for i, b := range bits {
		out[i] = mockPin(b)
	}
	return out
}

func TestSample(t *testing.T) {
	tests := []struct {
		name  string
		order BitOrder
		pins  []Pin
		want  uint8
	}{
		{"all low", LSBFirst, pins(false, false, false, false, false, false, false, false), 0x00},
		{"all high", LSBFirst, pins(true, true, true, true, true, true, true, true), 0xFF},
		{"lsb first", LSBFirst, pins(true, false, false, false, false, false, false, false), 0x01},
		{"msb first", MSBFirst, pins(true, false, false, false, false, false, false, false), 0x80},
		{"pattern lsb", LSBFirst, pins(true, false, true, false, false, true, false, true), 0xA5},
		{"pattern msb", MSBFirst, pins(true, false, true, false, false, true, false, true), 0xA5},
		{"narrow msb", MSBFirst, pins(true, false, false), 0x04},
		{"empty", LSBFirst, nil, 0x00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus, err := New(tt.order, tt.pins...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := bus.Sample(); got != tt.want {
				t.Errorf("Sample = %#08b, want %#08b", got, tt.want)
			}
		})
	}
}

func TestNewTooManyPins(t *testing.T) {
	_, err := New(LSBFirst, pins(make([]bool, 9)...)...)
	if !errors.Is(err, ErrTooManyPins) {
		t.Fatalf("err = %v, want ErrTooManyPins", err)
	}
}
