// Package pinbus samples a small parallel bus of digital inputs into a byte.
package pinbus

import "errors"

var ErrTooManyPins = errors.New("pinbus: more than 8 pins")

// Pin is a digital input. It is implemented by machine.Pin.
type Pin interface {
	Get() bool
}

// BitOrder selects which pin maps to the least significant bit.
type BitOrder uint8

const (
	// LSBFirst maps pins[0] to bit 0.
	LSBFirst BitOrder = iota
	// MSBFirst maps pins[0] to the most significant bit of the bus width.
	MSBFirst
)

// Bus is a parallel input bus of up to 8 pins.
type Bus struct {
	pins  []Pin
	order BitOrder
}

// New creates a bus over pins in the given order.
func New(order BitOrder, pins ...Pin) (*Bus, error) {
	if len(pins) > 8 {
		return nil, ErrTooManyPins
	}
	return &Bus{pins: pins, order: order}, nil
}

// Width returns the number of pins on the bus.
func (b *Bus) Width() int {
	return len(b.pins)
}

// Sample reads all pins and packs them into a byte.
func (b *Bus) Sample() uint8 {
	var value uint8
	n := len(b.pins)
	for i, pin := range b.pins {
		if !pin.Get() {
			continue
		}
		if b.order == MSBFirst {
			value |= 1 << (n - 1 - i)
		} else {
			value |= 1 << i
		}
	}
	return value
}
