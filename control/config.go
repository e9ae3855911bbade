package control

import "time"

// RxCar control configuration
// All tunable parameters of the control cycle. There is no runtime configuration.

// --- Timing ---
const (
	InRangeTimeout       = 1000 * time.Millisecond // Link considered lost after this long without an in-range packet
	DirectionChangeDelay = 500 * time.Millisecond  // Minimum dwell before the H-bridge polarity may flip
	ServoDelay           = 15 * time.Millisecond   // Minimum interval between steering updates
)

// --- Input Ranges ---
const (
	MIN_RAW_VALUE = 0    // Minimum joystick ADC value sent by the transmitter
	MAX_RAW_VALUE = 1023 // Maximum joystick ADC value sent by the transmitter
)

// --- Output Ranges ---
const (
	MIN_SPEED = -255 // Full reverse
	MAX_SPEED = 255  // Full forward

	MIN_STEERING_ANGLE = 30  // Full left lock (degrees)
	MAX_STEERING_ANGLE = 150 // Full right lock (degrees)
)
