//go:build tinygo

package main

// RxCar Configuration
// Hardware mappings and radio settings of the receiver board (Raspberry Pi Pico).
// Control timing lives in control/config.go.

import (
	"machine"

	"github.com/BryanSouza91/RxCar/nrf24"
)

const Version = "0.1.0"

// --- Radio Configuration ---
const (
	RADIO_SPI_FREQUENCY = 4 * machine.MHz
	RADIO_CE_PIN        = machine.GP20
	RADIO_CSN_PIN       = machine.GP17
	RADIO_SCK_PIN       = machine.GP18
	RADIO_SDO_PIN       = machine.GP19
	RADIO_SDI_PIN       = machine.GP16
)

// Pipe addresses shared with the transmitter: pipe 0 out, pipe 1 in
var addresses = [2]nrf24.Address{
	{'1', 'N', 'o', 'd', 'e'},
	{'2', 'N', 'o', 'd', 'e'},
}

// --- PWM Configuration ---
const (
	SPEED_PWM_FREQUENCY = 1000 // H-bridge PWM frequency (Hz)
	WATCHDOG_TIMEOUT_MS = 500
)

// --- Hardware Mappings ---
const (
	SERVO_PIN     = machine.GP6 // Steering servo
	SPEED_PIN     = machine.GP5 // H-bridge PWM (speed)
	DIRECTION_PIN = machine.GP4 // H-bridge direction
	STATUS_LED    = machine.LED
)

// Telemetry bus pins (LSB -> MSB)
var BUS_PINS = [...]machine.Pin{
	machine.GP8,
	machine.GP9,
	machine.GP10,
	machine.GP11,
	machine.GP12,
	machine.GP13,
	machine.GP14,
	machine.GP15,
}

// --- Hardware Interfaces ---
var (
	servoPWM = machine.PWM3 // Steering servo PWM (GP6 is slice 3 A)
	speedPWM = machine.PWM2 // H-bridge PWM (GP5 is slice 2 B)
	watchdog = machine.Watchdog
)
