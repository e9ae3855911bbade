//go:build tinygo

package main

import (
	"machine"

	tinygoerrors "github.com/ralvarezdev/tinygo-errors"
	tinygopwm "github.com/ralvarezdev/tinygo-pwm"
	"tinygo.org/x/drivers/servo"

	"github.com/BryanSouza91/RxCar/control"
	"github.com/BryanSouza91/RxCar/led"
	"github.com/BryanSouza91/RxCar/nrf24"
	"github.com/BryanSouza91/RxCar/pinbus"
)

// hBridge drives the motor through a direction pin and a PWM speed pin.
type hBridge struct {
	direction machine.Pin
	pwm       tinygopwm.PWM
	channel   uint8
	period    uint32
}

func newHBridge(pwm tinygopwm.PWM, speedPin, directionPin machine.Pin, frequency uint32) (*hBridge, tinygoerrors.ErrorCode) {
	directionPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	directionPin.Low()

	period := uint32(1e9 / frequency)
	if err := pwm.Configure(machine.PWMConfig{Period: uint64(period)}); err != nil {
		return nil, ErrorCodeRxFailedToConfigurePWM
	}
	channel, err := pwm.Channel(speedPin)
	if err != nil {
		return nil, ErrorCodeRxFailedToGetPWMChannel
	}

	h := &hBridge{
		direction: directionPin,
		pwm:       pwm,
		channel:   channel,
		period:    period,
	}
	h.SetSpeed(0)
	return h, tinygoerrors.ErrorCodeNil
}

// SetDirection drives the direction pin high for forward, low for reverse.
func (h *hBridge) SetDirection(dir control.Direction) {
	h.direction.Set(dir == control.DirectionForward)
}

func (h *hBridge) SetSpeed(speed uint8) {
	pulse := uint32(uint64(h.period) * uint64(speed) / control.MAX_SPEED)
	tinygopwm.SetDuty(h.pwm, h.channel, pulse, h.period)
}

// hardware holds the configured peripherals of the receiver.
type hardware struct {
	ports  control.Ports
	status *led.Indicator
}

func setup() (*hardware, tinygoerrors.ErrorCode) {
	// --- Radio ---
	spi := machine.SPI0
	if err := spi.Configure(machine.SPIConfig{
		Frequency: RADIO_SPI_FREQUENCY,
		SCK:       RADIO_SCK_PIN,
		SDO:       RADIO_SDO_PIN,
		SDI:       RADIO_SDI_PIN,
		Mode:      0,
	}); err != nil {
		println("could not configure SPI:", err.Error())
		return nil, ErrorCodeRxFailedToConfigureSPI
	}
	ce, csn := RADIO_CE_PIN, RADIO_CSN_PIN
	ce.Configure(machine.PinConfig{Mode: machine.PinOutput})
	csn.Configure(machine.PinConfig{Mode: machine.PinOutput})

	radio := nrf24.New(spi, ce, csn)
	if err := radio.Configure(nrf24.DefaultConfig); err != nil {
		println("nRF24L01 not responding:", err.Error())
		return nil, ErrorCodeRxRadioNotResponding
	}
	if err := radio.OpenWritingPipe(addresses[0]); err != nil {
		println("could not open writing pipe:", err.Error())
		return nil, ErrorCodeRxFailedToOpenPipe
	}
	if err := radio.OpenReadingPipe(1, addresses[1]); err != nil {
		println("could not open reading pipe:", err.Error())
		return nil, ErrorCodeRxFailedToOpenPipe
	}
	println("Radio configured on channel", nrf24.DefaultConfig.Channel)

	// --- Steering ---
	steering, err := servo.New(servoPWM, SERVO_PIN)
	if err != nil {
		println("could not attach servo:", err.Error())
		return nil, ErrorCodeRxFailedToAttachServo
	}
	if err := steering.SetAngle((control.MIN_STEERING_ANGLE + control.MAX_STEERING_ANGLE) / 2); err != nil {
		println("could not center servo:", err.Error())
		return nil, ErrorCodeRxFailedToAttachServo
	}

	// --- Motor ---
	motor, code := newHBridge(speedPWM, SPEED_PIN, DIRECTION_PIN, SPEED_PWM_FREQUENCY)
	if code != tinygoerrors.ErrorCodeNil {
		return nil, code
	}
	println("PWM configured for servo and H-bridge.")

	// --- Telemetry Bus ---
	pins := make([]pinbus.Pin, len(BUS_PINS))
	for i, p := range BUS_PINS {
		p.Configure(machine.PinConfig{Mode: machine.PinInput})
		pins[i] = p
	}
	bus, err := pinbus.New(pinbus.LSBFirst, pins...)
	if err != nil {
		println("could not set up telemetry bus:", err.Error())
		return nil, ErrorCodeRxInvalidBus
	}

	// --- Status LED ---
	STATUS_LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	return &hardware{
		ports: control.Ports{
			Radio:    radio,
			Motor:    motor,
			Steering: &steering,
			Bus:      bus,
		},
		status: led.New(STATUS_LED),
	}, tinygoerrors.ErrorCodeNil
}
