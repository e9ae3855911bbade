// Package control implements the receiver control cycle of the car: it takes
// the latest radio packet, applies the link-loss failsafe, drives the H-bridge
// through a debounced direction gate, rate-limits the steering servo and sends
// one telemetry byte back to the transmitter.
package control

import (
	"errors"
	"fmt"
	"time"
)

type (
	// Radio is the transceiver the packets arrive on and telemetry leaves by.
	Radio interface {
		StartListening() error
		StopListening() error
		Available() bool
		Read(p []byte) (int, error)
		Write(p []byte) error
	}

	// Motor is the H-bridge: a direction output and a speed (duty) output.
	Motor interface {
		SetDirection(dir Direction)
		SetSpeed(speed uint8)
	}

	// Steering is the steering servo. It is satisfied by servo.Servo from
	// tinygo.org/x/drivers.
	Steering interface {
		SetAngle(angle int) error
	}

	// Bus samples the parallel digital input bus into a byte.
	Bus interface {
		Sample() uint8
	}

	// Ports groups the hardware the controller drives.
	Ports struct {
		Radio    Radio
		Motor    Motor
		Steering Steering
		Bus      Bus
	}

	// Report describes what a single cycle observed and commanded.
	Report struct {
		Received   bool      // A new packet was read this cycle
		Failsafe   bool      // The link is considered lost, speed forced to 0
		Mode       Mode      // Drive mode of the current packet
		Speed      int16     // Mapped signed speed after the failsafe
		MotorSpeed uint8     // Value on the speed output after this cycle
		Direction  Direction // Value on the direction output after this cycle
		Gate       GateState // Direction gate outcome of this cycle
		Angle      int       // Last angle written to the steering servo
		Steered    bool      // The steering servo was updated this cycle
		Telemetry  uint8     // Byte sent back to the transmitter
	}

	// Controller holds the state persisting between cycles. It is owned by
	// the single control loop and must not be shared.
	Controller struct {
		ports  Ports
		packet Packet
		buf    [PacketSize]byte

		link  *LinkMonitor
		gate  *DirectionGate
		steer *RateLimiter

		motorSpeed uint8
		angle      int
	}
)

// New creates a controller driving the given hardware.
func New(ports Ports) *Controller {
	return &Controller{
		ports: ports,
		link:  NewLinkMonitor(InRangeTimeout),
		gate:  NewDirectionGate(DirectionChangeDelay),
		steer: NewRateLimiter(ServoDelay),
	}
}

// Packet returns the last received packet.
func (c *Controller) Packet() Packet {
	return c.packet
}

// Cycle runs one iteration of the control loop at time now.
//
// Radio errors do not stop the cycle: actuation and telemetry still run and
// the errors are returned joined once the cycle completes.
func (c *Controller) Cycle(now time.Time) (Report, error) {
	var (
		report Report
		errs   []error
	)

	// --- Packet Intake ---
	// A cycle without a packet must not keep a stale in-range flag alive
	c.packet.InRange = false
	if err := c.ports.Radio.StartListening(); err != nil {
		errs = append(errs, fmt.Errorf("start listening: %w", err))
	}
	if c.ports.Radio.Available() {
		received, err := c.receive()
		if err != nil {
			errs = append(errs, err)
		}
		report.Received = received
	}

	// --- Failsafe ---
	speed := mapSpeed(c.packet.Speed)
	if c.link.Update(c.packet.InRange, now) {
		speed = 0
		report.Failsafe = true
	}

	// --- Speed and Direction ---
	report.Mode = c.packet.Mode()
	report.Speed = speed
	report.Gate = c.drive(report.Mode, speed, now)
	report.MotorSpeed = c.motorSpeed
	report.Direction = c.gate.Current()

	// --- Steering ---
	if c.steer.Allow(now) {
		angle := mapSteering(c.packet.Steering)
		if err := c.ports.Steering.SetAngle(angle); err != nil {
			errs = append(errs, fmt.Errorf("steering: %w", err))
		} else {
			c.angle = angle
			report.Steered = true
		}
	}
	report.Angle = c.angle

	// --- Telemetry ---
	if err := c.ports.Radio.StopListening(); err != nil {
		errs = append(errs, fmt.Errorf("stop listening: %w", err))
	}
	report.Telemetry = c.ports.Bus.Sample()
	if err := c.ports.Radio.Write([]byte{report.Telemetry}); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}

	return report, errors.Join(errs...)
}

// receive reads one packet from the radio into the controller state.
func (c *Controller) receive() (bool, error) {
	n, err := c.ports.Radio.Read(c.buf[:])
	if err != nil {
		return false, fmt.Errorf("read packet: %w", err)
	}
	if n < PacketSize {
		return false, fmt.Errorf("read packet: %w", ErrShortPacket)
	}
	if err := c.packet.UnmarshalBinary(c.buf[:n]); err != nil {
		return false, fmt.Errorf("read packet: %w", err)
	}
	return true, nil
}

// drive applies the drive mode state machine for one cycle.
func (c *Controller) drive(mode Mode, speed int16, now time.Time) GateState {
	switch mode {
	case ModeDrive:
		switch {
		case speed < 0:
			return c.actuate(DirectionReverse, abs16(speed), now)
		case speed > 0:
			return c.actuate(DirectionForward, abs16(speed), now)
		default:
			c.gate.Cancel()
			c.setSpeed(0)
		}
	case ModeBrake:
		// Park on the fixed reverse polarity with the output idle
		return c.actuate(DirectionReverse, 0, now)
	default:
		c.gate.Cancel()
		c.setSpeed(0)
	}
	return GateIdle
}

// actuate requests dir from the direction gate and writes the speed output.
// While a reversal is pending the output is held at zero.
func (c *Controller) actuate(dir Direction, magnitude uint8, now time.Time) GateState {
	committed, state := c.gate.Request(dir, now)
	switch state {
	case GateCommitted:
		c.ports.Motor.SetDirection(committed)
		c.setSpeed(magnitude)
	case GatePending:
		c.setSpeed(0)
	default:
		c.setSpeed(magnitude)
	}
	return state
}

func (c *Controller) setSpeed(speed uint8) {
	c.ports.Motor.SetSpeed(speed)
	c.motorSpeed = speed
}
