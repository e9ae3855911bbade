package sim

import "github.com/BryanSouza91/RxCar/control"

// rxFIFODepth is the receive FIFO depth of the nRF24L01+.
const rxFIFODepth = 3

// Radio is a virtual transceiver. Delivered packets wait in a FIFO of the
// same depth as the real chip; packets arriving on a full FIFO are dropped.
type Radio struct {
	inbox     [][]byte
	listening bool
	Sent      []byte
	Dropped   int
}

// Deliver puts a packet on the air towards the receiver.
func (r *Radio) Deliver(p control.Packet) {
	if len(r.inbox) >= rxFIFODepth {
		r.Dropped++
		return
	}
	b, _ := p.MarshalBinary()
	r.inbox = append(r.inbox, b)
}

func (r *Radio) StartListening() error {
	r.listening = true
	return nil
}

func (r *Radio) StopListening() error {
	r.listening = false
	return nil
}

func (r *Radio) Available() bool {
	return r.listening && len(r.inbox) > 0
}

func (r *Radio) Read(p []byte) (int, error) {
	n := copy(p, r.inbox[0])
	r.inbox = r.inbox[1:]
	return n, nil
}

func (r *Radio) Write(p []byte) error {
	r.Sent = append(r.Sent, p...)
	return nil
}

// Motor records the H-bridge outputs.
type Motor struct {
	Direction control.Direction
	Speed     uint8
	Reversals int
}

func (m *Motor) SetDirection(dir control.Direction) {
	if m.Direction != control.DirectionNil && dir != m.Direction {
		m.Reversals++
	}
	m.Direction = dir
}

func (m *Motor) SetSpeed(speed uint8) {
	m.Speed = speed
}

// Servo records the steering servo position.
type Servo struct {
	Angle  int
	Writes int
}

func (s *Servo) SetAngle(angle int) error {
	s.Angle = angle
	s.Writes++
	return nil
}

// Bus presents a fixed value on the telemetry bus.
type Bus struct {
	Value uint8
}

func (b *Bus) Sample() uint8 {
	return b.Value
}
