package control

import (
	"encoding/binary"
	"errors"
)

// PacketSize is the number of bytes a Packet occupies on the radio link.
// Layout (little-endian, no padding):
//
//	[0]   flip switch
//	[1:3] speed
//	[3:5] steering
//	[5]   in range (0 or 1)
const PacketSize = 6

var ErrShortPacket = errors.New("control: short packet")

// Packet holds the data of the single package the transmitter sends.
type Packet struct {
	FlipSwitch uint8  // Position of the drive mode switch
	Speed      uint16 // Raw throttle joystick value
	Steering   uint16 // Raw steering joystick value
	InRange    bool   // Transmitter still considers the link live
}

// Mode is the drive mode selected by the flip switch.
type Mode uint8

const (
	ModeNeutral Mode = iota
	ModeDrive
	ModeBrake
)

// Mode returns the drive mode selected by the flip switch. Unknown switch
// positions select ModeNeutral.
func (p Packet) Mode() Mode {
	switch Mode(p.FlipSwitch) {
	case ModeDrive:
		return ModeDrive
	case ModeBrake:
		return ModeBrake
	default:
		return ModeNeutral
	}
}

// AppendBinary appends the wire form of p to b.
func (p Packet) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, p.FlipSwitch)
	b = binary.LittleEndian.AppendUint16(b, p.Speed)
	b = binary.LittleEndian.AppendUint16(b, p.Steering)
	if p.InRange {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	return b, nil
}

// MarshalBinary returns the PacketSize byte wire form of p.
func (p Packet) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, PacketSize))
}

// UnmarshalBinary overwrites p with the first PacketSize bytes of data.
// Any non-zero in-range byte reads as true.
func (p *Packet) UnmarshalBinary(data []byte) error {
	if len(data) < PacketSize {
		return ErrShortPacket
	}
	p.FlipSwitch = data[0]
	p.Speed = binary.LittleEndian.Uint16(data[1:3])
	p.Steering = binary.LittleEndian.Uint16(data[3:5])
	p.InRange = data[5] != 0
	return nil
}
