package control

import (
	"bytes"
	"errors"
	"testing"
)

func TestPacketWireLayout(t *testing.T) {
	p := Packet{FlipSwitch: 1, Speed: 0x03FF, Steering: 0x0200, InRange: true}

	got, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	want := []byte{0x01, 0xFF, 0x03, 0x00, 0x02, 0x01}
	if !bytes.Equal(got, want) {
		t.Fatalf("MarshalBinary = % x, want % x", got, want)
	}

	var back Packet
	if err := back.UnmarshalBinary(got); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if back != p {
		t.Errorf("UnmarshalBinary = %+v, want %+v", back, p)
	}
}

func TestPacketUnmarshalShort(t *testing.T) {
	p := Packet{Speed: 7}
	err := p.UnmarshalBinary([]byte{1, 2, 3})
	if !errors.Is(err, ErrShortPacket) {
		t.Fatalf("UnmarshalBinary error = %v, want ErrShortPacket", err)
	}
	if p.Speed != 7 {
		t.Errorf("short packet modified the packet: %+v", p)
	}
}

func TestPacketUnmarshalIgnoresPadding(t *testing.T) {
	// Static radio payloads are padded, only the first PacketSize bytes count
	data := make([]byte, 32)
	copy(data, []byte{2, 0x10, 0x00, 0x20, 0x00, 0x7F})
	data[6] = 0xAA

	var p Packet
	if err := p.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	want := Packet{FlipSwitch: 2, Speed: 0x10, Steering: 0x20, InRange: true}
	if p != want {
		t.Errorf("UnmarshalBinary = %+v, want %+v", p, want)
	}
}

func TestPacketMode(t *testing.T) {
	tests := []struct {
		flip uint8
		want Mode
	}{
		{0, ModeNeutral},
		{1, ModeDrive},
		{2, ModeBrake},
		{3, ModeNeutral},
		{255, ModeNeutral},
	}
	for _, tt := range tests {
		if got := (Packet{FlipSwitch: tt.flip}).Mode(); got != tt.want {
			t.Errorf("Mode(%d) = %d, want %d", tt.flip, got, tt.want)
		}
	}
}
