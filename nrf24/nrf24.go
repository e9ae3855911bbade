// Package nrf24 provides a minimal driver for the nRF24L01+ 2.4GHz transceiver
// with static payloads and auto-acknowledge, as used by the car's radio link.
//
// Datasheet: https://www.sparkfun.com/datasheets/Components/SMD/nRF24L01Pluss_Preliminary_Product_Specification_v1_0.pdf
package nrf24

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

var (
	ErrNotConnected       = errors.New("nrf24: device not responding")
	ErrInvalidChannel     = errors.New("nrf24: invalid channel")
	ErrInvalidPipe        = errors.New("nrf24: invalid pipe")
	ErrInvalidPayloadSize = errors.New("nrf24: invalid payload size")
	ErrPayloadTooLarge    = errors.New("nrf24: payload larger than payload size")
	ErrMaxRetries         = errors.New("nrf24: no acknowledge after max retries")
	ErrTimeout            = errors.New("nrf24: transmit timeout")
)

// Pin is an output pin. It is implemented by machine.Pin.
type Pin interface {
	High()
	Low()
}

// Address is a 5 byte pipe address, least significant byte first.
type Address [AddressWidth]byte

// DataRate is the on-air data rate.
type DataRate uint8

const (
	DataRate1Mbps DataRate = iota
	DataRate2Mbps
	DataRate250Kbps
)

// Config holds the radio settings applied by Configure.
type Config struct {
	Channel     uint8    // RF channel, 2400MHz + Channel
	PayloadSize uint8    // Static payload width, 1..32 (0 selects 32)
	DataRate    DataRate // On-air data rate
	RetryDelay  uint8    // Auto retransmit delay in 250us steps, 0..15
	Retries     uint8    // Auto retransmit count, 0..15
}

// DefaultConfig matches the settings of the transmitter.
var DefaultConfig = Config{
	Channel:     76,
	PayloadSize: MaxPayloadSize,
	DataRate:    DataRate1Mbps,
	RetryDelay:  5,
	Retries:     15,
}

const (
	powerUpDelay = 5 * time.Millisecond
	cePulse      = 15 * time.Microsecond
	pollInterval = 100 * time.Microsecond
	writeTimeout = 95 * time.Millisecond
)

// Device wraps an SPI connection to an nRF24L01+.
type Device struct {
	bus drivers.SPI
	ce  Pin
	csn Pin

	payloadSize uint8
	config      uint8
	txAddress   Address
	rxPipe0     Address
	hasRxPipe0  bool

	wbuf [MaxPayloadSize + 1]byte
	rbuf [MaxPayloadSize + 1]byte
}

// New returns a new nRF24L01+ driver. The SPI bus must already be configured
// (mode 0, up to 10MHz).
func New(bus drivers.SPI, ce, csn Pin) *Device {
	return &Device{
		bus:         bus,
		ce:          ce,
		csn:         csn,
		payloadSize: MaxPayloadSize,
	}
}

// Configure resets the radio into standby with the given settings.
func (d *Device) Configure(cfg Config) error {
	if cfg.Channel > MaxChannel {
		return ErrInvalidChannel
	}
	if cfg.PayloadSize == 0 {
		cfg.PayloadSize = MaxPayloadSize
	}
	if cfg.PayloadSize > MaxPayloadSize {
		return ErrInvalidPayloadSize
	}
	d.payloadSize = cfg.PayloadSize

	d.ce.Low()
	d.csn.High()
	time.Sleep(powerUpDelay)

	if err := d.writeRegister(SETUP_RETR, (cfg.RetryDelay&0x0F)<<4|cfg.Retries&0x0F); err != nil {
		return err
	}

	setup := uint8(RF_PWR)
	switch cfg.DataRate {
	case DataRate2Mbps:
		setup |= RF_DR_HIGH
	case DataRate250Kbps:
		setup |= RF_DR_LOW
	}
	if err := d.writeRegister(RF_SETUP, setup); err != nil {
		return err
	}

	// A missing chip reads back all zeros or all ones
	got, err := d.readRegister(RF_SETUP)
	if err != nil {
		return err
	}
	if got != setup {
		return ErrNotConnected
	}

	writes := []struct {
		reg   uint8
		value uint8
	}{
		{FEATURE, 0},
		{DYNPD, 0},
		{EN_AA, 0x3F},
		{EN_RXADDR, 0x03},
		{SETUP_AW, AddressWidth - 2},
		{RF_CH, cfg.Channel},
		{STATUS, RX_DR | TX_DS | MAX_RT},
	}
	for _, w := range writes {
		if err := d.writeRegister(w.reg, w.value); err != nil {
			return err
		}
	}
	for pipe := uint8(0); pipe < NumPipes; pipe++ {
		if err := d.writeRegister(RX_PW_P0+pipe, d.payloadSize); err != nil {
			return err
		}
	}
	if err := d.command(FLUSH_RX); err != nil {
		return err
	}
	if err := d.command(FLUSH_TX); err != nil {
		return err
	}

	// Power up in transmit (standby) mode with 16 bit CRC
	d.config = EN_CRC | CRCO | PWR_UP
	if err := d.writeRegister(CONFIG, d.config); err != nil {
		return err
	}
	time.Sleep(powerUpDelay)
	return nil
}

// OpenWritingPipe sets the address packets are sent to. Pipe 0 receives on
// the same address so acknowledgements get through.
func (d *Device) OpenWritingPipe(addr Address) error {
	d.txAddress = addr
	if err := d.writeRegister(RX_ADDR_P0, addr[:]...); err != nil {
		return err
	}
	return d.writeRegister(TX_ADDR, addr[:]...)
}

// OpenReadingPipe enables reception on pipe (0-5) for addr. Pipes 2-5 share
// the upper address bytes of pipe 1 and only use addr[0].
func (d *Device) OpenReadingPipe(pipe uint8, addr Address) error {
	if pipe >= NumPipes {
		return ErrInvalidPipe
	}
	var err error
	switch {
	case pipe == 0:
		d.rxPipe0 = addr
		d.hasRxPipe0 = true
		err = d.writeRegister(RX_ADDR_P0, addr[:]...)
	case pipe == 1:
		err = d.writeRegister(RX_ADDR_P1, addr[:]...)
	default:
		err = d.writeRegister(RX_ADDR_P0+pipe, addr[0])
	}
	if err != nil {
		return err
	}
	if err := d.writeRegister(RX_PW_P0+pipe, d.payloadSize); err != nil {
		return err
	}
	enabled, err := d.readRegister(EN_RXADDR)
	if err != nil {
		return err
	}
	return d.writeRegister(EN_RXADDR, enabled|1<<pipe)
}

// StartListening switches the radio to receive mode.
func (d *Device) StartListening() error {
	d.config |= PRIM_RX
	if err := d.writeRegister(CONFIG, d.config); err != nil {
		return err
	}
	if err := d.writeRegister(STATUS, RX_DR|TX_DS|MAX_RT); err != nil {
		return err
	}
	d.ce.High()
	if d.hasRxPipe0 {
		return d.writeRegister(RX_ADDR_P0, d.rxPipe0[:]...)
	}
	return nil
}

// StopListening switches the radio back to transmit standby.
func (d *Device) StopListening() error {
	d.ce.Low()
	d.config &^= PRIM_RX
	if err := d.writeRegister(CONFIG, d.config); err != nil {
		return err
	}
	// Pipe 0 must listen on the transmit address for auto-acknowledge
	if err := d.writeRegister(RX_ADDR_P0, d.txAddress[:]...); err != nil {
		return err
	}
	enabled, err := d.readRegister(EN_RXADDR)
	if err != nil {
		return err
	}
	return d.writeRegister(EN_RXADDR, enabled|1)
}

// Listening reports whether the radio is in receive mode.
func (d *Device) Listening() bool {
	return d.config&PRIM_RX != 0
}

// Available reports whether a received payload is waiting in the RX FIFO.
func (d *Device) Available() bool {
	fifo, err := d.readRegister(FIFO_STATUS)
	if err != nil {
		return false
	}
	return fifo&RX_EMPTY == 0
}

// Read pops one payload from the RX FIFO into p and returns the number of
// bytes copied. Bytes beyond len(p) are discarded.
func (d *Device) Read(p []byte) (int, error) {
	payload, err := d.transfer(R_RX_PAYLOAD, nil, int(d.payloadSize))
	if err != nil {
		return 0, err
	}
	n := copy(p, payload)
	if err := d.writeRegister(STATUS, RX_DR); err != nil {
		return n, err
	}
	return n, nil
}

// Write sends p as one payload and waits for the acknowledge. Payloads
// shorter than the payload size are zero padded.
func (d *Device) Write(p []byte) error {
	if len(p) > int(d.payloadSize) {
		return ErrPayloadTooLarge
	}
	var payload [MaxPayloadSize]byte
	copy(payload[:], p)
	if _, err := d.transfer(W_TX_PAYLOAD, payload[:d.payloadSize], 0); err != nil {
		return err
	}

	d.ce.High()
	time.Sleep(cePulse)
	d.ce.Low()

	var status uint8
	deadline := time.Now().Add(writeTimeout)
	for {
		var err error
		status, err = d.status()
		if err != nil {
			return err
		}
		if status&(TX_DS|MAX_RT) != 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(pollInterval)
	}

	if err := d.writeRegister(STATUS, RX_DR|TX_DS|MAX_RT); err != nil {
		return err
	}
	switch {
	case status&TX_DS != 0:
		return nil
	case status&MAX_RT != 0:
		_ = d.command(FLUSH_TX)
		return ErrMaxRetries
	default:
		_ = d.command(FLUSH_TX)
		return ErrTimeout
	}
}

// status returns the STATUS register.
func (d *Device) status() (uint8, error) {
	d.wbuf[0] = NOP
	if err := d.tx(1); err != nil {
		return 0, err
	}
	return d.rbuf[0], nil
}

func (d *Device) readRegister(reg uint8) (uint8, error) {
	value, err := d.transfer(R_REGISTER|reg&REGISTER_MASK, nil, 1)
	if err != nil {
		return 0, err
	}
	return value[0], nil
}

func (d *Device) writeRegister(reg uint8, values ...uint8) error {
	_, err := d.transfer(W_REGISTER|reg&REGISTER_MASK, values, 0)
	return err
}

func (d *Device) command(cmd uint8) error {
	_, err := d.transfer(cmd, nil, 0)
	return err
}

// transfer clocks out cmd followed by data, or by n dummy bytes when data is
// nil, and returns the bytes read after the command byte.
func (d *Device) transfer(cmd uint8, data []byte, n int) ([]byte, error) {
	if data != nil {
		n = len(data)
	}
	d.wbuf[0] = cmd
	for i := 0; i < n; i++ {
		if data != nil {
			d.wbuf[i+1] = data[i]
		} else {
			d.wbuf[i+1] = NOP
		}
	}
	if err := d.tx(n + 1); err != nil {
		return nil, err
	}
	return d.rbuf[1 : n+1], nil
}

func (d *Device) tx(n int) error {
	d.csn.Low()
	err := d.bus.Tx(d.wbuf[:n], d.rbuf[:n])
	d.csn.High()
	return err
}
