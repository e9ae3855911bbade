package nrf24

// Registers
const (
	CONFIG      = 0x00
	EN_AA       = 0x01
	EN_RXADDR   = 0x02
	SETUP_AW    = 0x03
	SETUP_RETR  = 0x04
	RF_CH       = 0x05
	RF_SETUP    = 0x06
	STATUS      = 0x07
	RX_ADDR_P0  = 0x0A
	RX_ADDR_P1  = 0x0B
	TX_ADDR     = 0x10
	RX_PW_P0    = 0x11
	FIFO_STATUS = 0x17
	DYNPD       = 0x1C
	FEATURE     = 0x1D
)

// Commands
const (
	R_REGISTER   = 0x00
	W_REGISTER   = 0x20
	R_RX_PAYLOAD = 0x61
	W_TX_PAYLOAD = 0xA0
	FLUSH_TX     = 0xE1
	FLUSH_RX     = 0xE2
	NOP          = 0xFF

	REGISTER_MASK = 0x1F
)

// CONFIG bits
const (
	MASK_RX_DR  = 1 << 6
	MASK_TX_DS  = 1 << 5
	MASK_MAX_RT = 1 << 4
	EN_CRC      = 1 << 3
	CRCO        = 1 << 2
	PWR_UP      = 1 << 1
	PRIM_RX     = 1 << 0
)

// STATUS bits
const (
	RX_DR  = 1 << 6
	TX_DS  = 1 << 5
	MAX_RT = 1 << 4
)

// FIFO_STATUS bits
const (
	TX_EMPTY = 1 << 4
	RX_EMPTY = 1 << 0
)

// RF_SETUP bits
const (
	RF_DR_LOW  = 1 << 5
	RF_DR_HIGH = 1 << 3
	RF_PWR     = 0x06 // 0dBm
)

const (
	MaxChannel     = 125
	MaxPayloadSize = 32
	AddressWidth   = 5
	NumPipes       = 6
)
