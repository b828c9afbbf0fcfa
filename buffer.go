package sx126x

import "fmt"

// Register and payload buffer access.
//
// Registers live in a linear 16-bit address space with auto-increment.
// The payload buffer is 256 bytes, shared between TX and RX, and wraps
// modulo 256 on both the offset parameter and auto-increment; wrap is
// defined chip behavior, never an error.

// Documented register addresses commonly touched by the host.
const (
	RegWhiteningMsb    uint16 = 0x06B8
	RegCrcSeedMsb      uint16 = 0x06BC
	RegCrcPolyMsb      uint16 = 0x06BE
	RegSyncWord0       uint16 = 0x06C0 // FSK sync word, 8 bytes
	RegLoRaSyncWordMsb uint16 = 0x0740
	RegLoRaSyncWordLsb uint16 = 0x0741
	RegRandomNumber0   uint16 = 0x0819
	RegRxGain          uint16 = 0x08AC
	RegTxClampConfig   uint16 = 0x08D8
	RegOcpConfig       uint16 = 0x08E7
	RegXta             uint16 = 0x0911
	RegXtb             uint16 = 0x0912
)

// LoRa sync word values for the LoRaSyncWord helpers.
const (
	LoRaSyncWordPrivate uint16 = 0x1424
	LoRaSyncWordPublic  uint16 = 0x3444
)

// WriteRegister writes data to consecutive registers starting at addr.
func (r *Radio) WriteRegister(addr uint16, data ...byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%v: no data", OpWriteRegister)
	}
	_, err := r.exchange(OpWriteRegister, buildWriteRegister(addr, data))
	return err
}

// ReadRegister reads length bytes from consecutive registers starting at
// addr.
func (r *Radio) ReadRegister(addr uint16, length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%v: invalid length %d", OpReadRegister, length)
	}
	rx, err := r.exchange(OpReadRegister, buildReadRegister(addr, length))
	if err != nil {
		return nil, err
	}
	_, payload := decodeResponse(OpReadRegister, rx)
	return payload, nil
}

// WriteBuffer writes data to the payload buffer starting at offset. The
// offset wraps modulo 256, as does the chip's auto-increment.
func (r *Radio) WriteBuffer(offset int, data ...byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%v: no data", OpWriteBuffer)
	}
	_, err := r.exchange(OpWriteBuffer, buildWriteBuffer(offset, data))
	return err
}

// ReadBuffer reads length bytes from the payload buffer starting at
// offset (mod 256).
func (r *Radio) ReadBuffer(offset int, length int) ([]byte, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%v: invalid length %d", OpReadBuffer, length)
	}
	rx, err := r.exchange(OpReadBuffer, buildReadBuffer(offset, length))
	if err != nil {
		return nil, err
	}
	_, payload := decodeResponse(OpReadBuffer, rx)
	return payload, nil
}

// SetLoRaSyncWord programs the LoRa sync word registers. Use
// LoRaSyncWordPublic for public networks (LoRaWAN), LoRaSyncWordPrivate
// otherwise.
func (r *Radio) SetLoRaSyncWord(word uint16) error {
	return r.WriteRegister(RegLoRaSyncWordMsb, marshalUint16(word)...)
}

// LoRaSyncWord reads back the LoRa sync word registers.
func (r *Radio) LoRaSyncWord() (uint16, error) {
	b, err := r.ReadRegister(RegLoRaSyncWordMsb, 2)
	if err != nil {
		return 0, err
	}
	return unmarshalUint16(b), nil
}
