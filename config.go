package sx126x

import "fmt"

// RF, modulation, packet and DIO configuration commands.

// FXOSC is the crystal frequency in Hz. The RF frequency field is a
// 32-bit PLL word in steps of FXOSC/2^25.
const FXOSC = 32000000

// SetRfFrequency programs the raw 32-bit PLL frequency word.
func (r *Radio) SetRfFrequency(frf uint32) error {
	return r.set(OpSetRfFrequency, marshalUint32(frf)...)
}

// SetFrequency programs the RF frequency in Hertz, converting to the PLL
// word with rounding.
func (r *Radio) SetFrequency(hz uint32) error {
	frf := (uint64(hz)<<25 + FXOSC/2) / FXOSC
	return r.SetRfFrequency(uint32(frf))
}

// PacketType selects the frame format the modem operates on.
type PacketType byte

const (
	PacketTypeGfsk PacketType = 0
	PacketTypeLoRa PacketType = 1
)

func (t PacketType) String() string {
	switch t {
	case PacketTypeGfsk:
		return "GFSK"
	case PacketTypeLoRa:
		return "LoRa"
	default:
		return fmt.Sprintf("PacketType(%d)", byte(t))
	}
}

// SetPacketType switches the radio between GFSK and LoRa framing. It must
// be the first command of a radio configuration sequence, and the switch
// must be done in STDBY_RC.
func (r *Radio) SetPacketType(t PacketType) error {
	return r.set(OpSetPacketType, byte(t)&0x01)
}

// GetPacketType returns the current operating packet type.
func (r *Radio) GetPacketType() (PacketType, error) {
	_, payload, err := r.command(OpGetPacketType)
	if err != nil {
		return 0, err
	}
	return PacketType(payload[0]), nil
}

// RampTime is the PA ramp-up duration for SetTxParams.
type RampTime byte

const (
	Ramp10us   RampTime = 0x00
	Ramp20us   RampTime = 0x01
	Ramp40us   RampTime = 0x02
	Ramp80us   RampTime = 0x03
	Ramp200us  RampTime = 0x04
	Ramp800us  RampTime = 0x05
	Ramp1700us RampTime = 0x06
	Ramp3400us RampTime = 0x07
)

// SetTxParams sets the TX output power in dBm (-17..+22 depending on the
// PA variant) and the PA ramp time.
func (r *Radio) SetTxParams(power int8, ramp RampTime) error {
	return r.set(OpSetTxParams, byte(power), byte(ramp))
}

// LoRa spreading factor, bandwidth and coding rate codes for
// SetModulationParams.
const (
	LoRaBw7   byte = 0x00 // 7.81 kHz
	LoRaBw10  byte = 0x08
	LoRaBw15  byte = 0x01
	LoRaBw20  byte = 0x09
	LoRaBw31  byte = 0x02
	LoRaBw41  byte = 0x0A
	LoRaBw62  byte = 0x03
	LoRaBw125 byte = 0x04
	LoRaBw250 byte = 0x05
	LoRaBw500 byte = 0x06

	LoRaCr45 byte = 0x01
	LoRaCr46 byte = 0x02
	LoRaCr47 byte = 0x03
	LoRaCr48 byte = 0x04
)

// SetModulationParams sends the raw modulation parameter block. The chip
// takes eight parameter bytes; missing trailing bytes are zero-filled.
// Their meaning depends on the configured packet type.
func (r *Radio) SetModulationParams(params ...byte) error {
	if len(params) > 8 {
		return &OutOfRangeError{Op: OpSetModulationParams, Field: "params", Value: uint32(len(params)), Max: 8}
	}
	p := make([]byte, 8)
	copy(p, params)
	return r.set(OpSetModulationParams, p...)
}

// SetLoRaModulationParams configures LoRa modulation: spreading factor
// 5..12, a LoRaBw* bandwidth code, a LoRaCr* coding rate code, and the
// low data rate optimization flag (required for symbols over 16.38 ms).
func (r *Radio) SetLoRaModulationParams(sf, bw, cr byte, lowDataRateOptimize bool) error {
	return r.SetModulationParams(sf, bw, cr, boolByte(lowDataRateOptimize))
}

// SetPacketParams sends the raw packet parameter block. The chip takes
// nine parameter bytes; missing trailing bytes are zero-filled.
func (r *Radio) SetPacketParams(params ...byte) error {
	if len(params) > 9 {
		return &OutOfRangeError{Op: OpSetPacketParams, Field: "params", Value: uint32(len(params)), Max: 9}
	}
	p := make([]byte, 9)
	copy(p, params)
	return r.set(OpSetPacketParams, p...)
}

// SetLoRaPacketParams configures LoRa packet framing: preamble length in
// symbols, implicit (fixed-length) or explicit header, payload length,
// CRC, and IQ inversion.
func (r *Radio) SetLoRaPacketParams(preambleLen uint16, implicitHeader bool, payloadLen byte, crcOn, invertIQ bool) error {
	params := append(marshalUint16(preambleLen),
		boolByte(implicitHeader), payloadLen, boolByte(crcOn), boolByte(invertIQ))
	return r.SetPacketParams(params...)
}

// CAD exit modes for SetCadParams.
const (
	CadOnly byte = 0x00 // back to STDBY_RC after detection
	CadRx   byte = 0x01 // enter RX when activity is detected
)

// SetCadParams configures channel activity detection: the number of
// symbols sensed, detection thresholds, the exit mode, and a 24-bit
// timeout used when the exit mode is CadRx.
func (r *Radio) SetCadParams(symbolNum, detPeak, detMin, exitMode byte, timeout uint32) error {
	if err := checkUint24(OpSetCadParams, "timeout", timeout); err != nil {
		return err
	}
	params := append([]byte{symbolNum, detPeak, detMin, exitMode}, marshalUint24(timeout)...)
	return r.set(OpSetCadParams, params...)
}

// SetBufferBaseAddress sets the start offsets of the TX and RX payload
// areas inside the shared 256-byte circular buffer.
func (r *Radio) SetBufferBaseAddress(txBase, rxBase byte) error {
	return r.set(OpSetBufferBaseAddress, txBase, rxBase)
}

// SetLoRaSymbNumTimeout sets how many consecutive symbols the LoRa modem
// must see before the RX timeout timer is stopped.
func (r *Radio) SetLoRaSymbNumTimeout(n byte) error {
	return r.set(OpSetLoRaSymbNumTimeout, n)
}

// SetDioIrqParams routes IRQ sources: irqMask enables sources in the IRQ
// register, the DIO masks select which enabled sources drive each pin.
// Reserved mask bits are truncated.
func (r *Radio) SetDioIrqParams(irqMask, dio1Mask, dio2Mask, dio3Mask IrqFlags) error {
	params := append(marshalUint16(uint16(irqMask&IrqAll)), marshalUint16(uint16(dio1Mask&IrqAll))...)
	params = append(params, marshalUint16(uint16(dio2Mask&IrqAll))...)
	params = append(params, marshalUint16(uint16(dio3Mask&IrqAll))...)
	return r.set(OpSetDioIrqParams, params...)
}

// GetIrqStatus reads the IRQ register.
func (r *Radio) GetIrqStatus() (IrqFlags, error) {
	_, payload, err := r.command(OpGetIrqStatus)
	if err != nil {
		return 0, err
	}
	return DecodeIrq(unmarshalUint16(payload)), nil
}

// ClearIrqStatus clears the selected IRQ register bits. Each bit is
// independently clearable; pass IrqAll to clear everything.
func (r *Radio) ClearIrqStatus(mask IrqFlags) error {
	return r.set(OpClearIrqStatus, marshalUint16(uint16(mask&IrqAll))...)
}

// SetDio2AsRfSwitchCtrl hands the DIO2 pin to the chip as an RF switch
// control line (high during TX).
func (r *Radio) SetDio2AsRfSwitchCtrl(enable bool) error {
	return r.set(OpSetDio2AsRfSwitchCtrl, boolByte(enable))
}

// TCXO supply voltages for SetDio3AsTcxoCtrl.
type TcxoVoltage byte

const (
	Tcxo1V6 TcxoVoltage = 0x00
	Tcxo1V7 TcxoVoltage = 0x01
	Tcxo1V8 TcxoVoltage = 0x02
	Tcxo2V2 TcxoVoltage = 0x03
	Tcxo2V4 TcxoVoltage = 0x04
	Tcxo2V7 TcxoVoltage = 0x05
	Tcxo3V0 TcxoVoltage = 0x06
	Tcxo3V3 TcxoVoltage = 0x07
)

// SetDio3AsTcxoCtrl powers a TCXO from DIO3 at the given voltage, with a
// 24-bit startup delay in 15.625 µs steps.
func (r *Radio) SetDio3AsTcxoCtrl(voltage TcxoVoltage, delay uint32) error {
	if err := checkUint24(OpSetDio3AsTcxoCtrl, "delay", delay); err != nil {
		return err
	}
	params := append([]byte{byte(voltage) & 0x07}, marshalUint24(delay)...)
	return r.set(OpSetDio3AsTcxoCtrl, params...)
}
