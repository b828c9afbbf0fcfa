package sx126x

import (
	"fmt"
	"strings"
)

// ChipMode is the transceiver's operating mode as reported in bits 6:4 of
// the status byte, and also the host's belief about the chip between
// status reads.
type ChipMode byte

const (
	ModeUnused   ChipMode = 0 // RFU in the status byte
	ModeSleep    ChipMode = 1 // host belief only; a sleeping chip cannot report
	ModeStbyRC   ChipMode = 2
	ModeStbyXosc ChipMode = 3
	ModeFs       ChipMode = 4
	ModeRx       ChipMode = 5
	ModeTx       ChipMode = 6
)

func (m ChipMode) String() string {
	switch m {
	case ModeSleep:
		return "SLEEP"
	case ModeStbyRC:
		return "STDBY_RC"
	case ModeStbyXosc:
		return "STDBY_XOSC"
	case ModeFs:
		return "FS"
	case ModeRx:
		return "RX"
	case ModeTx:
		return "TX"
	default:
		return fmt.Sprintf("ChipMode(%d)", byte(m))
	}
}

// CommandStatus is the command execution status in bits 3:1 of the status
// byte.
type CommandStatus byte

const (
	StatusReserved         CommandStatus = 0
	StatusDataAvailable    CommandStatus = 2
	StatusCommandTimeout   CommandStatus = 3
	StatusProcessingError  CommandStatus = 4
	StatusExecutionFailure CommandStatus = 5
	StatusTxDone           CommandStatus = 6
)

func (s CommandStatus) String() string {
	switch s {
	case StatusDataAvailable:
		return "data available"
	case StatusCommandTimeout:
		return "command timeout"
	case StatusProcessingError:
		return "processing error"
	case StatusExecutionFailure:
		return "execution failure"
	case StatusTxDone:
		return "TX done"
	default:
		return fmt.Sprintf("CommandStatus(%d)", byte(s))
	}
}

// Status is the decoded chip status byte.
type Status struct {
	Mode    ChipMode
	Command CommandStatus
}

func (s Status) String() string {
	return fmt.Sprintf("%v/%v", s.Mode, s.Command)
}

// DecodeStatus decodes a raw status byte. Bits 7 and 0 are reserved and
// ignored.
func DecodeStatus(b byte) Status {
	return Status{
		Mode:    ChipMode(b >> 4 & 0x07),
		Command: CommandStatus(b >> 1 & 0x07),
	}
}

// IrqFlags is the 16-bit IRQ register bitmask. Bits 10-15 are reserved
// and always decode to zero.
type IrqFlags uint16

const (
	IrqTxDone           IrqFlags = 1 << 0
	IrqRxDone           IrqFlags = 1 << 1
	IrqPreambleDetected IrqFlags = 1 << 2
	IrqSyncWordValid    IrqFlags = 1 << 3 // FSK only
	IrqHeaderValid      IrqFlags = 1 << 4 // LoRa only
	IrqHeaderErr        IrqFlags = 1 << 5 // LoRa only
	IrqCrcErr           IrqFlags = 1 << 6
	IrqCadDone          IrqFlags = 1 << 7 // LoRa only
	IrqCadDetected      IrqFlags = 1 << 8 // LoRa only
	IrqTimeout          IrqFlags = 1 << 9

	IrqAll IrqFlags = 0x03FF
)

var irqNames = []struct {
	flag IrqFlags
	name string
}{
	{IrqTxDone, "TxDone"},
	{IrqRxDone, "RxDone"},
	{IrqPreambleDetected, "PreambleDetected"},
	{IrqSyncWordValid, "SyncWordValid"},
	{IrqHeaderValid, "HeaderValid"},
	{IrqHeaderErr, "HeaderErr"},
	{IrqCrcErr, "CrcErr"},
	{IrqCadDone, "CadDone"},
	{IrqCadDetected, "CadDetected"},
	{IrqTimeout, "Timeout"},
}

func (f IrqFlags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, e := range irqNames {
		if f&e.flag != 0 {
			names = append(names, e.name)
		}
	}
	return strings.Join(names, "|")
}

// DecodeIrq decodes an IRQ register word. Reserved bits may be left in an
// implementation-defined state by the chip; they are masked off and never
// surfaced.
func DecodeIrq(w uint16) IrqFlags {
	return IrqFlags(w) & IrqAll
}

// DeviceErrors is the 16-bit error word returned by GetDeviceErrors.
type DeviceErrors uint16

const (
	ErrRc64kCalib DeviceErrors = 1 << 0 // RC64K calibration failed
	ErrRc13mCalib DeviceErrors = 1 << 1 // RC13M calibration failed
	ErrPllCalib   DeviceErrors = 1 << 2 // PLL calibration failed
	ErrAdcCalib   DeviceErrors = 1 << 3 // ADC calibration failed
	ErrImgCalib   DeviceErrors = 1 << 4 // image calibration failed
	ErrXoscStart  DeviceErrors = 1 << 5 // XOSC failed to start
	ErrPllLock    DeviceErrors = 1 << 6 // PLL failed to lock
	ErrPaRamp     DeviceErrors = 1 << 8 // PA ramping failed
)

var deviceErrorNames = []struct {
	flag DeviceErrors
	name string
}{
	{ErrRc64kCalib, "RC64K_CALIB_ERR"},
	{ErrRc13mCalib, "RC13M_CALIB_ERR"},
	{ErrPllCalib, "PLL_CALIB_ERR"},
	{ErrAdcCalib, "ADC_CALIB_ERR"},
	{ErrImgCalib, "IMG_CALIB_ERR"},
	{ErrXoscStart, "XOSC_START_ERR"},
	{ErrPllLock, "PLL_LOCK_ERR"},
	{ErrPaRamp, "PA_RAMP_ERR"},
}

func (e DeviceErrors) String() string {
	if e == 0 {
		return "none"
	}
	var names []string
	for _, d := range deviceErrorNames {
		if e&d.flag != 0 {
			names = append(names, d.name)
		}
	}
	return strings.Join(names, "|")
}

// RxBufferStatus reports the length of the last received packet and the
// offset of its first byte in the 256-byte payload buffer.
type RxBufferStatus struct {
	PayloadLength byte
	BufferStart   byte
}

// PacketStatus holds the raw packet status bytes. Their meaning depends
// on the configured packet type; the accessors interpret them for LoRa.
type PacketStatus struct {
	Raw [3]byte
}

// Rssi returns the average packet RSSI in dBm (LoRa).
func (p PacketStatus) Rssi() int { return -int(p.Raw[0]) / 2 }

// Snr returns the estimated packet SNR in dB (LoRa).
func (p PacketStatus) Snr() float64 { return float64(int8(p.Raw[1])) / 4 }

// SignalRssi returns the RSSI of the despread LoRa signal in dBm.
func (p PacketStatus) SignalRssi() int { return -int(p.Raw[2]) / 2 }

// Stats holds the chip-side packet counters returned by GetStats.
type Stats struct {
	PacketsReceived uint16
	CrcErrors       uint16
	HeaderErrors    uint16
}
