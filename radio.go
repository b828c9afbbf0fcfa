// Package sx126x speaks the command protocol of the Semtech SX1261/2
// sub-GHz transceivers over a full-duplex SPI transport. It encodes each
// chip command to its exact byte frame, decodes the status and payload
// bytes the chip shifts back during the same transaction, and tracks the
// chip's believed operating mode to flag commands issued against their
// documented preconditions.
package sx126x

import (
	"log"

	"github.com/ecc1/radio"
)

const verbose = false

func init() {
	if verbose {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.LUTC)
	}
}

// TraceFunc observes one completed call: the frame sent, the bytes
// received (nil on transport failure) and the outcome. Tracing is an
// interceptor around dispatch, not part of the codec.
type TraceFunc func(op Opcode, frame, response []byte, err error)

// Radio drives one SX126x chip. All methods perform at most one transport
// exchange and never retry. Methods are not safe for concurrent use; a
// Radio assumes a single logical owner per physical chip, matching the
// single chip-select line it drives.
type Radio struct {
	transport Transport
	modes     *modeTracker
	stats     radio.Statistics
	trace     TraceFunc
}

// Option configures a Radio.
type Option func(*Radio)

// WithModePolicy selects how mode precondition violations are handled.
// The default is ModeObserve.
func WithModePolicy(p ModePolicy) Option {
	return func(r *Radio) { r.modes.policy = p }
}

// WithTrace installs a trace hook invoked after every exchange attempt.
func WithTrace(f TraceFunc) Option {
	return func(r *Radio) { r.trace = f }
}

// New returns a Radio over the given transport. The mode belief starts at
// STDBY_RC, the chip's state after power-up or reset.
func New(t Transport, opts ...Option) *Radio {
	r := &Radio{transport: t, modes: newModeTracker(ModeObserve)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open opens a Radio over the default spidev transport.
func Open(cfg SpiConfig, opts ...Option) (*Radio, error) {
	dev, err := OpenSpi(cfg)
	if err != nil {
		return nil, err
	}
	return New(dev, opts...), nil
}

// Close closes the underlying transport.
func (r *Radio) Close() error {
	return r.transport.Close()
}

// Mode returns the host's current belief about the chip's operating mode.
// It may be stale until the next GetStatus.
func (r *Radio) Mode() ChipMode {
	return r.modes.believed
}

// ModeViolations returns the precondition violations recorded under the
// Observe policy since the last call, and clears them.
func (r *Radio) ModeViolations() []ModeViolation {
	v := r.modes.violations
	r.modes.violations = nil
	return v
}

// Statistics returns the byte and frame counts for completed exchanges.
func (r *Radio) Statistics() radio.Statistics {
	return r.stats
}

// exchange checks the mode precondition, applies the optimistic mode
// transition, performs the single full-duplex transfer and validates the
// response length. Each failure is scoped to this one call; the Radio
// remains usable afterward.
func (r *Radio) exchange(op Opcode, frame []byte) ([]byte, error) {
	if v := r.modes.check(op); v != nil {
		if r.modes.policy == ModeReject {
			if r.trace != nil {
				r.trace(op, frame, nil, v)
			}
			return nil, v
		}
		r.modes.record(op)
		if verbose {
			log.Printf("mode precondition: %v", v)
		}
	}
	r.modes.apply(op, frame)
	rx, err := r.transport.Exchange(frame)
	if err != nil {
		err = &TransportError{Op: op, Err: err}
	} else if len(rx) != len(frame) {
		err = &DecodeError{Op: op, Got: len(rx), Want: len(frame)}
	} else {
		r.stats.Packets.Sent++
		r.stats.Bytes.Sent += len(frame)
		r.stats.Bytes.Received += len(rx)
	}
	if verbose {
		log.Printf("%v: > % X < % X", op, frame, rx)
	}
	if r.trace != nil {
		r.trace(op, frame, rx, err)
	}
	if err != nil {
		return nil, err
	}
	return rx, nil
}

// command builds, exchanges and decodes a fixed-layout command frame.
func (r *Radio) command(op Opcode, params ...byte) (Status, []byte, error) {
	rx, err := r.exchange(op, buildCommand(op, params...))
	if err != nil {
		return Status{}, nil, err
	}
	st, payload := decodeResponse(op, rx)
	return st, payload, nil
}

// set issues a command whose only interesting result is the error.
func (r *Radio) set(op Opcode, params ...byte) error {
	_, _, err := r.command(op, params...)
	return err
}

// SleepConfig selects the sleep start mode and RTC wake behavior.
type SleepConfig byte

const (
	SleepColdStart SleepConfig = 0x00 // configuration lost
	SleepWarmStart SleepConfig = 0x04 // configuration retained
	SleepRtcWake   SleepConfig = 0x01 // wake on RTC timeout
)

// SetSleep puts the chip in its lowest-consumption mode. Only toggling
// the chip select (GetStatus or SetStandby here) wakes it again. Requires
// the chip in one of the standby modes.
func (r *Radio) SetSleep(cfg SleepConfig) error {
	return r.set(OpSetSleep, byte(cfg)&0x07)
}

// StandbyConfig selects which standby clock the chip runs on.
type StandbyConfig byte

const (
	StandbyRC   StandbyConfig = 0 // 13 MHz RC oscillator
	StandbyXosc StandbyConfig = 1 // 32 MHz crystal
)

// SetStandby places the chip in a configuration mode. High-level
// configuration commands such as SetPacketType expect STDBY_RC.
func (r *Radio) SetStandby(cfg StandbyConfig) error {
	return r.set(OpSetStandby, byte(cfg)&0x01)
}

// SetFs sets the chip in frequency synthesis mode, mostly a test mode
// with the PLL locked at the programmed frequency.
func (r *Radio) SetFs() error {
	return r.set(OpSetFs)
}

// TxTimeoutDisabled keeps the chip in TX until the packet is sent.
const TxTimeoutDisabled = 0

// RxTimeoutContinuous keeps the chip in RX until a packet arrives or the
// mode is changed by the host.
const RxTimeoutContinuous = 0xFFFFFF

// SetTx starts transmission of the buffer contents. The 24-bit timeout is
// in 15.625 µs steps; 0 disables it. The chip falls back to STDBY_RC on
// completion or timeout, which the host only sees via GetStatus.
func (r *Radio) SetTx(timeout uint32) error {
	if err := checkUint24(OpSetTx, "timeout", timeout); err != nil {
		return err
	}
	return r.set(OpSetTx, marshalUint24(timeout)...)
}

// SetRx starts reception. The 24-bit timeout is in 15.625 µs steps;
// 0 means single-shot with no timeout, 0xFFFFFF means continuous.
func (r *Radio) SetRx(timeout uint32) error {
	if err := checkUint24(OpSetRx, "timeout", timeout); err != nil {
		return err
	}
	return r.set(OpSetRx, marshalUint24(timeout)...)
}

// SetRxDutyCycle loops the chip through RX windows of rxPeriod and sleep
// windows of sleepPeriod, both 24-bit counts of 15.625 µs steps.
func (r *Radio) SetRxDutyCycle(rxPeriod, sleepPeriod uint32) error {
	if err := checkUint24(OpSetRxDutyCycle, "rxPeriod", rxPeriod); err != nil {
		return err
	}
	if err := checkUint24(OpSetRxDutyCycle, "sleepPeriod", sleepPeriod); err != nil {
		return err
	}
	params := append(marshalUint24(rxPeriod), marshalUint24(sleepPeriod)...)
	return r.set(OpSetRxDutyCycle, params...)
}

// StopTimerOnPreamble selects whether the RX timeout timer stops on
// preamble detection instead of header/sync word detection.
func (r *Radio) StopTimerOnPreamble(enable bool) error {
	return r.set(OpStopTimerOnPreamble, boolByte(enable))
}

// SetCad starts a channel activity detection cycle (LoRa only). The chip
// returns to STDBY_RC when done and raises CadDone.
func (r *Radio) SetCad() error {
	return r.set(OpSetCad)
}

// SetTxContinuousWave emits a continuous carrier at the programmed
// frequency and power, a test mode.
func (r *Radio) SetTxContinuousWave() error {
	return r.set(OpSetTxContinuousWave)
}

// SetTxInfinitePreamble transmits an endless preamble, a test mode.
func (r *Radio) SetTxInfinitePreamble() error {
	return r.set(OpSetTxInfinitePreamble)
}

// RegulatorMode selects the chip's internal supply regulator.
type RegulatorMode byte

const (
	RegulatorLdo  RegulatorMode = 0
	RegulatorDcDc RegulatorMode = 1
)

// SetRegulatorMode selects LDO-only or DC-DC plus LDO regulation.
func (r *Radio) SetRegulatorMode(mode RegulatorMode) error {
	return r.set(OpSetRegulatorMode, byte(mode)&0x01)
}

// Calibration block selection bits for Calibrate.
const (
	CalibrateRc64k    byte = 1 << 0
	CalibrateRc13m    byte = 1 << 1
	CalibratePll      byte = 1 << 2
	CalibrateAdc      byte = 1 << 3
	CalibrateAdcBulkN byte = 1 << 4
	CalibrateAdcBulkP byte = 1 << 5
	CalibrateImageBit byte = 1 << 6
	CalibrateAll      byte = 0x7F
)

// Calibrate launches calibration of the selected blocks. Requires
// STDBY_RC; the chip returns there when calibration completes.
func (r *Radio) Calibrate(blocks byte) error {
	return r.set(OpCalibrate, blocks&0x7F)
}

// Image calibration band edges, in 4 MHz steps.
const (
	ImageCal430to440 uint16 = 0x6B6F
	ImageCal470to510 uint16 = 0x7581
	ImageCal779to787 uint16 = 0xC1C5
	ImageCal863to870 uint16 = 0xD7DB
	ImageCal902to928 uint16 = 0xE1E9
)

// CalibrateImage calibrates the image rejection for the band between the
// two frequency bytes (units of 4 MHz). The ImageCal* words pack common
// band edges as freq1<<8|freq2.
func (r *Radio) CalibrateImage(freq1, freq2 byte) error {
	return r.set(OpCalibrateImage, freq1, freq2)
}

// CalibrateImageBand calibrates image rejection using one of the packed
// ImageCal* band words.
func (r *Radio) CalibrateImageBand(band uint16) error {
	return r.CalibrateImage(byte(band>>8), byte(band))
}

// PA device selection for SetPaConfig.
const (
	PaDeviceSx1262 byte = 0
	PaDeviceSx1261 byte = 1
)

// SetPaConfig configures the power amplifier duty cycle, HP output size
// and PA variant.
func (r *Radio) SetPaConfig(dutyCycle, hpMax, deviceSel, paLut byte) error {
	return r.set(OpSetPaConfig, dutyCycle, hpMax, deviceSel, paLut)
}

// Fallback modes for SetRxTxFallbackMode.
type FallbackMode byte

const (
	FallbackFs       FallbackMode = 0x40
	FallbackStbyXosc FallbackMode = 0x30
	FallbackStbyRC   FallbackMode = 0x20
)

// SetRxTxFallbackMode selects the mode the chip enters after a TX or RX
// completes.
func (r *Radio) SetRxTxFallbackMode(mode FallbackMode) error {
	return r.set(OpSetRxTxFallbackMode, byte(mode))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
