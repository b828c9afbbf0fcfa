package sx126x

import (
	"bytes"
	"errors"
	"testing"
)

// fakeChip simulates the chip side of the full-duplex link: every frame
// clocked out produces a same-length response with the status byte
// repeated in every reply slot, the way the real chip shifts status on
// each byte.
type fakeChip struct {
	status     byte // raw status byte presented on reply bytes
	packetType byte
	regs       map[uint16]byte
	buffer     [256]byte
	frames     [][]byte // every frame exchanged
	err        error    // forced exchange failure
	truncate   bool     // return a short response
	closed     bool
}

func newFakeChip() *fakeChip {
	return &fakeChip{
		status: 0x24, // STDBY_RC, data available
		regs:   map[uint16]byte{RegLoRaSyncWordMsb: 0x14, RegLoRaSyncWordLsb: 0x24},
	}
}

func (c *fakeChip) Exchange(tx []byte) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	frame := make([]byte, len(tx))
	copy(frame, tx)
	c.frames = append(c.frames, frame)

	rx := make([]byte, len(tx))
	for i := 1; i < len(rx); i++ {
		rx[i] = c.status
	}
	switch Opcode(tx[0]) {
	case OpSetPacketType:
		c.packetType = tx[1]
	case OpGetPacketType:
		rx[2] = c.packetType
	case OpWriteRegister:
		addr := unmarshalUint16(tx[1:3])
		for i, b := range tx[3:] {
			c.regs[addr+uint16(i)] = b
		}
	case OpReadRegister:
		addr := unmarshalUint16(tx[1:3])
		for i := 4; i < len(rx); i++ {
			rx[i] = c.regs[addr+uint16(i-4)]
		}
	case OpWriteBuffer:
		for i, b := range tx[2:] {
			c.buffer[(int(tx[1])+i)%256] = b
		}
	case OpReadBuffer:
		for i := 3; i < len(rx); i++ {
			rx[i] = c.buffer[(int(tx[1])+i-3)%256]
		}
	case OpGetIrqStatus:
		rx[2], rx[3] = 0xFC, 0x02 // RxDone plus junk in reserved bits
	case OpGetRxBufferStatus:
		rx[2], rx[3] = 16, 0x80
	case OpGetStats:
		copy(rx[2:], []byte{0x00, 0x07, 0x00, 0x02, 0x00, 0x01})
	case OpGetDeviceErrors:
		rx[2], rx[3] = 0x00, 0x20 // XOSC_START_ERR
	}
	if c.truncate {
		rx = rx[:len(rx)-1]
	}
	return rx, nil
}

func (c *fakeChip) Close() error {
	c.closed = true
	return nil
}

// lastFrame returns the most recent frame with the given opcode, or nil.
func (c *fakeChip) lastFrame(op Opcode) []byte {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if Opcode(c.frames[i][0]) == op {
			return c.frames[i]
		}
	}
	return nil
}

func TestPacketTypeRoundTrip(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	if err := r.SetStandby(StandbyRC); err != nil {
		t.Fatal(err)
	}
	if err := r.SetPacketType(PacketTypeLoRa); err != nil {
		t.Fatal(err)
	}
	pt, err := r.GetPacketType()
	if err != nil {
		t.Fatal(err)
	}
	if pt != PacketTypeLoRa {
		t.Errorf("GetPacketType == %v, want LoRa", pt)
	}
	if frame := chip.lastFrame(OpGetPacketType); !bytes.Equal(frame, []byte{0x11, 0x00, 0x00}) {
		t.Errorf("GetPacketType frame == % X", frame)
	}
}

func TestModePolicyReject(t *testing.T) {
	chip := newFakeChip()
	r := New(chip, WithModePolicy(ModeReject))

	if err := r.SetRx(RxTimeoutContinuous); err != nil {
		t.Fatal(err)
	}
	err := r.SetPacketType(PacketTypeGfsk)
	var mpe *ModePreconditionError
	if !errors.As(err, &mpe) {
		t.Fatalf("SetPacketType in RX == %v, want ModePreconditionError", err)
	}
	if mpe.Believed != ModeRx {
		t.Errorf("Believed == %v, want RX", mpe.Believed)
	}
	// The rejected command must never reach the transport.
	if frame := chip.lastFrame(OpSetPacketType); frame != nil {
		t.Errorf("rejected command was exchanged: % X", frame)
	}
	// The radio stays usable.
	if err := r.SetStandby(StandbyRC); err != nil {
		t.Fatal(err)
	}
	if err := r.SetPacketType(PacketTypeGfsk); err != nil {
		t.Fatal(err)
	}
}

func TestModePolicyObserve(t *testing.T) {
	chip := newFakeChip()
	r := New(chip) // Observe is the default

	if err := r.SetRx(0); err != nil {
		t.Fatal(err)
	}
	if err := r.SetPacketType(PacketTypeLoRa); err != nil {
		t.Fatalf("observe mode must not block: %v", err)
	}
	if frame := chip.lastFrame(OpSetPacketType); frame == nil {
		t.Fatal("command was not exchanged in observe mode")
	}
	v := r.ModeViolations()
	if len(v) != 1 || v[0].Op != OpSetPacketType || v[0].Believed != ModeRx {
		t.Errorf("violations == %+v, want one SetPacketType in RX", v)
	}
	if len(r.ModeViolations()) != 0 {
		t.Error("ModeViolations did not drain")
	}
}

func TestGetStatusReconciles(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	if err := r.SetTx(TxTimeoutDisabled); err != nil {
		t.Fatal(err)
	}
	if r.Mode() != ModeTx {
		t.Fatalf("belief %v after SetTx, want TX", r.Mode())
	}
	// The chip fell back to STDBY_RC when TX completed; the host only
	// learns this from GetStatus.
	st, err := r.GetStatus()
	if err != nil {
		t.Fatal(err)
	}
	if st.Mode != ModeStbyRC || st.Command != StatusDataAvailable {
		t.Errorf("status == %v", st)
	}
	if r.Mode() != ModeStbyRC {
		t.Errorf("belief %v after GetStatus, want STDBY_RC", r.Mode())
	}
}

func TestTransportFailure(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	cause := errors.New("bridge detached")
	chip.err = cause
	err := r.SetFs()
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err == %v, want TransportError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("TransportError does not unwrap to the cause")
	}
	// Failure is scoped to the one call.
	chip.err = nil
	if err := r.SetStandby(StandbyRC); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeInconsistency(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	chip.truncate = true
	err := r.SetStandby(StandbyRC)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("err == %v, want DecodeError", err)
	}
	if de.Got != 1 || de.Want != 2 {
		t.Errorf("lengths %d/%d, want 1/2", de.Got, de.Want)
	}
}

func TestTimeoutOutOfRange(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	err := r.SetTx(1 << 24)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("err == %v, want OutOfRangeError", err)
	}
	// Rejected before any exchange; never partially encoded.
	if len(chip.frames) != 0 {
		t.Errorf("%d frames exchanged, want 0", len(chip.frames))
	}
}

func TestRegisterRoundTrip(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	if err := r.WriteRegister(RegOcpConfig, 0x38); err != nil {
		t.Fatal(err)
	}
	b, err := r.ReadRegister(RegOcpConfig, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 1 || b[0] != 0x38 {
		t.Errorf("ReadRegister == % X, want 38", b)
	}
	if frame := chip.lastFrame(OpReadRegister); len(frame) != 5 {
		t.Errorf("ReadRegister frame length %d, want 5", len(frame))
	}
}

func TestLoRaSyncWordHelpers(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	w, err := r.LoRaSyncWord()
	if err != nil {
		t.Fatal(err)
	}
	if w != LoRaSyncWordPrivate {
		t.Errorf("sync word %04X, want %04X", w, LoRaSyncWordPrivate)
	}
	if err := r.SetLoRaSyncWord(LoRaSyncWordPublic); err != nil {
		t.Fatal(err)
	}
	w, err = r.LoRaSyncWord()
	if err != nil {
		t.Fatal(err)
	}
	if w != LoRaSyncWordPublic {
		t.Errorf("sync word %04X, want %04X", w, LoRaSyncWordPublic)
	}
}

func TestBufferWrapRoundTrip(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := r.WriteBuffer(300, payload...); err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadBuffer(300-256, len(payload))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("ReadBuffer == % X, want % X", got, payload)
	}
}

func TestIrqReadAndClear(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	irq, err := r.GetIrqStatus()
	if err != nil {
		t.Fatal(err)
	}
	// The fake leaves junk in the reserved bits; only RxDone survives.
	if irq != IrqRxDone {
		t.Errorf("GetIrqStatus == %v, want RxDone", irq)
	}
	if err := r.ClearIrqStatus(IrqAll); err != nil {
		t.Fatal(err)
	}
	if frame := chip.lastFrame(OpClearIrqStatus); !bytes.Equal(frame, []byte{0x02, 0x03, 0xFF}) {
		t.Errorf("ClearIrqStatus frame == % X", frame)
	}
}

func TestTelemetry(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)

	rb, err := r.GetRxBufferStatus()
	if err != nil {
		t.Fatal(err)
	}
	if rb.PayloadLength != 16 || rb.BufferStart != 0x80 {
		t.Errorf("GetRxBufferStatus == %+v", rb)
	}
	stats, err := r.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{PacketsReceived: 7, CrcErrors: 2, HeaderErrors: 1}
	if stats != want {
		t.Errorf("GetStats == %+v, want %+v", stats, want)
	}
	devErrs, err := r.GetDeviceErrors()
	if err != nil {
		t.Fatal(err)
	}
	if devErrs != ErrXoscStart {
		t.Errorf("GetDeviceErrors == %v, want XOSC_START_ERR", devErrs)
	}
}

func TestStatisticsAndTrace(t *testing.T) {
	chip := newFakeChip()
	var traced []Opcode
	r := New(chip, WithTrace(func(op Opcode, frame, response []byte, err error) {
		traced = append(traced, op)
	}))

	if err := r.SetStandby(StandbyRC); err != nil {
		t.Fatal(err)
	}
	if _, err := r.GetStatus(); err != nil {
		t.Fatal(err)
	}
	s := r.Statistics()
	if s.Packets.Sent != 2 {
		t.Errorf("Packets.Sent == %d, want 2", s.Packets.Sent)
	}
	if s.Bytes.Sent != 4 || s.Bytes.Received != 4 {
		t.Errorf("Bytes == %d/%d, want 4/4", s.Bytes.Sent, s.Bytes.Received)
	}
	if len(traced) != 2 || traced[0] != OpSetStandby || traced[1] != OpGetStatus {
		t.Errorf("traced == %v", traced)
	}
}

func TestClose(t *testing.T) {
	chip := newFakeChip()
	r := New(chip)
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if !chip.closed {
		t.Error("transport not closed")
	}
}
