package sx126x

// Frame construction and response mapping.
//
// Every exchange is full-duplex: the frame shifted out and the bytes
// shifted back have identical length. Read commands pad the tail with NOP
// (0x00) bytes so the chip's reply arrives within the same transaction.
// Bytes echoed before a command's status offset are garbage and never
// surfaced to callers.

const maxUint24 = 0xFFFFFF

// buildCommand returns the outgoing frame for a fixed-layout command.
// params must match the opcode's parameter count; trailing NOP bytes are
// zero-filled by allocation.
func buildCommand(op Opcode, params ...byte) []byte {
	frame := make([]byte, layouts[op].frameLen())
	frame[0] = byte(op)
	copy(frame[1:], params)
	return frame
}

// buildReadRegister returns the frame for ReadRegister: opcode, 2-byte
// big-endian address, then length+1 NOP bytes. The first returned data
// byte appears one NOP after the address, so status sits at index 3 and
// payload at index 4.
func buildReadRegister(addr uint16, length int) []byte {
	frame := make([]byte, 4+length)
	frame[0] = byte(OpReadRegister)
	copy(frame[1:3], marshalUint16(addr))
	return frame
}

func buildWriteRegister(addr uint16, data []byte) []byte {
	frame := make([]byte, 3+len(data))
	frame[0] = byte(OpWriteRegister)
	copy(frame[1:3], marshalUint16(addr))
	copy(frame[3:], data)
	return frame
}

// buildReadBuffer returns the frame for ReadBuffer: opcode, offset, then
// length+1 NOP bytes. Status sits at index 2, payload at index 3.
// The offset wraps modulo 256; wrap is defined chip behavior, not an error.
func buildReadBuffer(offset int, length int) []byte {
	frame := make([]byte, 3+length)
	frame[0] = byte(OpReadBuffer)
	frame[1] = byte(offset)
	return frame
}

func buildWriteBuffer(offset int, data []byte) []byte {
	frame := make([]byte, 2+len(data))
	frame[0] = byte(OpWriteBuffer)
	frame[1] = byte(offset)
	copy(frame[2:], data)
	return frame
}

// decodeResponse locates the valid bytes inside an echoed response frame:
// the decoded status byte and the payload slice, per the opcode's fixed
// response map. It is pure and never reads past the received length;
// decoding the same frame twice yields identical results.
func decodeResponse(op Opcode, frame []byte) (Status, []byte) {
	l := layouts[op]
	var st Status
	if l.statusOff > 0 && l.statusOff < len(frame) {
		st = DecodeStatus(frame[l.statusOff])
	}
	var payload []byte
	if l.payloadOff > 0 && l.payloadOff <= len(frame) {
		payload = frame[l.payloadOff:]
	}
	return st, payload
}

// checkUint24 validates a 24-bit field. Truncating a timeout or delay
// would silently corrupt chip programming, so overflow is rejected before
// any exchange.
func checkUint24(op Opcode, field string, v uint32) error {
	if v > maxUint24 {
		return &OutOfRangeError{Op: op, Field: field, Value: v, Max: maxUint24}
	}
	return nil
}
