package sx126x

// Marshaling of multi-byte command fields in big-endian order.
// Fields are fixed-width on the wire regardless of value magnitude;
// width checks happen in the frame builders, which know the opcode.

func marshalUint16(n uint16) []byte {
	return []byte{byte(n >> 8), byte(n & 0xFF)}
}

func marshalUint24(n uint32) []byte {
	return []byte{byte(n >> 16), byte(n >> 8), byte(n & 0xFF)}
}

func marshalUint32(n uint32) []byte {
	return append(marshalUint16(uint16(n>>16)), marshalUint16(uint16(n&0xFFFF))...)
}

func unmarshalUint16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func unmarshalUint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func unmarshalUint32(b []byte) uint32 {
	return uint32(unmarshalUint16(b[0:2]))<<16 | uint32(unmarshalUint16(b[2:4]))
}
