package sx126x

// Communication status commands.

// GetStatus reads the chip status byte. It can be issued at any time,
// wakes a sleeping chip, and is the only point where the host's mode
// belief is resynchronized with the chip. Callers should invoke it after
// TX/RX operations whose completion timing they do not otherwise observe.
func (r *Radio) GetStatus() (Status, error) {
	st, _, err := r.command(OpGetStatus)
	if err != nil {
		return Status{}, err
	}
	r.modes.reconcile(st.Mode)
	return st, nil
}

// GetRxBufferStatus returns the length of the last received packet and
// the buffer offset of its first byte.
func (r *Radio) GetRxBufferStatus() (RxBufferStatus, error) {
	_, payload, err := r.command(OpGetRxBufferStatus)
	if err != nil {
		return RxBufferStatus{}, err
	}
	return RxBufferStatus{PayloadLength: payload[0], BufferStart: payload[1]}, nil
}

// GetPacketStatus returns the signal quality bytes of the last received
// packet.
func (r *Radio) GetPacketStatus() (PacketStatus, error) {
	_, payload, err := r.command(OpGetPacketStatus)
	if err != nil {
		return PacketStatus{}, err
	}
	var p PacketStatus
	copy(p.Raw[:], payload)
	return p, nil
}

// GetRssiInst returns the instantaneous RSSI in dBm while in RX.
func (r *Radio) GetRssiInst() (int, error) {
	_, payload, err := r.command(OpGetRssiInst)
	if err != nil {
		return 0, err
	}
	return -int(payload[0]) / 2, nil
}

// GetStats returns the chip-side packet counters accumulated since the
// last ResetStats.
func (r *Radio) GetStats() (Stats, error) {
	_, payload, err := r.command(OpGetStats)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		PacketsReceived: unmarshalUint16(payload[0:2]),
		CrcErrors:       unmarshalUint16(payload[2:4]),
		HeaderErrors:    unmarshalUint16(payload[4:6]),
	}, nil
}

// ResetStats clears the chip-side packet counters.
func (r *Radio) ResetStats() error {
	return r.set(OpResetStats)
}

// GetDeviceErrors reads the chip's error latch (calibration, oscillator
// and PA faults).
func (r *Radio) GetDeviceErrors() (DeviceErrors, error) {
	_, payload, err := r.command(OpGetDeviceErrors)
	if err != nil {
		return 0, err
	}
	return DeviceErrors(unmarshalUint16(payload)), nil
}

// ClearDeviceErrors clears the chip's error latch.
func (r *Radio) ClearDeviceErrors() error {
	return r.set(OpClearDeviceErrors)
}
