package sx126x

// Host-side operating mode model.
//
// The chip is the source of truth for its own mode; the host's belief
// exists to catch programmer errors, not to correct chip state. Automatic
// TX/RX fallback to STDBY_RC on completion or timeout happens inside the
// chip and is only discoverable through GetStatus, so the belief can go
// stale. Transitions are applied optimistically when a mode-changing
// command is issued, even if the transport later fails.

// ModePolicy selects how a violated mode precondition is handled.
type ModePolicy int

const (
	// ModeObserve records the violation and lets the exchange proceed.
	ModeObserve ModePolicy = iota
	// ModeReject returns a ModePreconditionError before any exchange.
	ModeReject
)

// ModeViolation records a command issued while the host believed the chip
// to be in a mode the command's documented precondition excludes.
type ModeViolation struct {
	Op       Opcode
	Believed ChipMode
}

// Commands with a documented precondition on the current mode. The check
// is advisory: the belief may be stale.
var modePreconditions = map[Opcode][]ChipMode{
	OpSetSleep:      {ModeStbyRC, ModeStbyXosc},
	OpSetPacketType: {ModeStbyRC},
	OpCalibrate:     {ModeStbyRC},
}

// Commands that reach a sleeping chip: toggling NSS wakes it, and these
// are the documented wake paths. Anything else issued while the belief is
// SLEEP is flagged as likely unreachable.
var wakeOps = map[Opcode]bool{
	OpGetStatus:  true,
	OpSetStandby: true,
}

const maxViolations = 32

type modeTracker struct {
	believed   ChipMode
	policy     ModePolicy
	violations []ModeViolation
}

// Power-up and reset leave the chip in STDBY_RC.
func newModeTracker(policy ModePolicy) *modeTracker {
	return &modeTracker{believed: ModeStbyRC, policy: policy}
}

// check validates op against the current belief and returns a non-nil
// error describing the violation, or nil if the precondition holds.
func (t *modeTracker) check(op Opcode) *ModePreconditionError {
	if t.believed == ModeSleep && !wakeOps[op] {
		return &ModePreconditionError{
			Op:       op,
			Believed: t.believed,
			Allowed:  []ChipMode{ModeStbyRC, ModeStbyXosc, ModeFs, ModeRx, ModeTx},
		}
	}
	allowed, ok := modePreconditions[op]
	if !ok {
		return nil
	}
	for _, m := range allowed {
		if m == t.believed {
			return nil
		}
	}
	return &ModePreconditionError{Op: op, Believed: t.believed, Allowed: allowed}
}

// record notes an observed violation, keeping only the most recent ones.
func (t *modeTracker) record(op Opcode) {
	if len(t.violations) >= maxViolations {
		copy(t.violations, t.violations[1:])
		t.violations = t.violations[:maxViolations-1]
	}
	t.violations = append(t.violations, ModeViolation{Op: op, Believed: t.believed})
}

// apply updates the belief for a mode-changing command frame.
func (t *modeTracker) apply(op Opcode, frame []byte) {
	switch op {
	case OpSetSleep:
		t.believed = ModeSleep
	case OpSetStandby:
		if len(frame) > 1 && frame[1]&0x01 != 0 {
			t.believed = ModeStbyXosc
		} else {
			t.believed = ModeStbyRC
		}
	case OpSetFs:
		t.believed = ModeFs
	case OpSetTx, OpSetTxContinuousWave, OpSetTxInfinitePreamble:
		t.believed = ModeTx
	case OpSetRx, OpSetRxDutyCycle, OpSetCad:
		t.believed = ModeRx
	}
}

// reconcile overwrites the belief with a chip-reported mode. GetStatus is
// the only authoritative resynchronization point.
func (t *modeTracker) reconcile(m ChipMode) {
	if m != ModeUnused {
		t.believed = m
	}
}
