package sx126x

import "fmt"

// OutOfRangeError reports a parameter value too wide for its fixed wire
// field. It is returned before any transport exchange takes place; the
// frame is never partially encoded.
type OutOfRangeError struct {
	Op    Opcode
	Field string
	Value uint32
	Max   uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%v: %s value %d exceeds maximum %d", e.Op, e.Field, e.Value, e.Max)
}

// TransportError reports a failed full-duplex exchange. The underlying
// transport error is surfaced unchanged; nothing is retried at this layer.
type TransportError struct {
	Op  Opcode
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ModePreconditionError reports that a command's documented operating-mode
// precondition appears violated, based on the host's possibly-stale belief.
// It is only returned under the Reject policy; under Observe the violation
// is recorded and the exchange proceeds.
type ModePreconditionError struct {
	Op       Opcode
	Believed ChipMode
	Allowed  []ChipMode
}

func (e *ModePreconditionError) Error() string {
	return fmt.Sprintf("%v: chip believed in %v, requires one of %v", e.Op, e.Believed, e.Allowed)
}

// DecodeError reports a response that does not match the frame the command
// produced. Since exchanges are full-duplex, any length mismatch indicates
// a transport or wiring fault and is always surfaced.
type DecodeError struct {
	Op   Opcode
	Got  int
	Want int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: response length %d, want %d", e.Op, e.Got, e.Want)
}
