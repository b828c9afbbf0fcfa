package sx126x

// Transport is the byte-exchange primitive the radio drives. One call
// performs a single synchronous full-duplex transfer: every byte of tx is
// shifted out and exactly one byte is shifted in during the same clock
// cycles. The returned slice has the same length as tx when the transfer
// succeeds. Implementations do no queuing and no retrying; integrity at
// the byte level is their responsibility.
type Transport interface {
	Exchange(tx []byte) ([]byte, error)
	Close() error
}
