package kali

import "github.com/pkg/errors"

// MaxWidth is the widest operand supported. The 2N-bit product must fit in
// a uint64.
const MaxWidth = 32

var (
	// ErrInvalidWidth is returned for a bit-width outside [1, MaxWidth].
	ErrInvalidWidth = errors.New("invalid operand width")

	// ErrOperandTooWide is returned when an operand does not fit in the
	// configured width. Operands are never truncated.
	ErrOperandTooWide = errors.New("operand too wide")

	// ErrCrossbarTooSmall is returned when an explicit crossbar size cannot
	// hold the layout of a multiplication.
	ErrCrossbarTooSmall = errors.New("crossbar too small")

	// ErrScratchExhausted is returned when the row allocator would hand out
	// a row reserved for inputs or partial products.
	ErrScratchExhausted = errors.New("scratch rows exhausted")

	// ErrStageOrder is returned when a stage runs out of sequence.
	ErrStageOrder = errors.New("stage out of order")
)
