package kali

import (
	"github.com/pkg/errors"

	"github.com/sarchlab/kalisim/crossbar"
)

// ToBits expands v into width bits, most significant first.
func ToBits(v uint64, width int) ([]uint8, error) {
	if width < 1 || width > MaxWidth {
		return nil, errors.Wrapf(ErrInvalidWidth, "width %d", width)
	}
	if v>>uint(width) != 0 {
		return nil, errors.Wrapf(ErrOperandTooWide, "%d in %d bits", v, width)
	}

	bits := make([]uint8, width)
	for k := range bits {
		bits[k] = uint8(v>>uint(width-1-k)) & 1
	}
	return bits, nil
}

// MapInputs writes A along row l.ARow and B down column l.BCol. Both
// operands are checked before any cell is written.
func MapInputs(xb *crossbar.Crossbar, l Layout, a, b uint64) (aBits, bBits []uint8, err error) {
	aBits, err = ToBits(a, l.Width)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "operand A")
	}
	bBits, err = ToBits(b, l.Width)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "operand B")
	}

	for k, bit := range aBits {
		if err := xb.Write(l.ARow, l.AColStart+k, bit); err != nil {
			return nil, nil, err
		}
	}
	for k, bit := range bBits {
		if err := xb.Write(l.BRowStart+k, l.BCol, bit); err != nil {
			return nil, nil, err
		}
	}

	return aBits, bBits, nil
}
