package crossbar

import "fmt"

// BitRef addresses a single cell of a Crossbar. It is a coordinate, not a
// handle: the bit value is always read from the array at the time of use.
type BitRef struct {
	Row int
	Col int
}

// Ref is shorthand for BitRef{Row: row, Col: col}.
func Ref(row, col int) BitRef {
	return BitRef{Row: row, Col: col}
}

func (r BitRef) String() string {
	return fmt.Sprintf("(%d,%d)", r.Row, r.Col)
}
