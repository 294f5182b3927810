package kali

import "github.com/pkg/errors"

// Scheme selects how compressions and the final stage treat carries.
type Scheme int

const (
	// SchemeSumOnly keeps the 5-NOR sum of every triple and a single NOR
	// per two-bit weight. Carries are discarded.
	SchemeSumOnly Scheme = iota
	// SchemeCarrySave uses 9-NOR full adders whose carries move to the next
	// weight, followed by a ripple-carry final stage.
	SchemeCarrySave
)

func (s Scheme) String() string {
	switch s {
	case SchemeSumOnly:
		return "sum-only"
	case SchemeCarrySave:
		return "carry-save"
	default:
		return "unknown"
	}
}

// ParseScheme converts a scheme name as printed by String.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "sum-only", "sumonly", "":
		return SchemeSumOnly, nil
	case "carry-save", "carrysave":
		return SchemeCarrySave, nil
	default:
		return SchemeSumOnly, errors.Errorf("unknown scheme %q", name)
	}
}
