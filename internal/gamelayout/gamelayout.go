// Package gamelayout resolves the handful of save-file offsets that vary by
// game code (team size, dex "seen" bitmap locations). Each game family
// registers its Layout from an init() function, exactly the way the teacher
// codebase registers a FileGenerator per file extension — generalized here
// from "extension -> generator" to "game code -> layout".
package gamelayout

import "fmt"

// Code identifies which of the five Gen III titles produced a save.
type Code int

const (
	RubySapphire Code = iota
	Emerald
	FireRedLeafGreen
)

func (c Code) String() string {
	switch c {
	case RubySapphire:
		return "RubySapphire"
	case Emerald:
		return "Emerald"
	case FireRedLeafGreen:
		return "FireRedLeafGreen"
	default:
		return "Unknown"
	}
}

// FromGameCodeField maps the raw 32-bit value at TrainerInfo+0xAC to a Code:
// 0 => Ruby/Sapphire, 1 => FireRed/LeafGreen, anything else => Emerald
// (where the field is repurposed as a security key).
func FromGameCodeField(raw uint32) Code {
	switch raw {
	case 0:
		return RubySapphire
	case 1:
		return FireRedLeafGreen
	default:
		return Emerald
	}
}

// Layout is the set of offsets that differ between game families.
type Layout interface {
	// TeamSizeOffset is the offset, within logical section 1, of the u32
	// party size.
	TeamSizeOffset() int
	// DexOwnedOffset is the offset, within logical section 0, of the
	// species-owned bitmap.
	DexOwnedOffset() int
	// DexSeenAOffset is the offset, within logical section 0, of the first
	// species-seen bitmap.
	DexSeenAOffset() int
	// DexSeenBOffset is the offset, within logical section 1, of the second
	// species-seen bitmap.
	DexSeenBOffset() int
	// DexSeenCOffset is the offset, within logical section 4, of the third
	// species-seen bitmap.
	DexSeenCOffset() int
}

var registry = make(map[Code]Layout)

// register is called by each game-family file's init().
func register(code Code, l Layout) {
	if _, exists := registry[code]; exists {
		panic(fmt.Sprintf("gamelayout: duplicate registration for %s", code))
	}
	registry[code] = l
}

// For returns the Layout registered for code.
func For(code Code) Layout {
	l, ok := registry[code]
	if !ok {
		panic(fmt.Sprintf("gamelayout: no layout registered for %s", code))
	}
	return l
}
