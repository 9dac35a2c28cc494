// Package symbol defines the unified symbol-ID space shared by code points,
// lexer rules, and parser rules, plus the disjoint-range Set built on top of
// it.
//
// IDs for all three symbol kinds live in one 32-bit space so that a parse-
// table term can reference any of them without a kind tag: code points come
// first, then lexer-rule IDs, then parser-rule IDs. The code-point and
// lexer-rule sections carry sentinel IDs after their normal range; the
// parser-rule section has none.
package symbol

import "fmt"

// ID is a symbol identifier in the unified code-point/lexer-rule/parser-rule
// space. It is a distinct type from int so that an LPR index can't be passed
// where an ID is expected by accident.
type ID uint32

const (
	normalCPIDs  = 0x110000
	normalLPRIDs = 0x10000
	normalPPRIDs = 0x10000

	specialCPIDs  = 1
	specialLPRIDs = 2
	specialPPRIDs = 0

	totalCPIDs  = normalCPIDs + specialCPIDs
	totalLPRIDs = normalLPRIDs + specialLPRIDs
	totalPPRIDs = normalPPRIDs + specialPPRIDs
)

// Section boundaries, inclusive on both ends.
const (
	FirstCPID  ID = 0
	FirstLPRID ID = FirstCPID + totalCPIDs
	FirstPPRID ID = FirstLPRID + totalLPRIDs

	LastCPID  ID = FirstCPID + totalCPIDs - 1
	LastLPRID ID = FirstLPRID + totalLPRIDs - 1
	LastPPRID ID = FirstPPRID + totalPPRIDs - 1

	FirstNormalCPID  ID = FirstCPID
	LastNormalCPID   ID = FirstNormalCPID + normalCPIDs - 1
	FirstNormalLPRID ID = FirstLPRID
	LastNormalLPRID  ID = FirstNormalLPRID + normalLPRIDs - 1
	FirstNormalPPRID ID = FirstPPRID
	LastNormalPPRID  ID = FirstNormalPPRID + normalPPRIDs - 1

	// EndOfCPInput is the sentinel glyph ID signalling the source has been
	// fully consumed.
	EndOfCPInput ID = FirstNormalCPID + normalCPIDs

	// FailureLPR is the token ID produced by the lexer driver when no LPR
	// matches at the current offset.
	FailureLPR ID = FirstNormalLPRID + normalLPRIDs
	// EndOfLPRInput is the sentinel token ID signalling the token stream has
	// been fully consumed.
	EndOfLPRInput ID = FailureLPR + 1
)

// InRange reports whether x lies in the inclusive range [low, high]. low and
// high are swapped internally if given out of order.
func InRange(x, low, high ID) bool {
	if low > high {
		low, high = high, low
	}
	return x >= low && x <= high
}

// CPID returns the code-point ID for the Unicode code point cp.
func CPID(cp rune) ID { return FirstNormalCPID + ID(cp) }

// LPRID returns the lexer-rule ID for the LPR at index idx.
func LPRID(idx int) ID { return FirstNormalLPRID + ID(idx) }

// PPRID returns the parser-rule ID for the PPR at index idx.
func PPRID(idx int) ID { return FirstNormalPPRID + ID(idx) }

// IsNormalCPID reports whether id is a normal (non-sentinel) code-point ID.
func IsNormalCPID(id ID) bool { return InRange(id, FirstNormalCPID, LastNormalCPID) }

// IsNormalLPRID reports whether id is a normal (non-sentinel) lexer-rule ID.
func IsNormalLPRID(id ID) bool { return InRange(id, FirstNormalLPRID, LastNormalLPRID) }

// IsNormalPPRID reports whether id is a normal parser-rule ID.
func IsNormalPPRID(id ID) bool { return InRange(id, FirstNormalPPRID, LastNormalPPRID) }

// IsCPID reports whether id lies anywhere in the code-point section,
// including the end-of-input sentinel.
func IsCPID(id ID) bool { return InRange(id, FirstCPID, LastCPID) }

// IsLPRID reports whether id lies anywhere in the lexer-rule section,
// including its sentinels.
func IsLPRID(id ID) bool { return InRange(id, FirstLPRID, LastLPRID) }

// IsPPRID reports whether id lies anywhere in the parser-rule section.
func IsPPRID(id ID) bool { return InRange(id, FirstPPRID, LastPPRID) }

// IsEnd reports whether id is one of the end-of-input sentinels.
func IsEnd(id ID) bool { return id == EndOfCPInput || id == EndOfLPRInput }

// IsFailure reports whether id is the failure-token sentinel.
func IsFailure(id ID) bool { return id == FailureLPR }

func (id ID) String() string {
	switch {
	case id == EndOfCPInput, id == EndOfLPRInput:
		return "<end>"
	case id == FailureLPR:
		return "<failure>"
	case IsNormalCPID(id):
		return fmt.Sprintf("U+%04X", uint32(id-FirstNormalCPID))
	case IsNormalLPRID(id):
		return fmt.Sprintf("lpr#%d", uint32(id-FirstNormalLPRID))
	case IsNormalPPRID(id):
		return fmt.Sprintf("ppr#%d", uint32(id-FirstNormalPPRID))
	default:
		return fmt.Sprintf("id(%d)", uint32(id))
	}
}
