package core

import "strconv"

// AttemptKind tells an engine how to read an Attempt.
type AttemptKind int

const (
	// AttemptSelect picks an item by index: a tile, a colour, or an answer option.
	AttemptSelect AttemptKind = iota
	// AttemptSubmit signals that the player finished entering a sequence.
	AttemptSubmit
	// AttemptText carries free-form typed text.
	AttemptText
)

// String returns a human-readable name for the attempt kind.
func (k AttemptKind) String() string {
	switch k {
	case AttemptSelect:
		return "Select"
	case AttemptSubmit:
		return "Submit"
	case AttemptText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Attempt is one unit of player input forwarded by the platform layer.
type Attempt struct {
	Kind  AttemptKind
	Index int
	Text  string
}

// Select creates an index attempt.
func Select(index int) Attempt {
	return Attempt{Kind: AttemptSelect, Index: index}
}

// Submit creates a completion signal.
func Submit() Attempt {
	return Attempt{Kind: AttemptSubmit}
}

// Text creates a typed-text attempt.
func Text(s string) Attempt {
	return Attempt{Kind: AttemptText, Text: s}
}

// String formats the attempt for logs.
func (a Attempt) String() string {
	switch a.Kind {
	case AttemptSelect:
		return "select:" + strconv.Itoa(a.Index)
	case AttemptText:
		return "text:" + strconv.Quote(a.Text)
	default:
		return a.Kind.String()
	}
}
