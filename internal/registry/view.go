package registry

import "github.com/vovakirdan/brain-arcade/internal/config"

// TileState is the visibility of a match-pairs tile.
type TileState int

const (
	TileHidden TileState = iota
	TileRevealed
	TileMatched
)

// TileView is one tile of a match-pairs grid. Symbol is empty while hidden.
type TileView struct {
	Symbol string
	State  TileState
}

// RoundView is a render-ready copy of a round. Fields outside the active mode
// stay zero.
type RoundView struct {
	Mode     config.Mode
	Progress int // pairs matched, sequence length reached, answers or words correct
	Goal     int // value of Progress that completes the level
	Locked   bool
	Feedback string

	// match
	Tiles      []TileView
	Rows, Cols int

	// sequence
	Palette   []string
	Entered   []int
	Highlight int // palette index lit during playback, -1 when dark
	Length    int // length of the sequence currently being replayed

	// arithmetic
	Question string
	Options  []int

	// words
	Word string // empty once hidden
}
