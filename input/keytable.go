package input

import "github.com/gdamore/tcell/v2"

// Intent is what a key press asks the game to do
type Intent uint8

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentQuit
	IntentToggleMute
)

func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentQuit:
		return "quit"
	case IntentToggleMute:
		return "mute"
	}
	return "none"
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]Intent

	// Plain rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings: arrows, a/d and h/l steer
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyLeft:   IntentLeft,
			tcell.KeyRight:  IntentRight,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
		},
		Runes: map[rune]Intent{
			'a': IntentLeft,
			'h': IntentLeft,
			'd': IntentRight,
			'l': IntentRight,
			'q': IntentQuit,
			'm': IntentToggleMute,
		},
	}
}

// Lookup resolves a key event, runes are matched case-insensitively
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return kt.Runes[r]
	}
	return kt.SpecialKeys[ev.Key()]
}
