// Package input turns terminal key events into the held-direction signals a
// human controller reads once per tick
package input

import "github.com/gdamore/tcell/v2"

// KeyState tracks held directions
// Terminals report presses only, so a press counts as held for a fixed number of ticks
// Not safe for concurrent use; the loop driver feeds events and ticks from one goroutine
type KeyState struct {
	table     *KeyTable
	holdTicks int

	left, right int // remaining held ticks
}

// NewKeyState creates a key state, holdTicks below 1 is raised to 1
func NewKeyState(table *KeyTable, holdTicks int) *KeyState {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &KeyState{
		table:     table,
		holdTicks: max(holdTicks, 1),
	}
}

// HandleEvent records a key press and returns its intent; non-key events yield IntentNone
// A direction press releases the opposite direction
func (k *KeyState) HandleEvent(ev tcell.Event) Intent {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return IntentNone
	}

	intent := k.table.Lookup(key)
	switch intent {
	case IntentLeft:
		k.left, k.right = k.holdTicks, 0
	case IntentRight:
		k.left, k.right = 0, k.holdTicks
	}
	return intent
}

// Held implements race.InputSource
func (k *KeyState) Held() (left, right bool) {
	return k.left > 0, k.right > 0
}

// Tick ages held keys, called once after every simulation step
func (k *KeyState) Tick() {
	k.left = max(k.left-1, 0)
	k.right = max(k.right-1, 0)
}

// Release drops every held key
func (k *KeyState) Release() {
	k.left, k.right = 0, 0
}
