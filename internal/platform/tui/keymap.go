package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up", " ":
		return core.ActionThrust, false
	case "a", "left":
		return core.ActionRotateLeft, false
	case "d", "right":
		return core.ActionRotateRight, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// isHeld reports whether an action is a continuous control that should stay
// active between key repeats.
func isHeld(a core.Action) bool {
	switch a {
	case core.ActionThrust, core.ActionRotateLeft, core.ActionRotateRight:
		return true
	}
	return false
}

// HoldLatch keeps continuous actions active for a window after their last
// key press. Terminals report key repeats but never key releases, so a held
// key shows up as a stream of presses.
type HoldLatch struct {
	window time.Duration
	until  map[core.Action]time.Time
}

// NewHoldLatch creates a latch with the given hold window.
func NewHoldLatch(window time.Duration) *HoldLatch {
	return &HoldLatch{
		window: window,
		until:  make(map[core.Action]time.Time),
	}
}

// Press records a key press at now.
func (h *HoldLatch) Press(a core.Action, now time.Time) {
	h.until[a] = now.Add(h.window)
}

// Release drops an action immediately.
func (h *HoldLatch) Release(a core.Action) {
	delete(h.until, a)
}

// Held reports whether a is still within its hold window at now.
func (h *HoldLatch) Held(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Apply marks every action still held at now on the frame and forgets the
// ones that expired.
func (h *HoldLatch) Apply(f *core.InputFrame, now time.Time) {
	for a, t := range h.until {
		if now.Before(t) {
			f.Set(a)
		} else {
			delete(h.until, a)
		}
	}
}

// Clear releases everything.
func (h *HoldLatch) Clear() {
	clear(h.until)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
