// Package tui is a small terminal widget toolkit built on bubbletea and
// lipgloss. It implements the contracts of package widget so that bindings can
// drive real widgets, and it exposes user gestures (Type, Toggle, Pick,
// MoveTo, PressKey, Click, ...) that emit the same events keyboard input does.
// Tests use those gestures to play the user.
package tui
