package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vpckso/marquee/internal/dragselect"
)

// pointerFromMouse adapts a terminal mouse message to a pointer event.
// Wheel and extra buttons are not pointer gestures and map to nil.
func pointerFromMouse(msg tea.MouseMsg, target any) *dragselect.PointerEvent {
	ev := &dragselect.PointerEvent{
		Device: dragselect.DeviceMouse,
		X:      msg.X,
		Y:      msg.Y,
		Target: target,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		ev.Kind = dragselect.PointerPress
	case tea.MouseActionMotion:
		ev.Kind = dragselect.PointerMove
	case tea.MouseActionRelease:
		ev.Kind = dragselect.PointerRelease
	default:
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = dragselect.ButtonPrimary
	case tea.MouseButtonRight:
		ev.Button = dragselect.ButtonSecondary
	case tea.MouseButtonMiddle:
		ev.Button = dragselect.ButtonMiddle
	case tea.MouseButtonNone:
		// Terminals without SGR extended mode report releases with no
		// button; treat those as the primary button coming up.
		if msg.Action == tea.MouseActionRelease {
			ev.Button = dragselect.ButtonPrimary
		}
	default:
		return nil
	}
	return ev
}
