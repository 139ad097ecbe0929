//go:build windows
// +build windows

package shortcut

import "golang.design/x/hotkey"

// modifierMap translates accelerator modifier names to Win32 modifiers.
// "CommandOrControl" resolves to Control here.
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":             hotkey.ModCtrl,
	"control":          hotkey.ModCtrl,
	"commandorcontrol": hotkey.ModCtrl,
	"cmdorctrl":        hotkey.ModCtrl,
	"shift":            hotkey.ModShift,
	"alt":              hotkey.ModAlt,
	"option":           hotkey.ModAlt,
	"cmd":              hotkey.ModWin,
	"command":          hotkey.ModWin,
	"super":            hotkey.ModWin,
	"meta":             hotkey.ModWin,
	"win":              hotkey.ModWin,
}
