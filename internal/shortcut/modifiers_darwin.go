//go:build darwin
// +build darwin

package shortcut

import "golang.design/x/hotkey"

// modifierMap translates accelerator modifier names to macOS modifiers.
// "CommandOrControl" resolves to Command here.
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":             hotkey.ModCtrl,
	"control":          hotkey.ModCtrl,
	"commandorcontrol": hotkey.ModCmd,
	"cmdorctrl":        hotkey.ModCmd,
	"shift":            hotkey.ModShift,
	"alt":              hotkey.ModOption,
	"option":           hotkey.ModOption,
	"cmd":              hotkey.ModCmd,
	"command":          hotkey.ModCmd,
	"super":            hotkey.ModCmd,
	"meta":             hotkey.ModCmd,
}
