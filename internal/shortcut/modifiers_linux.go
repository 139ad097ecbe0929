//go:build linux
// +build linux

package shortcut

import "golang.design/x/hotkey"

// modifierMap translates accelerator modifier names to X11 modifier masks.
// "CommandOrControl" resolves to Control here; Mod1 is Alt and Mod4 Super
// under the usual server layouts.
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":             hotkey.ModCtrl,
	"control":          hotkey.ModCtrl,
	"commandorcontrol": hotkey.ModCtrl,
	"cmdorctrl":        hotkey.ModCtrl,
	"shift":            hotkey.ModShift,
	"alt":              hotkey.Mod1,
	"option":           hotkey.Mod1,
	"cmd":              hotkey.Mod4,
	"command":          hotkey.Mod4,
	"super":            hotkey.Mod4,
	"meta":             hotkey.Mod4,
}
