// Package shortcut registers global keyboard shortcuts and routes them to
// capture actions. Accelerator strings use the conventional
// "Modifier+Modifier+Key" form, e.g. "CommandOrControl+Shift+1".
package shortcut

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Parse splits an accelerator string into hotkey modifiers and a key. The
// modifier vocabulary is platform-dependent; see the modifiers_* files.
func Parse(accel string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(accel, "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("accelerator %q needs at least one modifier and a key", accel)
	}

	var mods []hotkey.Modifier
	for _, part := range parts[:len(parts)-1] {
		name := strings.ToLower(strings.TrimSpace(part))
		mod, ok := modifierMap[name]
		if !ok {
			return nil, 0, fmt.Errorf("unknown modifier %q in accelerator %q", part, accel)
		}
		mods = append(mods, mod)
	}

	name := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	key, ok := keyMap[name]
	if !ok {
		return nil, 0, fmt.Errorf("unknown key %q in accelerator %q", parts[len(parts)-1], accel)
	}
	return mods, key, nil
}
