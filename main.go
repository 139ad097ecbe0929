// Grab - Screen capture for desktops.
// A daemon with tray icon, global shortcuts, and a local bridge for UI
// frontends, plus one-shot CLI captures.
package main

import "github.com/akv004/grab/internal/cli"

func main() {
	cli.Execute()
}
