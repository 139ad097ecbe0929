package command

import (
	"fmt"
	"os/exec"
	"runtime"
)

// moveToTrash asks the platform trash facility to take path, reporting
// whether it did. Callers fall back to a plain delete on false. There is no
// portable trash API, so this shells out to the desktop's own tooling and
// treats any failure as "facility unavailable".
func moveToTrash(path string) bool {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "linux":
		gio, err := exec.LookPath("gio")
		if err != nil {
			return false
		}
		cmd = exec.Command(gio, "trash", path)
	case "darwin":
		osascript, err := exec.LookPath("osascript")
		if err != nil {
			return false
		}
		script := fmt.Sprintf("tell application \"Finder\" to delete POSIX file %q", path)
		cmd = exec.Command(osascript, "-e", script)
	default:
		return false
	}
	return cmd.Run() == nil
}
