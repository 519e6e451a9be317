//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates the verifier's browser and its child
// processes with taskkill /F /T.
func KillProcessGroup(pid int) {
	// Best effort: launcher.Kill() still runs afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
