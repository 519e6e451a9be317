//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid so the
// verifier's browser and its renderer children exit together.
func KillProcessGroup(pid int) {
	// Best effort: launcher.Kill() still runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
