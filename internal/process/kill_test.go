package process

import "testing"

// Only a PID that cannot exist is safe here: 0 or a real PID would signal
// live processes. Real cleanup is covered by the verifier's browser tests.
func TestKillProcessGroup_UnknownPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(999999999)
}
