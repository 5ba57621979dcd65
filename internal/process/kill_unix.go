//go:build !windows

package process

import "syscall"

// TerminateTree sends SIGKILL to the process group led by pid, taking down
// the browser together with its renderer and GPU helpers.
// Errors are ignored: the process may already be gone.
func TerminateTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
