//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// TerminateTree force-kills pid and its child processes with taskkill.
// Errors are ignored: the process may already be gone.
func TerminateTree(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
