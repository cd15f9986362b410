//go:build !windows

package analyzer

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the CLI in its own process group so that a
// timeout kills the tools it spawned as well
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
