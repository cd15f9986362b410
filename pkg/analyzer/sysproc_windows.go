//go:build windows

package analyzer

import "os/exec"

// setProcessGroup is a no-op on Windows; WaitDelay still bounds the wait
func setProcessGroup(cmd *exec.Cmd) {}
