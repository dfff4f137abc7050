//go:build !unix

package shell

import "os/exec"

// killProcessGroupOnCancel keeps the default cancellation, which kills the direct child.
func killProcessGroupOnCancel(_ *exec.Cmd) {}
