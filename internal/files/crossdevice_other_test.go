//go:build !windows

package files

import "syscall"

var crossDeviceErr error = syscall.EXDEV
