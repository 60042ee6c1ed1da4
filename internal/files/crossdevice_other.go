//go:build !windows

package files

import (
	"errors"
	"syscall"
)

func crossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}
