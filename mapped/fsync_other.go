//go:build unix && !linux && !freebsd && !darwin

package mapped

import "golang.org/x/sys/unix"

func fdatasync(fd int, _ bool) error {
	return unix.Fsync(fd)
}
