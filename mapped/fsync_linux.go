//go:build linux || freebsd

package mapped

import "golang.org/x/sys/unix"

// fdatasync pushes the file descriptor's data to stable storage. On Linux
// and FreeBSD fdatasync gives the needed guarantee; full is ignored.
func fdatasync(fd int, _ bool) error {
	return unix.Fdatasync(fd)
}
