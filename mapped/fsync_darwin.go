//go:build darwin

package mapped

import "golang.org/x/sys/unix"

// fdatasync pushes the file descriptor's data to stable storage. macOS has
// no fdatasync; fsync reaches the drive cache only, so full durability
// needs F_FULLFSYNC to force the write through to the platter.
func fdatasync(fd int, full bool) error {
	if full {
		_, err := unix.FcntlInt(uintptr(fd), unix.F_FULLFSYNC, 0)
		return err
	}
	return unix.Fsync(fd)
}
