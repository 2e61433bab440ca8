//go:build linux

package mapped

import "golang.org/x/sys/unix"

// MADV_POPULATE_READ needs Linux 5.14; older kernels report EINVAL.
func tryMadvisePopulate(data []byte) error {
	err := unix.Madvise(data, unix.MADV_POPULATE_READ)
	switch err {
	case nil:
		return nil
	case unix.EINVAL, unix.ENOSYS:
		return ErrUnsupported
	default:
		return err
	}
}
