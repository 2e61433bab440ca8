//go:build unix

package mapped

import "golang.org/x/sys/unix"

// mapRegion maps length bytes of fd starting at the page-aligned offset
// off, shared, so stores over a writable window mutate the file.
func mapRegion(fd int, off int64, length int, readOnly bool) ([]byte, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	if readOnly {
		prot = unix.PROT_READ
	}
	return unix.Mmap(fd, off, length, prot, unix.MAP_SHARED)
}

func unmapRegion(data []byte) error {
	return unix.Munmap(data)
}

// syncRegion flushes the mapped region to its backing file, waiting for
// completion when sync is true.
func syncRegion(data []byte, sync bool) error {
	if len(data) == 0 {
		return nil
	}
	flags := unix.MS_ASYNC
	if sync {
		flags = unix.MS_SYNC
	}
	return unix.Msync(data, flags)
}
