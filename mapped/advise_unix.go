//go:build unix

package mapped

import "golang.org/x/sys/unix"

func madviseRegion(data []byte, advice Advice) error {
	if len(data) == 0 {
		return nil
	}
	adv := unix.MADV_NORMAL
	switch advice {
	case AdviseSequential:
		adv = unix.MADV_SEQUENTIAL
	case AdviseRandom:
		adv = unix.MADV_RANDOM
	case AdviseWillNeed:
		adv = unix.MADV_WILLNEED
	case AdviseDontNeed:
		adv = unix.MADV_DONTNEED
	}
	return unix.Madvise(data, adv)
}
