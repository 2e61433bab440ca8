//go:build !unix

package mapped

func mapRegion(fd int, off int64, length int, readOnly bool) ([]byte, error) {
	return nil, ErrUnsupported
}

func unmapRegion(data []byte) error { return nil }

func syncRegion(data []byte, sync bool) error { return nil }
