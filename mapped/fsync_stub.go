//go:build !unix

package mapped

func fdatasync(fd int, full bool) error { return ErrUnsupported }
