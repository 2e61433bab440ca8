//go:build !linux

package mapped

func tryMadvisePopulate(data []byte) error { return ErrUnsupported }
