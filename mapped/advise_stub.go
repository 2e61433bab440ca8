//go:build !unix

package mapped

func madviseRegion(data []byte, advice Advice) error {
	return ErrUnsupported
}
