package mapped

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// preFaultRegion touches every page of a fresh mapping so inaccessible
// regions surface as an error at acquisition instead of a SIGBUS during
// normal access. MADV_POPULATE_READ does this in one call where the kernel
// supports it; elsewhere the pages are read through manually with fault
// panics converted to errors.
func preFaultRegion(data []byte, pageSize int64) error {
	if len(data) == 0 {
		return nil
	}
	err := tryMadvisePopulate(data)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUnsupported) {
		return fmt.Errorf("populate pages: %w", err)
	}
	return readThroughPages(data, pageSize)
}

// readThroughPages reads one byte per page with fault panics enabled, so a
// page the OS cannot back turns into a recoverable error.
func readThroughPages(data []byte, pageSize int64) (retErr error) {
	if len(data) == 0 {
		return nil
	}
	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("inaccessible page in mapping: %v", r)
		}
	}()

	if pageSize <= 0 {
		pageSize = standardPageSize
	}
	var sink byte
	for i := int64(0); i < int64(len(data)); i += pageSize {
		sink ^= data[i]
	}
	sink ^= data[len(data)-1]
	_ = sink
	return nil
}
