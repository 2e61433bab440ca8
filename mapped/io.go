package mapped

import "io"

// io.ReaderAt / io.WriterAt over the whole file. Unlike a chunk store,
// these hop chunk boundaries, so they carry no length limit beyond the
// file itself; each call acquires and releases the chunks it touches.

// ReadAt implements io.ReaderAt against the file's current size. Reads
// past the end return io.EOF with the partial count, per the contract.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativePosition
	}
	size := f.ActualSize()
	total := 0
	for total < len(p) {
		pos := off + int64(total)
		if pos >= size {
			return total, io.EOF
		}
		chunk, err := f.AcquireChunk(pos)
		if err != nil {
			return total, err
		}
		rel := pos - chunk.Base
		n := min64(int64(len(p)-total), f.chunkSize-rel)
		if remain := size - pos; n > remain {
			n = remain
		}
		err = chunk.Store.ReadAt(rel, p[total:total+int(n)])
		if rerr := chunk.Release(); err == nil {
			err = rerr
		}
		if err != nil {
			return total, err
		}
		total += int(n)
	}
	return total, nil
}

// WriteAt implements io.WriterAt, growing the file as needed.
func (f *File) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativePosition
	}
	total := 0
	for total < len(p) {
		pos := off + int64(total)
		chunk, err := f.AcquireChunk(pos)
		if err != nil {
			return total, err
		}
		rel := pos - chunk.Base
		n := min64(int64(len(p)-total), f.chunkSize-rel)
		err = chunk.Store.WriteAt(rel, p[total:total+int(n)])
		if rerr := chunk.Release(); err == nil {
			err = rerr
		}
		if err != nil {
			return total, err
		}
		total += int(n)
	}
	return total, nil
}
