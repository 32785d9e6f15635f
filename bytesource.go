package voxflat

import "io"

// scratchSize is the scratch buffer capacity used by stream sources: it
// must be large enough to hold the largest single get() call, which is
// a 256-entry RGBA palette (256*4 bytes).
const scratchSize = 1024

// mark is an opaque bookmark into a byteSource, captured with bookmark
// and later restored with seekTo.
type mark int64

// byteSource is a uniform seek/read abstraction over either an
// in-memory buffer or a seekable stream. Implementations increment
// their own read counter on every get/skip so callers can detect
// chunks whose declared size doesn't match what was consumed.
type byteSource interface {
	// get returns exactly n bytes, or fails with ErrUnexpectedEOF. The
	// returned slice is only valid until the next call into the
	// source.
	get(n int) []byte

	// tryGet returns exactly n bytes and ok=true, or ok=false if fewer
	// than n bytes remain. Unlike get, a short read is not a failure:
	// it is how the top-level chunk loop recognizes a clean (or even
	// truncated) end of file without raising ErrUnexpectedEOF.
	tryGet(n int) ([]byte, bool)

	// skip advances by up to n bytes, clamping at the end of a memory
	// source or seeking on a stream. Fails with ErrFileSeek on a
	// stream seek error.
	skip(n int)

	// bookmark captures the current position.
	bookmark() mark

	// seekTo restores a previously captured position. Fails with
	// ErrFileSeek if the underlying stream rejects the operation.
	seekTo(m mark)

	// readCount returns the number of bytes consumed by get/skip since
	// the last call to resetReadCount.
	readCount() int64
	resetReadCount()
}

// memorySource is a byteSource backed by a borrowed, never-copied byte
// slice. All get() calls return direct views into buf.
type memorySource struct {
	buf    []byte
	offset int
	read   int64
}

func newMemorySource(buf []byte) *memorySource {
	return &memorySource{buf: buf}
}

func (s *memorySource) get(n int) []byte {
	s.read += int64(n)
	if n > len(s.buf)-s.offset {
		fail(ErrUnexpectedEOF)
	}
	b := s.buf[s.offset : s.offset+n]
	s.offset += n
	return b
}

func (s *memorySource) tryGet(n int) ([]byte, bool) {
	if n > len(s.buf)-s.offset {
		return nil, false
	}
	return s.get(n), true
}

func (s *memorySource) skip(n int) {
	s.read += int64(n)
	remaining := len(s.buf) - s.offset
	if n > remaining {
		n = remaining
	}
	s.offset += n
}

func (s *memorySource) bookmark() mark { return mark(s.offset) }

func (s *memorySource) seekTo(m mark) { s.offset = int(m) }

func (s *memorySource) readCount() int64 { return s.read }
func (s *memorySource) resetReadCount()  { s.read = 0 }

// streamSource is a byteSource backed by a caller-owned io.ReadSeeker.
// get() reads into a fixed scratch buffer since the underlying stream
// offers no direct-view alternative.
type streamSource struct {
	r       io.ReadSeeker
	scratch [scratchSize]byte
	read    int64
}

func newStreamSource(r io.ReadSeeker) *streamSource {
	return &streamSource{r: r}
}

func (s *streamSource) get(n int) []byte {
	s.read += int64(n)
	if n > scratchSize {
		// Only ever requested for dict strings/records that are
		// already bounded to <=1024 bytes by the caller; treat a
		// larger ask as a structural bug surfacing as OOM sizing.
		fail(ErrOutOfMemory)
	}
	buf := s.scratch[:n]
	if _, err := io.ReadFull(s.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			fail(ErrUnexpectedEOF)
		}
		failCause(ErrFileRead, err)
	}
	return buf
}

func (s *streamSource) tryGet(n int) ([]byte, bool) {
	buf := s.scratch[:n]
	read, err := io.ReadFull(s.r, buf)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, false
		}
		failCause(ErrFileRead, err)
	}
	s.read += int64(read)
	return buf, true
}

func (s *streamSource) skip(n int) {
	s.read += int64(n)
	if n == 0 {
		return
	}
	if _, err := s.r.Seek(int64(n), io.SeekCurrent); err != nil {
		failCause(ErrFileSeek, err)
	}
}

func (s *streamSource) bookmark() mark {
	pos, err := s.r.Seek(0, io.SeekCurrent)
	if err != nil {
		failCause(ErrFileSeek, err)
	}
	return mark(pos)
}

func (s *streamSource) seekTo(m mark) {
	if _, err := s.r.Seek(int64(m), io.SeekStart); err != nil {
		failCause(ErrFileSeek, err)
	}
}

func (s *streamSource) readCount() int64 { return s.read }
func (s *streamSource) resetReadCount()  { s.read = 0 }
