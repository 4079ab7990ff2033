package hexdump

import (
	"io"
	"io/fs"

	"github.com/pkg/errors"
)

const skipBufferSize = 4096

// SkipMethod tells how a RangeReader reached its start offset.
type SkipMethod int

const (
	SkipPending SkipMethod = iota
	SkipNone
	SkipSeek
	SkipDiscard
)

func (s SkipMethod) String() string {
	switch s {
	case SkipNone:
		return "none"
	case SkipSeek:
		return "seek"
	case SkipDiscard:
		return "discard"
	}
	return "pending"
}

// RangeReader exposes the bytes of src that lie within a Range, as if the
// bytes before Start never existed and the stream ended at End.
type RangeReader struct {
	src io.Reader
	rng Range

	pos     int64
	skip    SkipMethod
	skipBuf []byte
	unsized bool
	err     error
}

func NewRangeReader(src io.Reader, r Range) (*RangeReader, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return &RangeReader{
		src: src,
		rng: r,
	}, nil
}

// Offset is the absolute offset of the first byte returned.
func (r *RangeReader) Offset() int64 {
	return r.rng.Start
}

// Pos is the absolute offset of the next byte to be returned.
func (r *RangeReader) Pos() int64 {
	return r.pos
}

func (r *RangeReader) SkipMethod() SkipMethod {
	return r.skip
}

func (r *RangeReader) done() bool {
	return r.rng.HasEnd && r.pos >= r.rng.End
}

func (r *RangeReader) Read(buf []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}

	if r.skip == SkipPending {
		if err := r.skipToStart(); err != nil {
			r.err = err
			return 0, err
		}
	}

	if r.done() {
		return 0, io.EOF
	}

	if r.rng.HasEnd {
		if remaining := r.rng.End - r.pos; int64(len(buf)) > remaining {
			buf = buf[:remaining]
		}
	}

	before := r.pos
	n, err := r.src.Read(buf)
	r.pos += int64(n)

	if r.rng.HasEnd && r.pos > r.rng.End {
		n = int(r.rng.End - before)
	}

	if r.unsized && before == r.rng.Start && before > 0 && n == 0 && err == io.EOF {
		/* Seeked past the end of a source that could not tell its length */
		r.err = errors.Wrapf(ErrorRangeExceedsInput, "no data at start offset %d", before)
		return 0, r.err
	}

	if err != nil && err != io.EOF {
		return n, errors.Wrapf(err, "read at offset %d", before)
	}
	return n, err
}

func (r *RangeReader) skipToStart() error {
	start := r.rng.Start
	if start == 0 {
		r.skip = SkipNone
		return nil
	}

	if seeker, ok := r.src.(io.Seeker); ok {
		seeked, err := r.seekToStart(seeker, start)
		if err != nil {
			return err
		}
		if seeked {
			r.pos = start
			r.skip = SkipSeek
			return nil
		}
	}

	if r.skipBuf == nil {
		r.skipBuf = make([]byte, skipBufferSize)
	}

	for r.pos < start {
		chunk := r.skipBuf
		if remaining := start - r.pos; int64(len(chunk)) > remaining {
			chunk = chunk[:remaining]
		}

		n, err := r.src.Read(chunk)
		r.pos += int64(n)

		if err == io.EOF {
			if r.pos < start {
				return errors.Wrapf(ErrorRangeExceedsInput, "input ends at offset %d, start is %d", r.pos, start)
			}
			break
		} else if err != nil {
			return errors.Wrapf(err, "skip at offset %d", r.pos)
		}
	}

	r.skip = SkipDiscard
	return nil
}

/* Returns false when the source can not seek (pipes, terminals) so the caller
 * falls back to discarding. */
func (r *RangeReader) seekToStart(s io.Seeker, start int64) (bool, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return false, nil
	}

	if size, ok := sourceSize(r.src); ok {
		if start > size-cur {
			return true, errors.Wrapf(ErrorRangeExceedsInput, "input ends at offset %d, start is %d", size-cur, start)
		}
	} else {
		/* Devices and pseudo files seek fine but have no length */
		r.unsized = true
	}

	if _, err := s.Seek(cur+start, io.SeekStart); err != nil {
		return true, errors.Wrapf(err, "seek to offset %d", start)
	}
	return true, nil
}

// sourceSize returns the total length of src when it has a meaningful one.
func sourceSize(src io.Reader) (int64, bool) {
	switch s := src.(type) {
	case interface{ Stat() (fs.FileInfo, error) }:
		fi, err := s.Stat()
		if err != nil || !fi.Mode().IsRegular() {
			return 0, false
		}
		return fi.Size(), true

	case interface{ Size() int64 }:
		return s.Size(), true
	}
	return 0, false
}
