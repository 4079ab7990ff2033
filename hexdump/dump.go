package hexdump

import (
	"io"
)

const copyBufferSize = 4096

// Result describes a finished dump.
type Result struct {
	Bytes      int64
	Start      int64
	SkipMethod SkipMethod
}

// Dump renders the part of src selected by rng to dst. cfg.StartOffset is
// replaced by the start of rng. The last line is flushed even when reading
// fails, and the first error is returned.
func Dump(dst io.Writer, src io.Reader, rng Range, cfg Config) (res Result, err error) {
	rr, err := NewRangeReader(src, rng)
	if err != nil {
		return res, err
	}

	cfg.StartOffset = rr.Offset()
	hw, err := NewHexWriter(dst, cfg)
	if err != nil {
		return res, err
	}
	defer func() {
		if cerr := hw.Close(); err == nil {
			err = cerr
		}
	}()

	res.Start = rng.Start
	res.Bytes, err = io.CopyBuffer(hw, rr, make([]byte, copyBufferSize))
	res.SkipMethod = rr.SkipMethod()
	return res, err
}
