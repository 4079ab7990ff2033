package hexdump

import "errors"

var (
	ErrorInvalidRange      = errors.New("invalid range")
	ErrorRangeConflict     = errors.New("only two of start, end and num may be given")
	ErrorInvalidOffset     = errors.New("offset must be decimal or 0x-prefixed hexadecimal")
	ErrorRangeExceedsInput = errors.New("unexpected end of input while skipping to start offset")
	ErrorWidthTooSmall     = errors.New("render width too small for a single byte")
	ErrorUnknownColorMode  = errors.New("unknown color mode")
	ErrorWriterClosed      = errors.New("hex writer is closed")
)
