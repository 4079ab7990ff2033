package hexdump

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const hexDigits = "0123456789ABCDEF"

// HexWriter renders everything written to it as hex dump lines. Lines are
// only emitted once complete, so at most one line is held in memory. Close
// must be called to emit the last line and flush the output.
type HexWriter struct {
	out     *bufio.Writer
	colorer Colorer
	palette Palette

	bytesPerLine int
	hexZone      int
	startPos     int64

	lineIndex int64
	linePos   int
	lineBuf   []byte

	prev    byte
	hasPrev bool

	err    error
	closed bool
}

func NewHexWriter(w io.Writer, cfg Config) (*HexWriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n, hexZone, _ := cfg.Layout()

	colorer := cfg.Colorer
	if colorer == nil {
		colorer = NoopColorer{}
	}

	return &HexWriter{
		out:          bufio.NewWriter(w),
		colorer:      colorer,
		palette:      cfg.Palette,
		bytesPerLine: n,
		hexZone:      hexZone,
		startPos:     cfg.StartOffset,
		lineBuf:      make([]byte, 0, n),
	}, nil
}

func (w *HexWriter) BytesPerLine() int {
	return w.bytesPerLine
}

func (w *HexWriter) put(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(s); err != nil {
		w.err = errors.Wrap(err, "write dump")
	}
}

func (w *HexWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrorWriterClosed
	}

	for i, b := range p {
		if err := w.writeByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

func (w *HexWriter) writeByte(b byte) error {
	if w.linePos+columnsPerByte > w.hexZone {
		w.closeLine()
	}

	if w.linePos == 0 {
		w.put(fmt.Sprintf("0x%08X:", w.startPos+w.lineIndex*int64(w.bytesPerLine)))
	}

	text := string([]byte{hexDigits[b>>4], hexDigits[b&0xF]})
	if c := w.palette.Color(w.colorer.Classify(w.prev, w.hasPrev, b)); c != nil {
		text = c.Sprint(text)
	}
	w.put(" ")
	w.put(text)

	w.lineBuf = append(w.lineBuf, b)
	w.linePos += columnsPerByte
	w.prev, w.hasPrev = b, true

	return w.err
}

func (w *HexWriter) closeLine() {
	for i := w.linePos; i < w.hexZone; i++ {
		w.put(" ")
	}
	w.put("  ")

	for i, b := range w.lineBuf {
		if b < ' ' || b > '~' {
			w.lineBuf[i] = '.'
		}
	}
	w.put(string(w.lineBuf))
	w.put("\n")

	w.lineBuf = w.lineBuf[:0]
	w.linePos = 0
	w.lineIndex++
}

// Flush pushes the completed lines to the underlying writer.
func (w *HexWriter) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		w.err = errors.Wrap(err, "flush dump")
	}
	return w.err
}

// Close pads and emits the last line, then flushes. It does not close the
// underlying writer.
func (w *HexWriter) Close() error {
	if w.closed {
		return w.err
	}
	w.closed = true

	if len(w.lineBuf) > 0 {
		w.closeLine()
	}
	return w.Flush()
}
