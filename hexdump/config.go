package hexdump

import "github.com/pkg/errors"

const (
	DefaultWidth = 80

	headerWidth    = len("0x00000000:")
	sidecarGap     = len("  ")
	columnsPerByte = len(" XX")
)

// Config describes how a HexWriter renders. Use DefaultConfig and override
// fields; the value is validated once by NewHexWriter.
type Config struct {
	// Width is the number of columns a line may use.
	Width int

	// BytesPerLine, when non-zero, replaces the value derived from Width.
	BytesPerLine int

	// StartOffset is the absolute offset of the first byte written, so the
	// line headers match the offsets of the original input.
	StartOffset int64

	Colorer Colorer
	Palette Palette
}

func DefaultConfig() Config {
	return Config{
		Width:   DefaultWidth,
		Colorer: NoopColorer{},
		Palette: DefaultPalette(),
	}
}

// LineWidth is the number of visible columns of a full line holding n bytes.
func LineWidth(n int) int {
	return headerWidth + n*columnsPerByte + sidecarGap + n
}

// Layout returns the number of bytes per line and the width of the hex zone.
func (c Config) Layout() (int, int, error) {
	n := c.BytesPerLine
	if n < 0 {
		return 0, 0, errors.Wrapf(ErrorWidthTooSmall, "%d bytes per line", n)
	}

	if n == 0 {
		/* Every byte needs three hex columns and one sidecar column */
		hexZone := (c.Width - headerWidth - sidecarGap) / (columnsPerByte + 1) * columnsPerByte
		n = hexZone / columnsPerByte
	}

	if n < 1 {
		return 0, 0, errors.Wrapf(ErrorWidthTooSmall, "width %d, need at least %d", c.Width, LineWidth(1))
	}
	if c.Width > 0 && LineWidth(n) > c.Width {
		return 0, 0, errors.Wrapf(ErrorWidthTooSmall, "%d bytes per line need width %d, have %d", n, LineWidth(n), c.Width)
	}

	return n, n * columnsPerByte, nil
}

func (c Config) Validate() error {
	if c.StartOffset < 0 {
		return errors.Wrapf(ErrorInvalidRange, "start offset %d", c.StartOffset)
	}
	_, _, err := c.Layout()
	return err
}
