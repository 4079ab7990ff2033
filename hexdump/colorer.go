package hexdump

import (
	"strings"

	"github.com/pkg/errors"
)

// Style is the classification a Colorer assigns to a byte. The writer only
// uses it to pick a color.
type Style int

const (
	StyleNone Style = iota

	/* Absolute */
	StyleNull
	StyleSpace
	StyleUnprintable
	StylePrintable
	StyleExtended

	/* Entropy */
	StyleLow
	StyleMid
	StyleHigh
)

// Colorer classifies cur, optionally using the byte before it.
type Colorer interface {
	Classify(prev byte, hasPrev bool, cur byte) Style
}

type AbsoluteColorer struct{}

func (AbsoluteColorer) Classify(prev byte, hasPrev bool, cur byte) Style {
	switch {
	case cur == 0:
		return StyleNull
	case cur == ' ':
		return StyleSpace
	case cur < ' ':
		return StyleUnprintable
	case cur < 127:
		return StylePrintable
	}
	return StyleExtended
}

type EntropyColorer struct{}

func (EntropyColorer) Classify(prev byte, hasPrev bool, cur byte) Style {
	if !hasPrev {
		return StyleHigh
	}

	delta := int(cur) - int(prev)
	if delta < 0 {
		delta = -delta
	}

	switch {
	case delta < 85:
		return StyleLow
	case delta < 170:
		return StyleMid
	}
	return StyleHigh
}

type NoopColorer struct{}

func (NoopColorer) Classify(prev byte, hasPrev bool, cur byte) Style {
	return StyleNone
}

type ColorMode string

const (
	ColorModeAuto     ColorMode = "auto"
	ColorModeNone     ColorMode = "none"
	ColorModeAbsolute ColorMode = "absolute"
	ColorModeEntropy  ColorMode = "entropy"
)

func ParseColorMode(s string) (ColorMode, error) {
	m := ColorMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ColorModeAuto, ColorModeNone, ColorModeAbsolute, ColorModeEntropy:
		return m, nil
	case "":
		return ColorModeAuto, nil
	}
	return "", errors.Wrapf(ErrorUnknownColorMode, "%q (want none, absolute, entropy or auto)", s)
}

// Resolve replaces ColorModeAuto with a concrete mode.
func (m ColorMode) Resolve(terminal bool) ColorMode {
	if m != ColorModeAuto {
		return m
	}
	if terminal {
		return ColorModeAbsolute
	}
	return ColorModeNone
}

// NewColorer returns the Colorer for a resolved mode. Unresolved or unknown
// modes get the NoopColorer.
func NewColorer(m ColorMode) Colorer {
	switch m {
	case ColorModeAbsolute:
		return AbsoluteColorer{}
	case ColorModeEntropy:
		return EntropyColorer{}
	}
	return NoopColorer{}
}
