package hexdump

import "github.com/fatih/color"

// Palette maps a Style to the color used to print it. Styles without an entry
// are printed plain.
type Palette map[Style]*color.Color

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	/* color.NoColor is set when stdout is not a tty, but an explicit color mode wins */
	c.EnableColor()
	return c
}

func DefaultPalette() Palette {
	return Palette{
		StyleNull:        forced(color.FgWhite, color.Faint),
		StyleSpace:       forced(color.FgHiGreen),
		StylePrintable:   forced(color.FgGreen),
		StyleUnprintable: forced(color.FgCyan, color.Faint),
		StyleExtended:    forced(color.FgYellow, color.Faint),

		StyleLow:  forced(color.FgBlue),
		StyleMid:  forced(color.FgYellow),
		StyleHigh: forced(color.FgRed),
	}
}

func (p Palette) Color(s Style) *color.Color {
	if s == StyleNone || p == nil {
		return nil
	}
	return p[s]
}
