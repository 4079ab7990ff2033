package tty

import (
	"errors"

	"golang.org/x/term"
)

var ErrorNotTerminal = errors.New("Not a terminal")

// File is anything backed by a file descriptor, usually an *os.File.
type File interface {
	Fd() uintptr
}

func IsTerminal(f File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the number of columns of the terminal behind f.
func Width(f File) (int, error) {
	if !IsTerminal(f) {
		return 0, ErrorNotTerminal
	}

	cols, err := widthInternal(f)
	if err != nil {
		return 0, err
	}
	if cols <= 0 {
		return 0, ErrorNotTerminal
	}
	return cols, nil
}
