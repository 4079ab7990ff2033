//go:build !linux
// +build !linux

package tty

import "golang.org/x/term"

func widthInternal(f File) (int, error) {
	cols, _, err := term.GetSize(int(f.Fd()))
	return cols, err
}
