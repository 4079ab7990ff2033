//go:build linux
// +build linux

package tty

import (
	"os"

	"golang.org/x/sys/unix"
)

func widthInternal(f File) (int, error) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, os.NewSyscallError("TIOCGWINSZ", err)
	}

	return int(ws.Col), nil
}
