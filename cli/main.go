package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BertoldVdb/hexview/tty"
	"github.com/alecthomas/kong"
	"github.com/inancgumus/screen"
)

type LogFunc func(level int, format string, param ...interface{})

type Context struct {
	stdin     io.Reader
	stdout    io.Writer
	terminal  bool
	termWidth int

	logFunc LogFunc

	/* Watch mode only */
	clearScreen func()
	stop        <-chan struct{}
}

func (c *Context) log(level int, format string, param ...interface{}) {
	if c.logFunc != nil {
		c.logFunc(level, format, param...)
	}
}

var CLI Options

func newParser(o *Options, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("hexview"),
		kong.Description("Yet another hex viewer."),
		kong.NamedMapper("offset", offsetMapper{})}, options...)
	return kong.New(o, options...)
}

// dispatch runs the parsed command. There are no subcommands, so the root
// node is the one to run.
func dispatch(ctx *kong.Context, c *Context) error {
	return ctx.RunNode(ctx.Model.Node, c)
}

func main() {
	k, err := newParser(&CLI)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, err := k.Parse(os.Args[1:])
	k.FatalIfErrorf(err)

	c := &Context{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		terminal: tty.IsTerminal(os.Stdout),

		logFunc: func(level int, format string, param ...interface{}) {
			if level > CLI.LogLevel {
				return
			}
			str := fmt.Sprintf(format, param...)
			fmt.Fprintf(os.Stderr, "hexview(%d): %s\n", level, str)
		},

		clearScreen: func() {
			screen.Clear()
			screen.MoveTopLeft()
		},
	}

	if c.terminal {
		if c.termWidth, err = tty.Width(os.Stdout); err != nil {
			c.log(2, "Failed to get terminal width: %v", err)
		}
	}

	err = dispatch(ctx, c)
	ctx.FatalIfErrorf(err)
}
