package main

import (
	"os"

	"github.com/BertoldVdb/hexview/hexdump"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type Options struct {
	Input string `arg:"" optional:"" name:"input" help:"File to dump. Omit or use - for standard input."`

	Start hexdump.OptionalOffset `short:"s" type:"offset" help:"First offset to dump, decimal or 0x hex."`
	End   hexdump.OptionalOffset `short:"e" type:"offset" help:"Offset to stop before, decimal or 0x hex."`
	Num   hexdump.OptionalOffset `short:"n" type:"offset" help:"Number of bytes to dump, decimal or 0x hex."`

	Color        string `short:"c" help:"Coloring: none, absolute, entropy or auto (default)."`
	Width        int    `short:"w" help:"Render width in columns, 0 to use the config file or terminal width."`
	BytesPerLine int    `name:"bytes-per-line" help:"Fixed number of bytes per line, ignoring the width."`

	Watch    bool   `help:"Dump the file again whenever it changes."`
	Config   string `help:"Configuration file, defaults to <user config dir>/hexview/config.toml."`
	LogLevel int    `help:"Higher values give more output on stderr."`
}

func (o *Options) readsStdin() bool {
	return o.Input == "" || o.Input == "-"
}

// settings merges the flags with the environment and the config file.
// Flags win over HEXVIEW_COLOR, which wins over the file.
func (o *Options) settings(c *Context, fc fileConfig) (hexdump.Config, error) {
	cfg := hexdump.DefaultConfig()

	color := fc.Color
	if env := os.Getenv(envColor); env != "" {
		color = env
	}
	if o.Color != "" {
		color = o.Color
	}
	mode, err := hexdump.ParseColorMode(color)
	if err != nil {
		return cfg, err
	}
	mode = mode.Resolve(c.terminal)
	cfg.Colorer = hexdump.NewColorer(mode)

	switch {
	case o.Width != 0:
		cfg.Width = o.Width
	case fc.Width != 0:
		cfg.Width = fc.Width
	case c.termWidth != 0:
		cfg.Width = c.termWidth
	}

	cfg.BytesPerLine = fc.BytesPerLine
	if o.BytesPerLine != 0 {
		cfg.BytesPerLine = o.BytesPerLine
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	n, _, _ := cfg.Layout()
	c.log(1, "Colorer: %s, width: %d, bytes per line: %d", mode, cfg.Width, n)
	return cfg, nil
}

func (o *Options) Run(c *Context) error {
	/* Argument errors must be reported before touching any file */
	rng, err := hexdump.NormalizeRange(o.Start, o.End, o.Num)
	if err != nil {
		return err
	}

	if o.Watch && o.readsStdin() {
		return errors.New("--watch needs an input file")
	}

	fc, path, err := loadConfig(o.Config)
	if err != nil {
		return err
	}
	if path != "" {
		c.log(2, "Loaded configuration from %s", path)
	}

	cfg, err := o.settings(c, fc)
	if err != nil {
		return err
	}

	if rng.HasEnd {
		c.log(1, "Range: [0x%X, 0x%X), %s", rng.Start, rng.End, humanize.Bytes(uint64(rng.Len())))
	} else {
		c.log(1, "Range: [0x%X, end of input)", rng.Start)
	}

	if o.Watch {
		return c.watch(o.Input, func() error {
			return o.dump(c, rng, cfg)
		})
	}
	return o.dump(c, rng, cfg)
}

func (o *Options) dump(c *Context, rng hexdump.Range, cfg hexdump.Config) error {
	src := c.stdin
	if !o.readsStdin() {
		f, err := os.Open(o.Input)
		if err != nil {
			return errors.Wrap(err, "failed to open input")
		}
		defer f.Close()
		src = f
	}

	res, err := hexdump.Dump(c.stdout, src, rng, cfg)
	c.log(2, "Dumped %s from offset 0x%X (skip: %s)", humanize.Bytes(uint64(res.Bytes)), res.Start, res.SkipMethod)
	return err
}
