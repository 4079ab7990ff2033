package hexdump_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/BertoldVdb/hexview/hexdump"
	"github.com/mattn/go-runewidth"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

func plainConfig(width int) hexdump.Config {
	cfg := hexdump.DefaultConfig()
	cfg.Width = width
	return cfg
}

func render(t *testing.T, cfg hexdump.Config, data []byte) string {
	t.Helper()

	var out bytes.Buffer
	w, err := hexdump.NewHexWriter(&out, cfg)
	if err != nil {
		t.Fatalf("NewHexWriter: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return out.String()
}

func TestHexWriterSingleLine(t *testing.T) {
	got := render(t, plainConfig(hexdump.LineWidth(4)), []byte{0x00, 0x20, 0x41, 0xFF})
	want := "0x00000000: 00 20 41 FF  . A.\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHexWriterPadsLastLine(t *testing.T) {
	got := render(t, plainConfig(hexdump.LineWidth(4)), []byte("ABCDEF"))
	want := "0x00000000: 41 42 43 44  ABCD\n" +
		"0x00000004: 45 46" + strings.Repeat(" ", 6+2) + "EF\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestHexWriterEmpty(t *testing.T) {
	if got := render(t, plainConfig(80), nil); got != "" {
		t.Errorf("empty input rendered %q", got)
	}
}

func TestHexWriterStartOffset(t *testing.T) {
	cfg := plainConfig(hexdump.LineWidth(4))
	cfg.StartOffset = 0x1FFFE
	got := render(t, cfg, []byte("0123456"))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "0x0001FFFE:") || !strings.HasPrefix(lines[1], "0x00020002:") {
		t.Errorf("unexpected headers in %q", got)
	}
}

func TestHexWriterLayout(t *testing.T) {
	cases := []struct {
		name    string
		width   int
		perLine int
		want    int
		wantErr bool
	}{
		{"default", 80, 0, 16, false},
		{"narrowest", hexdump.LineWidth(1), 0, 1, false},
		{"too narrow", hexdump.LineWidth(1) - 1, 0, 0, true},
		{"rounds down", hexdump.LineWidth(8) + 3, 0, 8, false},
		{"pinned", 0, 32, 32, false},
		{"pinned fits", hexdump.LineWidth(8), 8, 8, false},
		{"pinned too wide", hexdump.LineWidth(8), 9, 0, true},
		{"negative", 80, -1, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := plainConfig(tc.width)
			cfg.BytesPerLine = tc.perLine

			w, err := hexdump.NewHexWriter(&bytes.Buffer{}, cfg)
			if (err != nil) != tc.wantErr {
				t.Fatalf("expectedErr=%v, gotErr=%v", tc.wantErr, err)
			}
			if err != nil {
				if !errors.Is(err, hexdump.ErrorWidthTooSmall) {
					t.Errorf("unexpected error %v", err)
				}
				return
			}
			if w.BytesPerLine() != tc.want {
				t.Errorf("got %d bytes per line, want %d", w.BytesPerLine(), tc.want)
			}
		})
	}
}

func TestHexWriterWidth(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for width := hexdump.LineWidth(1); width <= 140; width++ {
		data := make([]byte, rnd.Intn(300))
		rnd.Read(data)

		out := render(t, plainConfig(width), data)
		for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
			if w := runewidth.StringWidth(line); w > width {
				t.Fatalf("width %d: line %q is %d columns", width, line, w)
			}
		}
	}
}

func decodeDump(t *testing.T, out string, perLine int) []byte {
	t.Helper()

	var data []byte
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if line == "" {
			continue
		}
		hexZone := line[len("0x00000000:") : len("0x00000000:")+perLine*3]
		b, err := hex.DecodeString(strings.Join(strings.Fields(hexZone), ""))
		if err != nil {
			t.Fatalf("line %q: %v", line, err)
		}
		data = append(data, b...)
	}
	return data
}

func TestHexWriterRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))

	for _, n := range []int{1, 15, 16, 17, 255, 1024} {
		data := make([]byte, n)
		rnd.Read(data)

		out := render(t, plainConfig(80), data)
		if got := decodeDump(t, out, 16); !bytes.Equal(got, data) {
			t.Errorf("%d bytes: decoded %x, want %x", n, got, data)
		}
	}
}

func TestHexWriterChunking(t *testing.T) {
	data := testData(100)
	whole := render(t, plainConfig(60), data)

	var out bytes.Buffer
	w, err := hexdump.NewHexWriter(&out, plainConfig(60))
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range data {
		if _, err := w.Write([]byte{b}); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if out.String() != whole {
		t.Errorf("byte at a time rendered\n%s\nwant\n%s", out.String(), whole)
	}
}

func TestHexWriterColor(t *testing.T) {
	data := []byte("\x00 hello\xff\x7f\x01")
	plain := render(t, plainConfig(80), data)

	for _, c := range []hexdump.Colorer{hexdump.AbsoluteColorer{}, hexdump.EntropyColorer{}} {
		cfg := plainConfig(80)
		cfg.Colorer = c

		colored := render(t, cfg, data)
		if !ansiEscape.MatchString(colored) {
			t.Errorf("%T: no escape sequences in %q", c, colored)
		}
		if stripped := ansiEscape.ReplaceAllString(colored, ""); stripped != plain {
			t.Errorf("%T: stripped output %q, want %q", c, stripped, plain)
		}
	}
}

type failingWriter struct {
	after int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errBoom
	}
	f.after--
	return len(p), nil
}

func TestHexWriterSinkError(t *testing.T) {
	w, err := hexdump.NewHexWriter(&failingWriter{}, plainConfig(80))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("short")); err != nil {
		t.Fatalf("buffered write failed early: %v", err)
	}
	if err := w.Close(); !errors.Is(err, errBoom) {
		t.Errorf("Close: expected errBoom, got %v", err)
	}

	w, err = hexdump.NewHexWriter(&failingWriter{after: 1}, plainConfig(80))
	if err != nil {
		t.Fatal(err)
	}
	n, err := w.Write(testData(20000))
	if !errors.Is(err, errBoom) {
		t.Fatalf("Write: expected errBoom, got %v", err)
	}
	if n >= 20000 {
		t.Errorf("Write reported %d bytes after failing", n)
	}
}

func TestHexWriterClosed(t *testing.T) {
	var out bytes.Buffer
	w, err := hexdump.NewHexWriter(&out, plainConfig(80))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("abc")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := w.Write([]byte("d")); !errors.Is(err, hexdump.ErrorWriterClosed) {
		t.Errorf("Write after Close: %v", err)
	}
	if strings.Count(out.String(), "\n") != 1 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestHexWriterEntropyAcrossWrites(t *testing.T) {
	cfg := plainConfig(29)
	cfg.Colorer = hexdump.EntropyColorer{}
	cfg.Palette = hexdump.DefaultPalette()

	data := append([]byte{0x10, 0x10, 0x10, 0x10, 0x11}, testData(40)...)
	whole := render(t, cfg, data)

	var out bytes.Buffer
	w, err := hexdump.NewHexWriter(&out, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if w.BytesPerLine() != 4 {
		t.Fatalf("bytes per line %d, want 4", w.BytesPerLine())
	}
	for _, b := range data {
		if _, err := w.Write([]byte{b}); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	if out.String() != whole {
		t.Errorf("byte at a time rendered\n%q\nwant\n%q", out.String(), whole)
	}

	lines := strings.Split(whole, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected several lines, got %q", whole)
	}
	low := cfg.Palette.Color(hexdump.StyleLow).Sprint("11")
	if want := "0x00000004: " + low; !strings.HasPrefix(lines[1], want) {
		t.Errorf("second line %q does not start with %q", lines[1], want)
	}
}
