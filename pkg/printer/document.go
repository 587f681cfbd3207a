package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultPaperWidth is the character width assumed when a printer
// configuration does not specify one.
const DefaultPaperWidth = 80

// cutCommand is the ESC/POS full paper cut, appended verbatim as the
// final bytes of every rendered receipt.
var cutCommand = []byte{0x1D, 0x56, 0x00}

// Document builds a fixed-width plain-text receipt for thermal printers.
// All layout is computed from the paper width in character columns, so
// the same document renders on 40-column and 80-column paper.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document for the given paper width.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = DefaultPaperWidth
	}
	return &Document{width: width}
}

// Width returns the paper width in character columns.
func (d *Document) Width() int {
	return d.width
}

// Center writes a line centered on the paper.
func (d *Document) Center(s string) *Document {
	pad := (d.width - utf8.RuneCountInString(s)) / 2
	if pad > 0 {
		d.buf.WriteString(strings.Repeat(" ", pad))
	}
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
	return d
}

// Line writes a left-aligned line.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
	return d
}

// LineF writes a formatted left-aligned line.
func (d *Document) LineF(format string, args ...interface{}) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// PadRight writes a line padded with spaces out to the full paper width.
func (d *Document) PadRight(s string) *Document {
	d.buf.WriteString(s)
	if pad := d.width - utf8.RuneCountInString(s); pad > 0 {
		d.buf.WriteString(strings.Repeat(" ", pad))
	}
	d.buf.WriteByte('\n')
	return d
}

// Rule writes a separator spanning the full paper width.
func (d *Document) Rule(ch byte) *Document {
	d.buf.WriteString(strings.Repeat(string(ch), d.width))
	d.buf.WriteByte('\n')
	return d
}

// Columns writes a four-column item row. Column widths are proportional
// to the paper width: 40% name, 10% quantity, 20% unit price, and the
// remainder for the line total. Overlong cells are clipped, never wrapped.
func (d *Document) Columns(name, qty, price, total string) *Document {
	w1 := d.width * 40 / 100
	w2 := d.width * 10 / 100
	w3 := d.width * 20 / 100
	w4 := d.width - w1 - w2 - w3

	d.buf.WriteString(clipPad(name, w1))
	d.buf.WriteString(clipPad(qty, w2))
	d.buf.WriteString(clipPad(price, w3))
	d.buf.WriteString(clipPad(total, w4))
	d.buf.WriteByte('\n')
	return d
}

// Blank writes n empty lines.
func (d *Document) Blank(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte('\n')
	}
	return d
}

// Cut appends the paper cut command. No bytes may follow it.
func (d *Document) Cut() *Document {
	d.buf.Write(cutCommand)
	return d
}

// Bytes returns the accumulated receipt bytes.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Truncate shortens s to at most max columns, replacing the tail with
// "..." when it does not fit.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:maxInt(0, max)])
	}
	return string([]rune(s)[:max-3]) + "..."
}

func clipPad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
