package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes
const (
	escByte = 0x1B
	gsByte  = 0x1D
	lfByte  = 0x0A
)

// Alignment values for SetAlign.
const (
	AlignLeft   byte = 0
	AlignCenter byte = 1
	AlignRight  byte = 2
)

// Character size values for SetFontSize.
const (
	FontNormal byte = 0x00
	FontDouble byte = 0x11 // double width and height
	FontWide   byte = 0x10 // double width
	FontTall   byte = 0x01 // double height, used for ticket item lines
)

// Document accumulates an ESC/POS byte stream. All builder methods return
// the document so calls chain.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates an initialized document with the given character
// width: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{escByte, '@'}) // initialize printer
	return d
}

// SetAlign sets text alignment for subsequent lines.
func (d *Document) SetAlign(align byte) *Document {
	d.buf.Write([]byte{escByte, 'a', align})
	return d
}

// SetBold enables or disables emphasized printing.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{escByte, 'E', b})
	return d
}

// SetFontSize sets the character size for subsequent lines.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{gsByte, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lfByte)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte(lfByte)
	return d
}

// Wrapped writes text word-wrapped to the paper width, so addresses and
// cooking notes never get truncated by the printer.
func (d *Document) Wrapped(s string) *Document {
	line := ""
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= d.width:
			line += " " + word
		default:
			d.Text(line)
			line = word
		}
	}
	if line != "" {
		d.Text(line)
	}
	return d
}

// KeyValue writes a left-aligned key and right-aligned value on one line.
func (d *Document) KeyValue(key, value string) *Document {
	pad := d.width - len(key) - len(value)
	if pad < 1 {
		pad = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(value)
	d.buf.WriteByte(lfByte)
	return d
}

// Separator writes a full-width rule of the given character.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(lfByte)
	return d
}

// FeedLines advances the paper by n blank lines.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lfByte)
	}
	return d
}

// PartialCut sends the partial paper cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{gsByte, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
