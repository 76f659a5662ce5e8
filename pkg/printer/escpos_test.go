package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func textLines(data []byte) []string {
	// Strip control sequences so only printable text remains
	s := string(data)
	for _, ctl := range []string{
		string([]byte{escByte, '@'}),
		string([]byte{escByte, 'E', 0}), string([]byte{escByte, 'E', 1}),
		string([]byte{escByte, 'a', 0}), string([]byte{escByte, 'a', 1}), string([]byte{escByte, 'a', 2}),
		string([]byte{gsByte, '!', FontNormal}), string([]byte{gsByte, '!', FontDouble}),
		string([]byte{gsByte, '!', FontWide}), string([]byte{gsByte, '!', FontTall}),
		string([]byte{gsByte, 'V', 0x01}),
	} {
		s = strings.ReplaceAll(s, ctl, "")
	}
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestWrappedRespectsWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.Wrapped("Flat 402 Sunrise Apartments Fourth Cross Street Koramangala Bengaluru 560034")

	lines := textLines(doc.Bytes())
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 32, "line %q exceeds paper width", l)
	}
	assert.Equal(t, "Flat 402 Sunrise Apartments", lines[0])
}

func TestWrappedKeepsOversizedWordWhole(t *testing.T) {
	doc := NewDocument(10)
	doc.Wrapped("x incomprehensibilities y")

	lines := textLines(doc.Bytes())
	assert.Equal(t, []string{"x", "incomprehensibilities", "y"}, lines)
}

func TestKeyValueAlignment(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("TOTAL:", "667.90")

	lines := textLines(doc.Bytes())
	assert.Len(t, lines, 1)
	assert.Equal(t, 32, len(lines[0]))
	assert.True(t, strings.HasPrefix(lines[0], "TOTAL:"))
	assert.True(t, strings.HasSuffix(lines[0], "667.90"))
}

func TestSeparatorFillsWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.Separator('-')

	lines := textLines(doc.Bytes())
	assert.Equal(t, strings.Repeat("-", 32), lines[0])
}
