package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentCenter(t *testing.T) {
	doc := NewDocument(20)
	doc.Center("HELLO")
	assert.Equal(t, "       HELLO\n", string(doc.Bytes()))
}

func TestDocumentPadRight(t *testing.T) {
	doc := NewDocument(10)
	doc.PadRight("total")
	assert.Equal(t, "total     \n", string(doc.Bytes()))
}

func TestDocumentRule(t *testing.T) {
	doc := NewDocument(8)
	doc.Rule('=')
	assert.Equal(t, "========\n", string(doc.Bytes()))
}

func TestDocumentColumnsWidths(t *testing.T) {
	doc := NewDocument(80)
	doc.Columns("Popcorn", "2", "150.00", "300.00")

	line := strings.TrimSuffix(string(doc.Bytes()), "\n")
	assert.Len(t, line, 80)
	// 40/10/20/30 percent splits of 80 columns
	assert.Equal(t, "Popcorn", strings.TrimSpace(line[:32]))
	assert.Equal(t, "2", strings.TrimSpace(line[32:40]))
	assert.Equal(t, "150.00", strings.TrimSpace(line[40:56]))
	assert.Equal(t, "300.00", strings.TrimSpace(line[56:]))
}

func TestDocumentColumnsClipsAtNarrowWidth(t *testing.T) {
	doc := NewDocument(40)
	doc.Columns("A very long product name that overflows", "10", "1500.00", "15000.00")

	line := strings.TrimSuffix(string(doc.Bytes()), "\n")
	assert.Len(t, line, 40)
}

func TestDocumentCutIsTerminal(t *testing.T) {
	doc := NewDocument(40)
	doc.Line("last line").Blank(3).Cut()

	b := doc.Bytes()
	assert.Equal(t, []byte{0x1D, 0x56, 0x00}, b[len(b)-3:])
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Popcorn", 20, "Popcorn"},
		{"Caramel Popcorn Jumbo Tub", 20, "Caramel Popcorn J..."},
		{"abc", 3, "abc"},
		{"abcdef", 3, "abc"},
		{"abcdef", 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
	}
}
