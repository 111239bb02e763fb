package generator

import (
	"io"
	"strconv"
	"strings"
)

// TokenWidth is the column width of one "0xHH, " array entry. ValuesPerLine
// depends on it, so it must change together with FormatByte.
const TokenWidth = len("0xHH, ")

const hexDigits = "0123456789ABCDEF"

// Declaration describes one array and size constant pair.
type Declaration struct {
	// LeftIndentation is the column at which both declarations start.
	LeftIndentation int
	// Indentation is added to LeftIndentation for array content lines.
	Indentation int
	// Width is the configured maximum line width.
	Width int

	Name     string
	Type     string
	SizeName string
	SizeType string
}

// ValuesPerLine returns how many entries fit on one content line. The
// result is never less than one.
func ValuesPerLine(width, indentation, leftIndentation int) int {
	n := (width - indentation - leftIndentation + 1) / TokenWidth
	if n < 1 {
		return 1
	}
	return n
}

// FormatByte renders b as 0xHH with upper case digits.
func FormatByte(b byte) string {
	var sb strings.Builder
	writeByte(&sb, b)
	return sb.String()
}

func writeByte(sb *strings.Builder, b byte) {
	sb.WriteString("0x")
	sb.WriteByte(hexDigits[b>>4])
	sb.WriteByte(hexDigits[b&0x0F])
}

// EmitArray writes the array declaration for data followed by its size
// constant. Entries are wrapped at a fixed count per line computed by
// ValuesPerLine; the first entry always starts a new line.
func EmitArray(w io.Writer, data []byte, d Declaration) error {
	left := strings.Repeat(" ", d.LeftIndentation)
	content := strings.Repeat(" ", d.LeftIndentation+d.Indentation)
	count := strconv.Itoa(len(data))

	var sb strings.Builder
	sb.Grow(len(data)*TokenWidth + len(data)/4 + 128)

	sb.WriteString(left)
	sb.WriteString(d.Type)
	sb.WriteByte(' ')
	sb.WriteString(d.Name)
	sb.WriteByte('[')
	sb.WriteString(count)
	sb.WriteString("] = {")

	perLine := ValuesPerLine(d.Width, d.Indentation, d.LeftIndentation)
	onLine := perLine
	for i, b := range data {
		if onLine >= perLine {
			sb.WriteByte('\n')
			sb.WriteString(content)
			onLine = 1
		} else {
			onLine++
		}

		writeByte(&sb, b)

		if i < len(data)-1 {
			sb.WriteString(", ")
		}
	}

	sb.WriteByte('\n')
	sb.WriteString(left)
	sb.WriteString("};\n\n")

	sb.WriteString(left)
	sb.WriteString(d.SizeType)
	sb.WriteByte(' ')
	sb.WriteString(d.SizeName)
	sb.WriteString(" = ")
	sb.WriteString(count)
	sb.WriteString(";\n\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
