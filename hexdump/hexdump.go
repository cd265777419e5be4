// Package hexdump formats byte slices as classic hex dumps with
// configurable line width and byte grouping, plus duplicate-line
// folding and tail snipping for large inputs.
//
// A line looks like:
//
//	000000| 0001 0203 0405 0607  0809 0a0b 0c0d 0e0f |................|
//
// Groups controls where spaces go: {1} puts a space after every byte,
// {2, 4} after every two bytes and an extra one after every four such
// pairs (the default above).
package hexdump

import (
	"bytes"
	"fmt"
	"strings"
)

// Dumper renders hex dumps. The zero value uses 16 bytes per line,
// {2, 4} grouping and no prefix.
type Dumper struct {
	Prefix string
	Groups []int
	Width  int
}

func (d *Dumper) width() int {
	if d.Width > 0 {
		return d.Width
	}
	return 16
}

func (d *Dumper) groups() []int {
	if len(d.Groups) > 0 {
		return d.Groups
	}
	return []int{2, 4}
}

// Dump renders every line of data.
func (d *Dumper) Dump(data []byte) string {
	return d.render(data, 0, false)
}

// Fold renders data with runs of identical lines collapsed into a
// "***" marker.
func (d *Dumper) Fold(data []byte) string {
	return d.render(data, 0, true)
}

// Snip renders at most maxLines lines: a folded head, a "..." marker
// naming the hidden byte count, and the last three lines. Inputs that
// fit are rendered in full.
func (d *Dumper) Snip(data []byte, maxLines int) string {
	return d.render(data, maxLines, true)
}

// Lines returns the number of lines a full dump of data occupies.
func (d *Dumper) Lines(data []byte) int {
	w := d.width()
	return (len(data) + w - 1) / w
}

func (d *Dumper) render(data []byte, snip int, foldDups bool) string {
	w := d.width()
	total := d.Lines(data)

	head := total
	if snip > 0 && total > snip {
		// Leave room for the marker and a three-line tail.
		head = snip - 4
		if head < 0 {
			head = 0
		}
	}

	var lines []string
	var last []byte
	dups := 0
	emitted := 0

	flushDups := func() {
		if dups > 0 {
			lines = append(lines, fmt.Sprintf("%s***    [0x%x duplicate lines]", d.Prefix, dups))
			dups = 0
		}
	}

	i := 0
	for ; i < total && emitted < head; i++ {
		end := (i + 1) * w
		if end > len(data) {
			end = len(data)
		}
		chunk := data[i*w : end]

		if foldDups && last != nil && bytes.Equal(chunk, last) {
			dups++
			continue
		}
		flushDups()
		lines = append(lines, d.formatLine(i*w, chunk))
		emitted++
		last = chunk
	}
	flushDups()

	if i < total {
		tail := 3
		if total-i <= tail {
			tail = total - i
		}
		hidden := (total - i - tail) * w
		if hidden > 0 {
			lines = append(lines, fmt.Sprintf("%s...    [0x%x hidden bytes]", d.Prefix, hidden))
		}
		for j := total - tail; j < total; j++ {
			end := (j + 1) * w
			if end > len(data) {
				end = len(data)
			}
			lines = append(lines, d.formatLine(j*w, data[j*w:end]))
		}
	}

	return strings.Join(lines, "\n")
}

func (d *Dumper) formatLine(offset int, chunk []byte) string {
	w := d.width()
	var hexPart strings.Builder
	for i := 0; i < w; i++ {
		if i > 0 {
			for s := d.sepWidth(i); s > 0; s-- {
				hexPart.WriteByte(' ')
			}
		}
		if i < len(chunk) {
			fmt.Fprintf(&hexPart, "%02x", chunk[i])
		} else {
			hexPart.WriteString("  ")
		}
	}

	var asc strings.Builder
	for _, b := range chunk {
		if b >= 32 && b < 127 {
			asc.WriteByte(b)
		} else {
			asc.WriteByte('.')
		}
	}

	return fmt.Sprintf("%s%06x| %s |%-*s|", d.Prefix, offset, hexPart.String(), w, asc.String())
}

// sepWidth returns the number of spaces preceding byte i of a line.
func (d *Dumper) sepWidth(i int) int {
	n := 0
	prod := 1
	for _, g := range d.groups() {
		if g <= 0 {
			break
		}
		prod *= g
		if i%prod == 0 {
			n++
		}
	}
	return n
}

// Dump renders data with the default layout.
func Dump(data []byte) string {
	var d Dumper
	return d.Dump(data)
}
