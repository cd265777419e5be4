package hexdump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultLineLayout(t *testing.T) {
	data := make([]byte, 16)
	for i := range data {
		data[i] = byte(i)
	}
	require.Equal(t,
		"000000| 0001 0203 0405 0607  0809 0a0b 0c0d 0e0f |................|",
		Dump(data))
}

func TestPartialLinePadded(t *testing.T) {
	got := Dump([]byte("abcd"))
	want := "000000| 6162 6364" + strings.Repeat(" ", 31) + " |abcd            |"
	require.Equal(t, want, got)
}

func TestCustomWidthAndGroups(t *testing.T) {
	d := Dumper{Width: 4, Groups: []int{1}}
	require.Equal(t, "000000| 61 62 63 64 |abcd|", d.Dump([]byte("abcd")))
}

func TestMultilineOffsets(t *testing.T) {
	d := Dumper{Width: 4, Groups: []int{1}}
	got := strings.Split(d.Dump(make([]byte, 12)), "\n")
	require.Len(t, got, 3)
	require.True(t, strings.HasPrefix(got[0], "000000|"))
	require.True(t, strings.HasPrefix(got[1], "000004|"))
	require.True(t, strings.HasPrefix(got[2], "000008|"))
}

func TestAsciiColumn(t *testing.T) {
	d := Dumper{Width: 4, Groups: []int{1}}
	got := d.Dump([]byte{'A', 0x00, 0x7f, '~'})
	require.Contains(t, got, "|A..~|")
}

func TestPrefix(t *testing.T) {
	d := Dumper{Width: 4, Groups: []int{1}, Prefix: "  "}
	got := d.Dump([]byte("abcd"))
	require.Equal(t, "  000000| 61 62 63 64 |abcd|", got)
}

func TestFoldDuplicateLines(t *testing.T) {
	d := Dumper{Width: 4, Groups: []int{1}}
	data := append(make([]byte, 12), 1, 2, 3, 4)

	lines := strings.Split(d.Fold(data), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "000000|"))
	require.Equal(t, "***    [0x2 duplicate lines]", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "00000c|"))
}

func TestFoldNothingToFold(t *testing.T) {
	d := Dumper{Width: 4, Groups: []int{1}}
	data := []byte{0, 0, 0, 0, 1, 1, 1, 1}
	require.Equal(t, d.Dump(data), d.Fold(data))
}

func TestSnipLongInput(t *testing.T) {
	d := Dumper{Width: 4, Groups: []int{1}}
	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(i) // no duplicate lines
	}

	lines := strings.Split(d.Snip(data, 8), "\n")
	require.Len(t, lines, 8)
	require.True(t, strings.HasPrefix(lines[3], "00000c|"))
	require.Equal(t, "...    [0xc hidden bytes]", lines[4])
	require.True(t, strings.HasPrefix(lines[5], "00001c|"))
	require.True(t, strings.HasPrefix(lines[7], "000024|"))
}

func TestSnipShortInputUntouched(t *testing.T) {
	d := Dumper{Width: 4, Groups: []int{1}}
	data := make([]byte, 16)
	require.Equal(t, d.Dump(data), d.Snip(data, 10))
}

func TestLines(t *testing.T) {
	var d Dumper
	require.Equal(t, 0, d.Lines(nil))
	require.Equal(t, 1, d.Lines(make([]byte, 1)))
	require.Equal(t, 1, d.Lines(make([]byte, 16)))
	require.Equal(t, 2, d.Lines(make([]byte, 17)))
}
