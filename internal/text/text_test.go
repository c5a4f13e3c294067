package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// byteWidth treats every byte as one point wide
func byteWidth(s string) float64 { return float64(len(s)) }

func TestSplitTextToLines(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width float64
		want  []string
	}{
		{"fits", "aaa bbb", 10, []string{"aaa bbb"}},
		{"wraps", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"long word kept whole", "abcdefghij xy", 5, []string{"abcdefghij", "xy"}},
		{"newlines", "one\n\ntwo", 20, []string{"one", "", "two"}},
		{"collapses spaces", "a    b", 10, []string{"a b"}},
		{"blank", "   ", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTextToLines(tt.in, tt.width, byteWidth))
		})
	}

	assert.Equal(t, []string{"a b", "c"}, SplitTextToLines("a b\nc", 0, byteWidth))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10, byteWidth))
	assert.Equal(t, "hello...", Truncate("hello world", 8, byteWidth))
	assert.Equal(t, Ellipsis, Truncate("hello world", 2, byteWidth))
	assert.Equal(t, "anything", Truncate("anything", 1, nil))
}

func TestClampLines(t *testing.T) {
	lines := []string{"one", "two", "three"}
	assert.Equal(t, lines, ClampLines(lines, 3, 100, byteWidth))
	assert.Equal(t, []string{"one", "two..."}, ClampLines(lines, 2, 100, byteWidth))
	assert.Equal(t, []string{"on..."}, ClampLines(lines, 1, 5, byteWidth))
	assert.Nil(t, ClampLines(lines, 0, 100, byteWidth))
	assert.Equal(t, "three", lines[2])
}

func TestToWinAnsi(t *testing.T) {
	assert.Equal(t, "plain", ToWinAnsi("plain"))
	assert.Equal(t, "caf\xe9", ToWinAnsi("café"))
	assert.Equal(t, "\x80", ToWinAnsi("€"))
	assert.NotContains(t, ToWinAnsi("日本"), "日")
}
