package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abcd...", TruncateString("abcdefghij", 7))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
	assert.Equal(t, "héll...", TruncateString("héllo wörld", 7))
}

func TestFormatShown(t *testing.T) {
	assert.Equal(t, "1,234 rows", FormatShown(1234, 1234))
	assert.Equal(t, "12/1,234 rows", FormatShown(12, 1234))
}

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "a b c d", SingleLine("a\nb\tc\r\nd"))
	assert.Equal(t, "plain", SingleLine("plain"))
}
