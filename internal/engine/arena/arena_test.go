package arena

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildp/treenote/internal/engine/utf8x"
)

func TestAppendASCII(t *testing.T) {
	a := New()
	e, consumed := a.Append("hello\nworld")
	assert.Equal(t, 6, consumed) // "hello\n"
	assert.Equal(t, 5, e.DispLen)
	assert.Equal(t, 5, e.ByteLen)
	assert.True(t, e.ASCII())
	assert.Equal(t, "hello", a.Slice(e.Start, e.ByteLen))
}

func TestAppendMultibyte(t *testing.T) {
	a := New()
	e, consumed := a.Append("héllo")
	assert.Equal(t, len("héllo"), consumed)
	assert.Equal(t, 5, e.DispLen)
	assert.Equal(t, len("héllo"), e.ByteLen)
	assert.False(t, e.ASCII())
	assert.Equal(t, "héllo", a.Slice(e.Start, e.ByteLen))
}

func TestAppendNoDelimiter(t *testing.T) {
	a := New()
	e, consumed := a.Append("nolf")
	assert.Equal(t, 4, consumed)
	assert.Equal(t, 4, e.DispLen)
}

func TestAppendNULDelimiter(t *testing.T) {
	a := New()
	e, consumed := a.Append("abc\x00def")
	assert.Equal(t, 4, consumed)
	assert.Equal(t, 3, e.DispLen)
}

func TestArenaSpansBlocks(t *testing.T) {
	a := New()
	// Force the append to straddle multiple BlockSize-byte blocks.
	text := strings.Repeat("x", BlockSize*2+17)
	e, _ := a.Append(text)
	require.Equal(t, len(text), e.ByteLen)
	assert.Equal(t, text, a.Slice(e.Start, e.ByteLen))
}

func TestViewRangeASCII(t *testing.T) {
	a := New()
	e1, _ := a.Append("hello\n")
	e2, _ := a.Append("world")
	line := []Entry{e1, e2}

	assert.Equal(t, "helloworld", a.View(line))
	assert.Equal(t, "loworl", ViewRange(a, line, 3, 6))
	assert.Equal(t, "", ViewRange(a, line, 3, 0))
}

func TestViewRangeMultibyte(t *testing.T) {
	a := New()
	e, _ := a.Append("héllo wörld")
	line := []Entry{e}

	assert.Equal(t, "llo", ViewRange(a, line, 2, 3))
	assert.Equal(t, "wörld", ViewRange(a, line, 6, 5))
}

func TestByteAtOutOfRange(t *testing.T) {
	a := New()
	a.Append("abc")
	_, ok := a.ByteAt(-1)
	assert.False(t, ok)
	_, ok = a.ByteAt(a.Len())
	assert.False(t, ok)
}

func TestAppendInvalidUTF8SubstitutesReplacementChar(t *testing.T) {
	a := New()
	// A 3-byte lead followed by two non-continuation bytes: the whole
	// declared 3-byte run is swallowed into a single replacement character.
	e, consumed := a.Append(string([]byte{0xE0, 0x41, 0x42}))
	assert.Equal(t, 3, consumed)
	assert.Equal(t, 1, e.DispLen)
	assert.Equal(t, len(utf8x.ReplacementChar), e.ByteLen)
	assert.Equal(t, utf8x.ReplacementChar, a.Slice(e.Start, e.ByteLen))
}

func TestAppendInvalidUTF8FollowedByValidChar(t *testing.T) {
	a := New()
	e, consumed := a.Append(string([]byte{0xE0, 0x41, 0x42, 'B'}))
	assert.Equal(t, 4, consumed)
	assert.Equal(t, 2, e.DispLen)
	assert.Equal(t, utf8x.ReplacementChar+"B", a.Slice(e.Start, e.ByteLen))
}

func TestEntryAdjoins(t *testing.T) {
	a := New()
	e1, _ := a.Append("abc\n")
	e2, _ := a.Append("def")
	assert.True(t, e1.Adjoins(e2))
	assert.False(t, e2.Adjoins(e1))
}
