package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var sampleValues = []uint32{0, 1, 0x7f, 0x80, 0xff, 0x100, 0x1234, 0x8000, 0xffff, 0x10000, 0xdeadbeef, 0x80000000, 0xffffffff}

func TestWidthOf(t *testing.T) {
	assert.Equal(t, ACCESS_BYTE, WidthOf[Byte]())
	assert.Equal(t, ACCESS_HALFWORD, WidthOf[Halfword]())
	assert.Equal(t, ACCESS_WORD, WidthOf[Word]())

	assert.EqualValues(t, 1, WidthOf[Byte]())
	assert.EqualValues(t, 2, WidthOf[Halfword]())
	assert.EqualValues(t, 4, WidthOf[Word]())
}

func roundTrip[T Addressable](t *testing.T) {
	width := WidthOf[T]()
	for _, v := range sampleValues {
		narrowed := FromU32[T](v)
		assert.Equal(t, v&width.Mask(), narrowed.AsU32(), "%s 0x%x", width, v)
		assert.Equal(t, narrowed, FromU32[T](narrowed.AsU32()), "%s 0x%x", width, v)
	}
}

func TestAddressableRoundTrip(t *testing.T) {
	roundTrip[Byte](t)
	roundTrip[Halfword](t)
	roundTrip[Word](t)
}

func TestFromU32Truncates(t *testing.T) {
	assert.Equal(t, Byte(0xef), FromU32[Byte](0xdeadbeef))
	assert.Equal(t, Halfword(0xbeef), FromU32[Halfword](0xdeadbeef))
	assert.Equal(t, Word(0xdeadbeef), FromU32[Word](0xdeadbeef))
}

func TestAccessWidthString(t *testing.T) {
	assert.Equal(t, "byte", ACCESS_BYTE.String())
	assert.Equal(t, "halfword", ACCESS_HALFWORD.String())
	assert.Equal(t, "word", ACCESS_WORD.String())
	assert.Equal(t, "invalid", AccessWidth(3).String())
}
