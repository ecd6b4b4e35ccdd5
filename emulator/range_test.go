package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskRegionIdempotent(t *testing.T) {
	for a := uint64(0); a <= 0xffffffff; a += 0x00fedcb3 {
		addr := uint32(a)
		masked := MaskRegion(addr)
		assert.Equal(t, masked, MaskRegion(masked), "0x%08x", addr)
	}
	// region boundaries
	for _, addr := range []uint32{0x7fffffff, 0x80000000, 0x9fffffff, 0xa0000000, 0xbfffffff, 0xc0000000, 0xffffffff} {
		masked := MaskRegion(addr)
		assert.Equal(t, masked, MaskRegion(masked), "0x%08x", addr)
	}
}

func TestMaskRegionMirrors(t *testing.T) {
	for a := uint32(0); a < RAM_SIZE_BYTES; a += 0x3f1 {
		assert.Equal(t, a, MaskRegion(a))
		assert.Equal(t, a, MaskRegion(a+0x80000000))
		assert.Equal(t, a, MaskRegion(a+0xa0000000))

		for _, mirror := range []uint32{a, a + 0x80000000, a + 0xa0000000} {
			offset, ok := RAM_RANGE.Contains(MaskRegion(mirror))
			assert.True(t, ok)
			assert.Equal(t, a, offset)
		}
	}
}

func TestMaskRegionKSEG2(t *testing.T) {
	assert.Equal(t, uint32(0xfffe0130), MaskRegion(0xfffe0130))
	assert.Equal(t, uint32(0xc0000000), MaskRegion(0xc0000000))
	assert.Equal(t, uint32(0x1fc00000), MaskRegion(0xbfc00000))
	assert.Equal(t, uint32(0x1fc00000), MaskRegion(0x9fc00000))
}

func TestRangeContains(t *testing.T) {
	ranges := []Range{
		RAM_RANGE, EXPANSION_1, BIOS_RANGE, MEM_CONTROL, RAM_SIZE, IRQ_CONTROL,
		DMA_RANGE, TIMERS, GPU_RANGE, SPU_RANGE, EXPANSION_2, CACHE_CONTROL,
		NewRange(0x1000, 0x10),
	}

	for _, r := range ranges {
		offset, ok := r.Contains(r.Start)
		assert.True(t, ok)
		assert.Equal(t, uint32(0), offset)

		offset, ok = r.Contains(r.Start + r.Length - 1)
		assert.True(t, ok)
		assert.Equal(t, r.Length-1, offset)

		_, ok = r.Contains(r.Start + r.Length)
		assert.False(t, ok, "0x%08x", r.Start+r.Length)

		if r.Start > 0 {
			_, ok = r.Contains(r.Start - 1)
			assert.False(t, ok, "0x%08x", r.Start-1)
		}
	}
}

func TestRangeLiterals(t *testing.T) {
	assert.Equal(t, Range{0x00000000, 2097152}, RAM_RANGE)
	assert.Equal(t, Range{0x1f000000, 524288}, EXPANSION_1)
	assert.Equal(t, Range{0x1fc00000, 524288}, BIOS_RANGE)
	assert.Equal(t, Range{0x1f801000, 36}, MEM_CONTROL)
	assert.Equal(t, Range{0x1f801060, 4}, RAM_SIZE)
	assert.Equal(t, Range{0x1f801070, 8}, IRQ_CONTROL)
	assert.Equal(t, Range{0x1f801080, 128}, DMA_RANGE)
	assert.Equal(t, Range{0x1f801100, 48}, TIMERS)
	assert.Equal(t, Range{0x1f801810, 8}, GPU_RANGE)
	assert.Equal(t, Range{0x1f801c00, 640}, SPU_RANGE)
	assert.Equal(t, Range{0x1f802000, 66}, EXPANSION_2)
	assert.Equal(t, Range{0xfffe0130, 4}, CACHE_CONTROL)
}
