package emulator

var (
	// Main RAM, 2MB
	RAM_RANGE = NewRange(0x00000000, RAM_SIZE_BYTES)
	// Expansion region 1
	EXPANSION_1 = NewRange(0x1f000000, 512*1024)
	// The range of the BIOS in the system memory
	BIOS_RANGE = NewRange(0x1fc00000, BIOS_SIZE)
	// Memory latency and expansion mapping (also known as SYSCONTROL)
	MEM_CONTROL = NewRange(0x1f801000, 36)
	// Register that has something to do with RAM configuration, configured by the BIOS
	RAM_SIZE = NewRange(0x1f801060, 4)
	// Interrupt control registers (status and mask)
	IRQ_CONTROL = NewRange(0x1f801070, 8)
	// Direct Memory Access registers
	DMA_RANGE = NewRange(0x1f801080, 0x80)
	// Root counters
	TIMERS = NewRange(0x1f801100, 0x30)
	// GP0/GPUREAD and GP1/GPUSTAT
	GPU_RANGE = NewRange(0x1f801810, 8)
	// SPU registers
	SPU_RANGE = NewRange(0x1f801c00, 640)
	// Expansion region 2
	EXPANSION_2 = NewRange(0x1f802000, 66)
	// Cache control register, full address since it's in KSEG2
	CACHE_CONTROL = NewRange(0xfffe0130, 4)
)

// Mask array used to strip the region bits of the address. The mask is
// selected using the 3 MSBs of the address so each entry matches 512MB of
// the address space. KSEG2 is not touched since it doesn't share anything
// with the other regions
var REGION_MASK = [8]uint32{
	0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, // KUSEG: 2048MB
	0x7fffffff,                                     // KSEG0: 512MB
	0x1fffffff,                                     // KSEG1: 512MB
	0xffffffff, 0xffffffff,                         // KSEG2: 1024MB
}

// Masks a CPU address to remove the region bits
func MaskRegion(addr uint32) uint32 {
	return addr & REGION_MASK[addr>>29]
}

type Range struct {
	Start  uint32 // Start address
	Length uint32 // Length of the mapping
}

func NewRange(start uint32, length uint32) Range {
	return Range{Start: start, Length: length}
}

// Returns the offset of `addr` inside the range. `ok` is false if the
// range does not contain the address
func (r Range) Contains(addr uint32) (offset uint32, ok bool) {
	// compare in 64 bits, the cache control range ends at the top of
	// the address space
	if addr >= r.Start && uint64(addr) < uint64(r.Start)+uint64(r.Length) {
		return addr - r.Start, true
	}
	return 0, false
}
