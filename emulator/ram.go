package emulator

const (
	RAM_SIZE_BYTES = 2 * 1024 * 1024 // Main PlayStation RAM: 2MB
	// Mask of a word-aligned address inside the RAM window. The DMA wraps
	// around the 2MB and ignores the two LSBs
	RAM_DMA_MASK = 0x1ffffc
)

type RAM struct {
	Data [RAM_SIZE_BYTES]byte // RAM buffer
}

// Creates a new RAM instance filled with garbage values
func NewRAM() *RAM {
	ram := &RAM{}
	for i := 0; i < len(ram.Data); i++ {
		ram.Data[i] = 0xcd
	}
	return ram
}

// Loads a little endian value of `width` bytes at `offset`. The value is
// zero-extended to 32 bits
func (ram *RAM) Load(offset uint32, width AccessWidth) uint32 {
	var v uint32
	for i := uint32(0); i < uint32(width); i++ {
		v |= uint32(ram.Data[(offset+i)&(RAM_SIZE_BYTES-1)]) << (i * 8)
	}
	return v
}

// Stores the `width` low bytes of `val` into `offset`
func (ram *RAM) Store(offset uint32, width AccessWidth, val uint32) {
	for i := uint32(0); i < uint32(width); i++ {
		ram.Data[(offset+i)&(RAM_SIZE_BYTES-1)] = byte(val >> (i * 8))
	}
}

// Load a 32 bit little endian word at `offset`
func (ram *RAM) Load32(offset uint32) uint32 {
	return ram.Load(offset, ACCESS_WORD)
}

// Load a 16 bit little endian value at `offset`
func (ram *RAM) Load16(offset uint32) uint16 {
	return uint16(ram.Load(offset, ACCESS_HALFWORD))
}

// Fetches the byte at `offset`
func (ram *RAM) Load8(offset uint32) byte {
	return byte(ram.Load(offset, ACCESS_BYTE))
}

// Store a 32 bit little endian word `val` into `offset`
func (ram *RAM) Store32(offset, val uint32) {
	ram.Store(offset, ACCESS_WORD, val)
}

// Stores a 16 bit little endian value into `offset`
func (ram *RAM) Store16(offset uint32, val uint16) {
	ram.Store(offset, ACCESS_HALFWORD, uint32(val))
}

// Sets the byte at `offset`
func (ram *RAM) Store8(offset uint32, val byte) {
	ram.Store(offset, ACCESS_BYTE, uint32(val))
}
