package emulator

// Types of accesses supported by the PlayStation architecture
type AccessWidth uint32

const (
	ACCESS_BYTE     AccessWidth = 1 // 8 bit
	ACCESS_HALFWORD AccessWidth = 2 // 16 bit
	ACCESS_WORD     AccessWidth = 4 // 32 bit
)

func (w AccessWidth) String() string {
	switch w {
	case ACCESS_BYTE:
		return "byte"
	case ACCESS_HALFWORD:
		return "halfword"
	case ACCESS_WORD:
		return "word"
	}
	return "invalid"
}

// Mask covering the bits an access of this width can carry
func (w AccessWidth) Mask() uint32 {
	switch w {
	case ACCESS_BYTE:
		return 0xff
	case ACCESS_HALFWORD:
		return 0xffff
	}
	return 0xffffffff
}

// An 8 bit bus value
type Byte uint8

// A 16 bit bus value
type Halfword uint16

// A 32 bit bus value
type Word uint32

func (Byte) Width() AccessWidth     { return ACCESS_BYTE }
func (Halfword) Width() AccessWidth { return ACCESS_HALFWORD }
func (Word) Width() AccessWidth     { return ACCESS_WORD }

// Returns the value zero-extended to 32 bits
func (v Byte) AsU32() uint32     { return uint32(v) }
func (v Halfword) AsU32() uint32 { return uint32(v) }
func (v Word) AsU32() uint32     { return uint32(v) }

// Addressable is the closed set of values a load or store can move over
// the bus
type Addressable interface {
	Byte | Halfword | Word
	Width() AccessWidth
	AsU32() uint32
}

// Builds an Addressable value from a 32 bit value. For 8 and 16 bit
// values the high bits are discarded
func FromU32[T Addressable](v uint32) T {
	return T(v)
}

// Returns the access width of `T`
func WidthOf[T Addressable]() AccessWidth {
	var v T
	return v.Width()
}
