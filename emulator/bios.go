package emulator

import (
	"fmt"
	"io"
)

const BIOS_SIZE uint32 = 512 * 1024 // BIOS images are always 512KB in length

// This stores the raw BIOS data
type BIOS struct {
	Data []byte // Raw BIOS data
}

// Loads a BIOS from a reader. Note that the BIOS must be 512 * 1024
// bytes in size
func LoadBIOS(r io.Reader) (*BIOS, error) {
	data := make([]byte, BIOS_SIZE+1)
	n, err := io.ReadFull(r, data)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return nil, fmt.Errorf("invalid BIOS size (expected %d, got 0 (bytes))", BIOS_SIZE)
		}
		return nil, err
	}
	if n != int(BIOS_SIZE) {
		if n > int(BIOS_SIZE) {
			return nil, fmt.Errorf("invalid BIOS size (expected %d bytes, got more)", BIOS_SIZE)
		}
		return nil, fmt.Errorf("invalid BIOS size (expected %d, got %d (bytes))", BIOS_SIZE, n)
	}
	// success
	return &BIOS{Data: data[:BIOS_SIZE]}, nil
}

// Returns a little endian value of `width` bytes at `offset`. Note that
// `offset` is not the absolute address used by the CPU, instead it is an
// offset in the BIOS memory range
func (bios *BIOS) Load(offset uint32, width AccessWidth) uint32 {
	var v uint32
	for i := uint32(0); i < uint32(width); i++ {
		v |= uint32(bios.Data[(offset+i)&(BIOS_SIZE-1)]) << (i * 8)
	}
	return v
}

// Returns a 32 bit little endian value at `offset`
func (bios *BIOS) Load32(offset uint32) uint32 {
	return bios.Load(offset, ACCESS_WORD)
}

// Fetch byte at `offset`
func (bios *BIOS) Load8(offset uint32) byte {
	return byte(bios.Load(offset, ACCESS_BYTE))
}
