package emulator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBIOS(t *testing.T) {
	data := make([]byte, BIOS_SIZE)
	data[0] = 0x13
	data[1] = 0x00
	data[2] = 0x08
	data[3] = 0x3c
	data[BIOS_SIZE-1] = 0xaa

	bios, err := LoadBIOS(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, uint32(0x3c080013), bios.Load32(0))
	assert.Equal(t, uint32(0x0013), bios.Load(0, ACCESS_HALFWORD))
	assert.Equal(t, byte(0xaa), bios.Load8(BIOS_SIZE-1))
}

func TestLoadBIOSInvalidSize(t *testing.T) {
	tests := []struct {
		name string
		size uint32
	}{
		{"empty", 0},
		{"short", BIOS_SIZE - 1},
		{"long", BIOS_SIZE + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBIOS(bytes.NewReader(make([]byte, tt.size)))
			assert.ErrorContains(t, err, "invalid BIOS size")
		})
	}
}
