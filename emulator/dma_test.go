package emulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromIndex(t *testing.T) {
	for i := uint32(0); i < 7; i++ {
		port, err := PortFromIndex(i)
		require.NoError(t, err)
		assert.Equal(t, Port(i), port)
	}

	_, err := PortFromIndex(7)
	assert.True(t, errors.Is(err, ErrDmaRegister))
}

func TestPortString(t *testing.T) {
	assert.Equal(t, "GPU", PORT_GPU.String())
	assert.Equal(t, "OTC", PORT_OTC.String())
	assert.Equal(t, "port 9", Port(9).String())
}

func TestDmaReset(t *testing.T) {
	dma := NewDMA()

	v, err := dma.Register(0x70)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x07654321), v)

	v, err = dma.Register(0x74)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)

	for port := PORT_MDEC_IN; port <= PORT_OTC; port++ {
		assert.False(t, dma.Channel(port).Active())
	}
}

func TestDmaChannelRegisters(t *testing.T) {
	dma := NewDMA()

	for major := uint32(0); major < 7; major++ {
		base := major << 4

		trigger, err := dma.SetRegister(base+0x0, 0x00100000+major)
		require.NoError(t, err)
		assert.False(t, trigger.Triggered)

		trigger, err = dma.SetRegister(base+0x4, 0x00020000+major)
		require.NoError(t, err)
		assert.False(t, trigger.Triggered)

		// enabled but not triggered in manual mode
		trigger, err = dma.SetRegister(base+0x8, 0x01000000)
		require.NoError(t, err)
		assert.False(t, trigger.Triggered)
		assert.Equal(t, Port(major), trigger.Port)
	}

	for major := uint32(0); major < 7; major++ {
		base := major << 4

		v, err := dma.Register(base + 0x0)
		require.NoError(t, err)
		assert.Equal(t, 0x00100000+major, v)

		v, err = dma.Register(base + 0x4)
		require.NoError(t, err)
		assert.Equal(t, 0x00020000+major, v)

		v, err = dma.Register(base + 0x8)
		require.NoError(t, err)
		assert.Equal(t, uint32(0x01000000), v)
	}
}

func TestDmaTrigger(t *testing.T) {
	dma := NewDMA()

	trigger, err := dma.SetRegister(0x28, 0x11000001)
	require.NoError(t, err)
	assert.Equal(t, DmaTrigger{Port: PORT_GPU, Triggered: true}, trigger)

	// rewriting any register of an active channel reports it again
	trigger, err = dma.SetRegister(0x24, 0x10)
	require.NoError(t, err)
	assert.Equal(t, DmaTrigger{Port: PORT_GPU, Triggered: true}, trigger)

	trigger, err = dma.SetRegister(0x68, 0x01000200)
	require.NoError(t, err)
	assert.Equal(t, DmaTrigger{Port: PORT_OTC, Triggered: true}, trigger)
}

func TestDmaCommonRegisters(t *testing.T) {
	dma := NewDMA()

	trigger, err := dma.SetRegister(0x70, 0x12345678)
	require.NoError(t, err)
	assert.False(t, trigger.Triggered)

	trigger, err = dma.SetRegister(0x74, 0xff8f803f)
	require.NoError(t, err)
	assert.False(t, trigger.Triggered)

	v, err := dma.Register(0x70)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	// the interrupt register is sent back untouched
	v, err = dma.Register(0x74)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xff8f803f), v)

	assert.True(t, dma.IrqEnabled())
	assert.True(t, dma.ForceIrq())
	assert.True(t, dma.ChannelIrqEnabled(PORT_MDEC_IN))
	assert.True(t, dma.ChannelIrqEnabled(PORT_CDROM))
	assert.False(t, dma.ChannelIrqEnabled(PORT_SPU))
	assert.True(t, dma.ChannelIrqFlag(PORT_OTC))
}

func TestDmaInvalidRegister(t *testing.T) {
	dma := NewDMA()

	for _, offset := range []uint32{0x0c, 0x1c, 0x2c, 0x6c, 0x78, 0x7c, 0x01, 0x09} {
		_, err := dma.Register(offset)
		assert.True(t, errors.Is(err, ErrDmaRegister), "read 0x%x", offset)

		_, err = dma.SetRegister(offset, 0)
		assert.True(t, errors.Is(err, ErrDmaRegister), "write 0x%x", offset)
	}
}

func TestDmaRegisterPortDecode(t *testing.T) {
	dma := NewDMA()

	for major := uint32(0); major < 7; major++ {
		port, err := PortFromIndex(major)
		require.NoError(t, err)

		_, err = dma.SetRegister(major<<4, 0x1000*(major+1))
		require.NoError(t, err)
		assert.Equal(t, 0x1000*(major+1), dma.Channel(port).Base, "port %s", port)
	}
}
