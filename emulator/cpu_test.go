package emulator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Loads `program` in RAM at 0x1000 and points the CPU to it through KSEG0
func newTestCPU(program ...uint32) *CPU {
	inter := newTestInterconnect(&gp0Recorder{})
	for i, op := range program {
		inter.ram.Store32(0x1000+uint32(i)*4, op)
	}

	cpu := NewCPU(inter)
	cpu.SetPC(0x80001000)
	return cpu
}

func runSteps(t *testing.T, cpu *CPU, n int) {
	for i := 0; i < n; i++ {
		require.NoError(t, cpu.RunNextInstruction())
	}
}

func TestCPUReset(t *testing.T) {
	cpu := NewCPU(newTestInterconnect(&gp0Recorder{}))
	assert.Equal(t, uint32(0xbfc00000), cpu.PC)
	assert.Equal(t, uint32(0), cpu.Reg(0))
}

func TestCPUStoreCacheControl(t *testing.T) {
	cpu := newTestCPU(
		0x3c01fffe, // lui   $1, 0xfffe
		0x34020800, // ori   $2, $0, 0x0800
		0xac220130, // sw    $2, 0x130($1)
	)
	runSteps(t, cpu, 3)

	assert.True(t, cpu.Inter.CacheControl().ICacheEnabled())
	assert.Equal(t, uint32(0x8000100c), cpu.PC)
}

func TestCPULoadStoreWidths(t *testing.T) {
	cpu := newTestCPU(
		0x24020080, // addiu $2, $0, 0x80
		0xa0020100, // sb    $2, 0x100($0)
		0x80030100, // lb    $3, 0x100($0)
		0x90040100, // lbu   $4, 0x100($0)
		0x3c058000, // lui   $5, 0x8000
		0xa4a20200, // sh    $2, 0x200($5)
		0x94060200, // lhu   $6, 0x200($0)
		0x2407ffff, // addiu $7, $0, -1
		0xa4070300, // sh    $7, 0x300($0)
		0x84080300, // lh    $8, 0x300($0)
		0x8c090300, // lw    $9, 0x300($0)
	)
	runSteps(t, cpu, 11)

	assert.Equal(t, uint32(0xffffff80), cpu.Reg(3))
	assert.Equal(t, uint32(0x80), cpu.Reg(4))
	assert.Equal(t, uint32(0x80), cpu.Reg(6))
	assert.Equal(t, uint32(0xffffffff), cpu.Reg(7))
	assert.Equal(t, uint32(0xffffffff), cpu.Reg(8))
	// the upper halfword of the word is still RAM garbage
	assert.Equal(t, uint32(0xcdcdffff), cpu.Reg(9))
}

func TestCPUSpecial(t *testing.T) {
	cpu := newTestCPU(
		0x34020801, // ori   $2, $0, 0x0801
		0x00023900, // sll   $7, $2, 4
		0x00e24021, // addu  $8, $7, $2
		0x00e24825, // or    $9, $7, $2
		0x3049000f, // andi  $9, $2, 0x0f
	)
	runSteps(t, cpu, 5)

	assert.Equal(t, uint32(0x8010), cpu.Reg(7))
	assert.Equal(t, uint32(0x8811), cpu.Reg(8))
	assert.Equal(t, uint32(0x1), cpu.Reg(9))
}

func TestCPURegisterZero(t *testing.T) {
	cpu := newTestCPU(
		0x3c00ffff, // lui   $0, 0xffff
	)
	runSteps(t, cpu, 1)
	assert.Equal(t, uint32(0), cpu.Reg(0))
}

func TestCPUUnhandledInstruction(t *testing.T) {
	cpu := newTestCPU(0xfc000000)

	err := cpu.RunNextInstruction()
	assert.True(t, errors.Is(err, ErrUnhandledInstruction))
	assert.Contains(t, err.Error(), "0x80001000")
}

func TestCPUBusError(t *testing.T) {
	cpu := newTestCPU(
		0x3c011f20, // lui   $1, 0x1f20
		0xac200000, // sw    $0, 0($1)
	)
	runSteps(t, cpu, 1)

	err := cpu.RunNextInstruction()
	assert.True(t, errors.Is(err, ErrUnmapped))

	var busErr *BusError
	require.True(t, errors.As(err, &busErr))
	assert.Equal(t, uint32(0x1f200000), busErr.Addr)

	// fetching from an unmapped address fails as well
	cpu.SetPC(0x00400000)
	assert.True(t, errors.Is(cpu.RunNextInstruction(), ErrUnmapped))
}

func TestCPUBranchDelaySlots(t *testing.T) {
	cpu := newTestCPU(
		0x34020001, // 0x00: ori   $2, $0, 1
		0x14400002, // 0x04: bne   $2, $0, 0x10
		0x34030033, // 0x08: ori   $3, $0, 0x33 (delay slot)
		0x34040044, // 0x0c: ori   $4, $0, 0x44 (skipped)
		0x0c000408, // 0x10: jal   0x80001020
		0x34050055, // 0x14: ori   $5, $0, 0x55 (delay slot)
		0x10400005, // 0x18: beq   $2, $0, 0x30 (not taken)
		0x00000000, // 0x1c: nop
		0x03e00008, // 0x20: jr    $31
		0x34060066, // 0x24: ori   $6, $0, 0x66 (delay slot)
	)

	runSteps(t, cpu, 7)
	assert.Equal(t, uint32(0x33), cpu.Reg(3))
	assert.Equal(t, uint32(4), cpu.Reg(4))
	assert.Equal(t, uint32(0x55), cpu.Reg(5))
	assert.Equal(t, uint32(0x66), cpu.Reg(6))
	assert.Equal(t, uint32(0x80001018), cpu.Reg(31))
	assert.Equal(t, uint32(0x80001018), cpu.PC)

	runSteps(t, cpu, 2)
	assert.Equal(t, uint32(0x80001020), cpu.PC)
	assert.Equal(t, uint32(0x8000101c), cpu.CurrentPC)
}
