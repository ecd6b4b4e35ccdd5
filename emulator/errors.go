package emulator

import (
	"errors"
	"fmt"
)

// Conditions that halt the emulator. They are reached only when the emulated
// software (or the emulator) does something the bus model doesn't handle
var (
	ErrUnmapped             = errors.New("unmapped address")
	ErrAccessWidth          = errors.New("unsupported access width")
	ErrDmaRegister          = errors.New("unhandled DMA register")
	ErrDmaSyncMode          = errors.New("unknown DMA sync mode")
	ErrDmaPort              = errors.New("unhandled DMA port")
	ErrDmaDirection         = errors.New("invalid DMA direction")
	ErrDmaTransferSize      = errors.New("couldn't figure out DMA block transfer size")
	ErrExpansionBase        = errors.New("bad expansion base address")
	ErrGpuRegister          = errors.New("unhandled GPU register")
	ErrUnhandledInstruction = errors.New("unhandled instruction")
	ErrBreakpoint           = errors.New("debugger stop")
)

// BusError describes the access that led to a fatal condition
type BusError struct {
	Op    string      // "load" or "store"
	Addr  uint32      // Address as issued by the CPU
	Width AccessWidth // Access width
	Value uint32      // Stored value, zero-extended
	Err   error       // One of the Err* sentinels
}

func (e *BusError) Error() string {
	if e.Op == "store" {
		return fmt.Sprintf("%s %s at 0x%08x (0x%08x): %v", e.Width, e.Op, e.Addr, e.Value, e.Err)
	}
	return fmt.Sprintf("%s %s at 0x%08x: %v", e.Width, e.Op, e.Addr, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// Wraps a sentinel with a formatted detail message, keeping it matchable
// with errors.Is
func errorf(sentinel error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, a...))
}
