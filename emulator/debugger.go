package emulator

import "log"

type Debugger struct {
	Breakpoints      []uint32    // All breakpoint addresses
	ReadWatchpoints  []uint32    // All read watchpoints
	WriteWatchpoints []uint32    // All write watchpoints
	Log              *log.Logger // Where hits are reported

	// PC of the last breakpoint hit. The next fetch at this address
	// doesn't stop again so execution can resume
	resumePc    uint32
	resumeValid bool
}

func NewDebugger() *Debugger {
	return &Debugger{Log: log.Default()}
}

func addAddr(list []uint32, addr uint32) []uint32 {
	for _, a := range list {
		if a == addr {
			return list
		}
	}
	return append(list, addr)
}

func deleteAddr(list []uint32, addr uint32) []uint32 {
	for idx, a := range list {
		if a == addr {
			return append(list[:idx], list[idx+1:]...)
		}
	}
	return list
}

func containsAddr(list []uint32, addr uint32) bool {
	for _, a := range list {
		if a == addr {
			return true
		}
	}
	return false
}

// Adds a breakpoint when the instruction at `addr` is about to be executed
func (debugger *Debugger) AddBreakpoint(addr uint32) {
	debugger.Breakpoints = addAddr(debugger.Breakpoints, addr)
}

// Deletes a breakpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteBreakpoint(addr uint32) {
	debugger.Breakpoints = deleteAddr(debugger.Breakpoints, addr)
}

// Adds a memory read watchpoint for `addr`
func (debugger *Debugger) AddReadWatchpoint(addr uint32) {
	debugger.ReadWatchpoints = addAddr(debugger.ReadWatchpoints, addr)
}

// Adds a memory write watchpoint for `addr`
func (debugger *Debugger) AddWriteWatchpoint(addr uint32) {
	debugger.WriteWatchpoints = addAddr(debugger.WriteWatchpoints, addr)
}

// Deletes a memory read watchpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteReadWatchpoint(addr uint32) {
	debugger.ReadWatchpoints = deleteAddr(debugger.ReadWatchpoints, addr)
}

// Deletes a memory write watchpoint at `addr`. Does nothing if it doesn't exist
func (debugger *Debugger) DeleteWriteWatchpoint(addr uint32) {
	debugger.WriteWatchpoints = deleteAddr(debugger.WriteWatchpoints, addr)
}

// Called by the CPU before fetching the instruction at `pc`
func (debugger *Debugger) changedPc(pc uint32) error {
	if debugger.resumeValid && debugger.resumePc == pc {
		debugger.resumeValid = false
		return nil
	}

	if containsAddr(debugger.Breakpoints, pc) {
		debugger.Log.Printf("debugger: reached breakpoint 0x%08x", pc)
		debugger.resumePc = pc
		debugger.resumeValid = true
		return errorf(ErrBreakpoint, "breakpoint at 0x%08x", pc)
	}
	return nil
}

// Called by the CPU when it's about to read a value from memory
func (debugger *Debugger) memoryRead(addr uint32) error {
	if containsAddr(debugger.ReadWatchpoints, addr) {
		debugger.Log.Printf("debugger: triggered read watchpoint 0x%08x", addr)
		return errorf(ErrBreakpoint, "read watchpoint at 0x%08x", addr)
	}
	return nil
}

// Called by the CPU when it's about to write a value to memory
func (debugger *Debugger) memoryWrite(addr uint32) error {
	if containsAddr(debugger.WriteWatchpoints, addr) {
		debugger.Log.Printf("debugger: triggered write watchpoint 0x%08x", addr)
		return errorf(ErrBreakpoint, "write watchpoint at 0x%08x", addr)
	}
	return nil
}
