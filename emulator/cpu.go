package emulator

// CPU state. Only the instructions needed to drive the bus are decoded:
// no load delay slots, no coprocessors
type CPU struct {
	PC uint32 // Address of the next instruction to run
	// Address of the instruction after PC. It differs from PC+4 when the
	// instruction at PC is in the delay slot of a taken branch
	NextPC    uint32
	CurrentPC uint32        // Address of the instruction being executed
	Regs      [32]uint32    // General purpose registers. The first value must always be 0
	Inter     *Interconnect // Memory interface
	Debugger  *Debugger     // Optional debugger, consulted on every fetch and data access

	// Watchpoint hit during the current instruction, reported once the
	// instruction completed
	stop error
}

// Creates a new CPU state
func NewCPU(inter *Interconnect) *CPU {
	cpu := &CPU{Inter: inter}
	cpu.SetPC(0xbfc00000) // PC reset value at the beginning of the BIOS

	// initialize registers to 0..32 (the values are not initialized on reset,
	// so we can put some garbage in them. note that the first value should
	// always be zero)
	for i := 0; i < len(cpu.Regs); i++ {
		cpu.Regs[i] = uint32(i)
	}

	return cpu
}

// Jumps to `pc` outside of any delay slot
func (cpu *CPU) SetPC(pc uint32) {
	cpu.PC = pc
	cpu.NextPC = pc + 4
}

// Runs the instruction at the program counter and moves to the next one
func (cpu *CPU) RunNextInstruction() error {
	pc := cpu.PC

	if cpu.Debugger != nil {
		if err := cpu.Debugger.changedPc(pc); err != nil {
			return err
		}
	}

	// fetch instruction at PC
	word, err := cpu.Inter.Load32(pc)
	if err != nil {
		return err
	}

	// the instruction sees PC pointing to its delay slot, branches
	// overwrite NextPC
	cpu.CurrentPC = pc
	cpu.PC = cpu.NextPC
	cpu.NextPC += 4 // wraps around: 0xfffffffc + 4 = 0

	err = cpu.DecodeAndExecute(Instruction(word))
	stop := cpu.stop
	cpu.stop = nil
	if err != nil {
		return err
	}
	return stop
}

// Loads a value from memory on behalf of an instruction
func cpuLoad[T Addressable](cpu *CPU, addr uint32) (T, error) {
	if cpu.Debugger != nil && cpu.stop == nil {
		cpu.stop = cpu.Debugger.memoryRead(addr)
	}
	return Load[T](cpu.Inter, addr)
}

// Stores a value to memory on behalf of an instruction
func cpuStore[T Addressable](cpu *CPU, addr uint32, val T) error {
	if cpu.Debugger != nil && cpu.stop == nil {
		cpu.stop = cpu.Debugger.memoryWrite(addr)
	}
	return Store(cpu.Inter, addr, val)
}

// Decodes and executes an instruction
func (cpu *CPU) DecodeAndExecute(instruction Instruction) error {
	// http://problemkaputt.de/psx-spx.htm#cpuopcodeencoding
	switch instruction.Function() {
	case 0b000000:
		return cpu.decodeSpecial(instruction)
	case 0b000010: // Jump
		cpu.OpJ(instruction)
	case 0b000011: // Jump And Link
		cpu.OpJAL(instruction)
	case 0b000100: // Branch if Equal
		cpu.OpBEQ(instruction)
	case 0b000101: // Branch if Not Equal
		cpu.OpBNE(instruction)
	case 0b001001: // Add Immediate Unsigned
		cpu.OpADDIU(instruction)
	case 0b001100: // Bitwise And Immediate
		cpu.OpANDI(instruction)
	case 0b001101: // Bitwise Or Immediate
		cpu.OpORI(instruction)
	case 0b001111: // Load Upper Immediate
		cpu.OpLUI(instruction)
	case 0b100000: // Load Byte
		return cpu.OpLB(instruction)
	case 0b100001: // Load Halfword
		return cpu.OpLH(instruction)
	case 0b100011: // Load Word
		return cpu.OpLW(instruction)
	case 0b100100: // Load Byte Unsigned
		return cpu.OpLBU(instruction)
	case 0b100101: // Load Halfword Unsigned
		return cpu.OpLHU(instruction)
	case 0b101000: // Store Byte
		return cpu.OpSB(instruction)
	case 0b101001: // Store Halfword
		return cpu.OpSH(instruction)
	case 0b101011: // Store Word
		return cpu.OpSW(instruction)
	default:
		return errorf(ErrUnhandledInstruction, "0x%08x at 0x%08x", uint32(instruction), cpu.CurrentPC)
	}
	return nil
}

func (cpu *CPU) decodeSpecial(instruction Instruction) error {
	switch instruction.Subfunction() {
	case 0b000000: // Shift Left Logical
		cpu.OpSLL(instruction)
	case 0b001000: // Jump Register
		cpu.OpJR(instruction)
	case 0b100001: // Add Unsigned
		cpu.OpADDU(instruction)
	case 0b100101: // Bitwise Or
		cpu.OpOR(instruction)
	default:
		return errorf(ErrUnhandledInstruction, "0x%08x at 0x%08x", uint32(instruction), cpu.CurrentPC)
	}
	return nil
}

// Load Upper Immediate
func (cpu *CPU) OpLUI(instruction Instruction) {
	// low 16 bits are set to 0
	cpu.SetReg(instruction.T(), instruction.Imm()<<16)
}

// Bitwise Or Immediate
func (cpu *CPU) OpORI(instruction Instruction) {
	cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())|instruction.Imm())
}

// Bitwise And Immediate
func (cpu *CPU) OpANDI(instruction Instruction) {
	cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())&instruction.Imm())
}

// Add Immediate Unsigned (no overflow trap)
func (cpu *CPU) OpADDIU(instruction Instruction) {
	cpu.SetReg(instruction.T(), cpu.Reg(instruction.S())+instruction.ImmSE())
}

// Shift Left Logical
func (cpu *CPU) OpSLL(instruction Instruction) {
	cpu.SetReg(instruction.D(), cpu.Reg(instruction.T())<<instruction.Shift())
}

// Add Unsigned (no overflow trap)
func (cpu *CPU) OpADDU(instruction Instruction) {
	cpu.SetReg(instruction.D(), cpu.Reg(instruction.S())+cpu.Reg(instruction.T()))
}

// Bitwise Or
func (cpu *CPU) OpOR(instruction Instruction) {
	cpu.SetReg(instruction.D(), cpu.Reg(instruction.S())|cpu.Reg(instruction.T()))
}

// Jump
func (cpu *CPU) OpJ(instruction Instruction) {
	// the target keeps the 4 MSBs of the delay slot address
	cpu.NextPC = (cpu.PC & 0xf0000000) | (instruction.ImmJump() << 2)
}

// Jump And Link
func (cpu *CPU) OpJAL(instruction Instruction) {
	// return after the delay slot
	cpu.SetReg(31, cpu.NextPC)
	cpu.OpJ(instruction)
}

// Jump Register
func (cpu *CPU) OpJR(instruction Instruction) {
	cpu.NextPC = cpu.Reg(instruction.S())
}

// Branches to the delay slot address plus `offset` words
func (cpu *CPU) branch(offset uint32) {
	cpu.NextPC = cpu.PC + offset<<2
}

// Branch if Equal
func (cpu *CPU) OpBEQ(instruction Instruction) {
	if cpu.Reg(instruction.S()) == cpu.Reg(instruction.T()) {
		cpu.branch(instruction.ImmSE())
	}
}

// Branch if Not Equal
func (cpu *CPU) OpBNE(instruction Instruction) {
	if cpu.Reg(instruction.S()) != cpu.Reg(instruction.T()) {
		cpu.branch(instruction.ImmSE())
	}
}

// Effective address of a load/store instruction
func (cpu *CPU) dataAddr(instruction Instruction) uint32 {
	return cpu.Reg(instruction.S()) + instruction.ImmSE()
}

// Load Byte (sign-extended)
func (cpu *CPU) OpLB(instruction Instruction) error {
	v, err := cpuLoad[Byte](cpu, cpu.dataAddr(instruction))
	if err != nil {
		return err
	}
	cpu.SetReg(instruction.T(), uint32(int8(v)))
	return nil
}

// Load Byte Unsigned
func (cpu *CPU) OpLBU(instruction Instruction) error {
	v, err := cpuLoad[Byte](cpu, cpu.dataAddr(instruction))
	if err != nil {
		return err
	}
	cpu.SetReg(instruction.T(), v.AsU32())
	return nil
}

// Load Halfword (sign-extended)
func (cpu *CPU) OpLH(instruction Instruction) error {
	v, err := cpuLoad[Halfword](cpu, cpu.dataAddr(instruction))
	if err != nil {
		return err
	}
	cpu.SetReg(instruction.T(), uint32(int16(v)))
	return nil
}

// Load Halfword Unsigned
func (cpu *CPU) OpLHU(instruction Instruction) error {
	v, err := cpuLoad[Halfword](cpu, cpu.dataAddr(instruction))
	if err != nil {
		return err
	}
	cpu.SetReg(instruction.T(), v.AsU32())
	return nil
}

// Load Word
func (cpu *CPU) OpLW(instruction Instruction) error {
	v, err := cpuLoad[Word](cpu, cpu.dataAddr(instruction))
	if err != nil {
		return err
	}
	cpu.SetReg(instruction.T(), v.AsU32())
	return nil
}

// Store Byte
func (cpu *CPU) OpSB(instruction Instruction) error {
	return cpuStore(cpu, cpu.dataAddr(instruction), FromU32[Byte](cpu.Reg(instruction.T())))
}

// Store Halfword
func (cpu *CPU) OpSH(instruction Instruction) error {
	return cpuStore(cpu, cpu.dataAddr(instruction), FromU32[Halfword](cpu.Reg(instruction.T())))
}

// Store Word
func (cpu *CPU) OpSW(instruction Instruction) error {
	return cpuStore(cpu, cpu.dataAddr(instruction), Word(cpu.Reg(instruction.T())))
}

// Returns the register value at `index`. The first register is always zero
func (cpu *CPU) Reg(index uint32) uint32 {
	return cpu.Regs[index]
}

// Sets the value at the `index` register and sets the first register to zero
func (cpu *CPU) SetReg(index, val uint32) {
	cpu.Regs[index] = val
	// R0 should always remain 0, we can't change it
	cpu.Regs[0] = 0
}
