package emulator

import "fmt"

// Represents the 7 DMA ports
type Port uint32

const (
	PORT_MDEC_IN  Port = 0 // Macroblock decoder input
	PORT_MDEC_OUT Port = 1 // Macroblock decoder output
	PORT_GPU      Port = 2 // Graphics Processing Unit
	PORT_CDROM    Port = 3 // CD-ROM drive
	PORT_SPU      Port = 4 // Sound Processing Unit
	PORT_PIO      Port = 5 // Extension port
	PORT_OTC      Port = 6 // Used to clear the ordering table
)

var portNames = [...]string{"MDEC in", "MDEC out", "GPU", "CD-ROM", "SPU", "PIO", "OTC"}

func (p Port) String() string {
	if int(p) < len(portNames) {
		return portNames[p]
	}
	return fmt.Sprintf("port %d", uint32(p))
}

// Index of a port in the DMA register map
var portIndex = [7]Port{
	PORT_MDEC_IN,
	PORT_MDEC_OUT,
	PORT_GPU,
	PORT_CDROM,
	PORT_SPU,
	PORT_PIO,
	PORT_OTC,
}

// Returns the port at register index `index` (0-6)
func PortFromIndex(index uint32) (Port, error) {
	if index >= uint32(len(portIndex)) {
		return 0, errorf(ErrDmaRegister, "invalid port %d", index)
	}
	return portIndex[index], nil
}

// Result of a DMA register write. `Triggered` is true when the write left
// the channel at `Port` active, in which case the transfer must be run
type DmaTrigger struct {
	Port      Port
	Triggered bool
}

// Direct Memory Access controller
type DMA struct {
	Control uint32 // DMA control register (channel priorities, not interpreted)
	// Interrupt register. IRQ signaling isn't modelled, the value is
	// stored and sent back untouched on reads
	Interrupt uint32
	Channels  [7]*Channel // The 7 channel instances
}

// Return a new reset DMA instance
func NewDMA() *DMA {
	dma := &DMA{
		Control: 0x07654321, // reset value, see the Nocash PSX docs
	}

	// allocate channels
	for i := 0; i < len(dma.Channels); i++ {
		dma.Channels[i] = NewChannel()
	}

	return dma
}

// Returns the channel for `port`
func (dma *DMA) Channel(port Port) *Channel {
	return dma.Channels[port]
}

// Set the control value
func (dma *DMA) SetControl(val uint32) {
	dma.Control = val
}

// Set the value of the interrupt register
func (dma *DMA) SetInterrupt(val uint32) {
	dma.Interrupt = val
}

// Master IRQ enable (bit 23 of the interrupt register)
func (dma *DMA) IrqEnabled() bool {
	return dma.Interrupt&(1<<23) != 0
}

// Force IRQ (bit 15 of the interrupt register)
func (dma *DMA) ForceIrq() bool {
	return dma.Interrupt&(1<<15) != 0
}

// IRQ enable for the channel at `port` (bits [22:16])
func (dma *DMA) ChannelIrqEnabled(port Port) bool {
	return (dma.Interrupt>>(16+uint32(port)))&1 != 0
}

// IRQ flag for the channel at `port` (bits [30:24])
func (dma *DMA) ChannelIrqFlag(port Port) bool {
	return (dma.Interrupt>>(24+uint32(port)))&1 != 0
}

// Splits a register offset into the channel index (major) and the register
// inside the channel (minor)
func dmaRegisterIndex(offset uint32) (major, minor uint32) {
	return (offset & 0x70) >> 4, offset & 0xf
}

// Returns the value of the register at `offset` in the DMA range
func (dma *DMA) Register(offset uint32) (uint32, error) {
	major, minor := dmaRegisterIndex(offset)

	// common DMA registers
	if major == 7 {
		switch minor {
		case 0:
			return dma.Control, nil
		case 4:
			return dma.Interrupt, nil
		}
		return 0, errorf(ErrDmaRegister, "read at offset 0x%x", offset)
	}

	// per-channel registers
	port, err := PortFromIndex(major)
	if err != nil {
		return 0, err
	}
	channel := dma.Channel(port)

	switch minor {
	case 0:
		return channel.Base, nil
	case 4:
		return channel.BlockControl(), nil
	case 8:
		return channel.Control(), nil
	}
	return 0, errorf(ErrDmaRegister, "read at offset 0x%x", offset)
}

// Writes `val` into the register at `offset` in the DMA range and reports
// whether the write started a transfer
func (dma *DMA) SetRegister(offset, val uint32) (DmaTrigger, error) {
	major, minor := dmaRegisterIndex(offset)

	// common DMA registers
	if major == 7 {
		switch minor {
		case 0:
			dma.SetControl(val)
		case 4:
			dma.SetInterrupt(val)
		default:
			return DmaTrigger{}, errorf(ErrDmaRegister, "write 0x%08x at offset 0x%x", val, offset)
		}
		// the control register only sets priorities, it can't start a channel
		return DmaTrigger{}, nil
	}

	// per-channel registers
	port, err := PortFromIndex(major)
	if err != nil {
		return DmaTrigger{}, err
	}
	channel := dma.Channel(port)

	switch minor {
	case 0:
		channel.SetBase(val)
	case 4:
		channel.SetBlockControl(val)
	case 8:
		if err := channel.SetControl(val); err != nil {
			return DmaTrigger{}, err
		}
	default:
		return DmaTrigger{}, errorf(ErrDmaRegister, "write 0x%08x at offset 0x%x", val, offset)
	}

	return DmaTrigger{Port: port, Triggered: channel.Active()}, nil
}
