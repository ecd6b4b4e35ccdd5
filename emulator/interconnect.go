package emulator

import "log"

// Register interface of the video subsystem. Values travel zero-extended to
// 32 bits together with the width of the access
type VideoDevice interface {
	Load(offset uint32, width AccessWidth) (uint32, error)
	Store(offset uint32, width AccessWidth, val uint32) error
	// Command intake, used by the CPU through the GP0 register and by
	// the DMA
	GP0(val uint32)
}

// Receives a record for every DMA transfer the interconnect executes
type DmaTracer interface {
	TraceDma(transfer DmaTransfer)
}

// Global interconnect. It stores all of the peripherals
type Interconnect struct {
	bios         *BIOS        // Basic input/output memory
	ram          *RAM         // Main RAM
	dma          *DMA         // DMA registers
	gpu          VideoDevice  // Graphics Processing Unit
	cacheControl CacheControl // Cache Control register

	Log    *log.Logger // Destination of the messages about unhandled peripherals
	Tracer DmaTracer   // Optional DMA transfer tracer
}

// Creates a new interconnect instance. The RAM is owned by the interconnect
// and starts filled with garbage
func NewInterconnect(bios *BIOS, gpu VideoDevice) *Interconnect {
	inter := &Interconnect{
		bios: bios,
		ram:  NewRAM(),
		dma:  NewDMA(),
		gpu:  gpu,
		Log:  log.Default(),
	}
	return inter
}

// Returns the value of the cache control register
func (inter *Interconnect) CacheControl() CacheControl {
	return inter.cacheControl
}

// Loads a value of type `T` at `addr`
func Load[T Addressable](inter *Interconnect, addr uint32) (T, error) {
	v, err := inter.load(addr, WidthOf[T]())
	return FromU32[T](v), err
}

// Stores `val` into `addr`
func Store[T Addressable](inter *Interconnect, addr uint32, val T) error {
	return inter.store(addr, val.Width(), val.AsU32())
}

// Returns a 32bit little endian value at `addr`
func (inter *Interconnect) Load32(addr uint32) (uint32, error) {
	v, err := Load[Word](inter, addr)
	return uint32(v), err
}

// Returns a 16bit little endian value at `addr`
func (inter *Interconnect) Load16(addr uint32) (uint16, error) {
	v, err := Load[Halfword](inter, addr)
	return uint16(v), err
}

// Returns the byte at `addr`
func (inter *Interconnect) Load8(addr uint32) (byte, error) {
	v, err := Load[Byte](inter, addr)
	return byte(v), err
}

// Stores a 32bit little endian value into `addr`
func (inter *Interconnect) Store32(addr, val uint32) error {
	return Store(inter, addr, Word(val))
}

// Stores a 16bit little endian value into `addr`
func (inter *Interconnect) Store16(addr uint32, val uint16) error {
	return Store(inter, addr, Halfword(val))
}

// Stores the byte `val` into `addr`
func (inter *Interconnect) Store8(addr uint32, val byte) error {
	return Store(inter, addr, Byte(val))
}

func (inter *Interconnect) load(addr uint32, width AccessWidth) (uint32, error) {
	absAddr := MaskRegion(addr)

	if offset, ok := RAM_RANGE.Contains(absAddr); ok {
		return inter.ram.Load(offset, width), nil
	}

	if offset, ok := BIOS_RANGE.Contains(absAddr); ok {
		return inter.bios.Load(offset, width), nil
	}

	if offset, ok := IRQ_CONTROL.Contains(absAddr); ok {
		inter.Log.Printf("interconnect: IRQ control read 0x%x", offset)
		return 0, nil
	}

	if offset, ok := DMA_RANGE.Contains(absAddr); ok {
		if width != ACCESS_WORD {
			return 0, inter.loadError(addr, width, ErrAccessWidth)
		}
		v, err := inter.dma.Register(offset)
		if err != nil {
			return 0, inter.loadError(addr, width, err)
		}
		return v, nil
	}

	if offset, ok := GPU_RANGE.Contains(absAddr); ok {
		v, err := inter.gpu.Load(offset, width)
		if err != nil {
			return 0, inter.loadError(addr, width, err)
		}
		return v, nil
	}

	if offset, ok := TIMERS.Contains(absAddr); ok {
		inter.Log.Printf("interconnect: unhandled read from timer register 0x%x", offset)
		return 0, nil
	}

	if _, ok := SPU_RANGE.Contains(absAddr); ok {
		inter.Log.Printf("interconnect: unhandled read from SPU register 0x%08x", absAddr)
		return 0, nil
	}

	if _, ok := EXPANSION_1.Contains(absAddr); ok {
		// no expansion implemented, the bus returns full ones when no
		// expansion is present
		return width.Mask(), nil
	}

	return 0, inter.loadError(addr, width, ErrUnmapped)
}

func (inter *Interconnect) store(addr uint32, width AccessWidth, val uint32) error {
	absAddr := MaskRegion(addr)

	if offset, ok := RAM_RANGE.Contains(absAddr); ok {
		inter.ram.Store(offset, width, val)
		return nil
	}

	if offset, ok := IRQ_CONTROL.Contains(absAddr); ok {
		inter.Log.Printf("interconnect: IRQ control 0x%x <- 0x%08x", offset, val)
		return nil
	}

	if offset, ok := DMA_RANGE.Contains(absAddr); ok {
		if err := inter.setDmaReg(offset, width, val); err != nil {
			return inter.storeError(addr, width, val, err)
		}
		return nil
	}

	if offset, ok := GPU_RANGE.Contains(absAddr); ok {
		if err := inter.gpu.Store(offset, width, val); err != nil {
			return inter.storeError(addr, width, val, err)
		}
		return nil
	}

	if offset, ok := TIMERS.Contains(absAddr); ok {
		inter.Log.Printf("interconnect: unhandled write to timer register 0x%x: 0x%08x", offset, val)
		return nil
	}

	if _, ok := SPU_RANGE.Contains(absAddr); ok {
		inter.Log.Printf("interconnect: unhandled write to SPU register 0x%08x: 0x%04x", absAddr, val)
		return nil
	}

	if _, ok := CACHE_CONTROL.Contains(absAddr); ok {
		if width != ACCESS_WORD {
			return inter.storeError(addr, width, val, ErrAccessWidth)
		}
		inter.cacheControl = CacheControl(val)
		return nil
	}

	if offset, ok := MEM_CONTROL.Contains(absAddr); ok {
		switch offset {
		case 0: // expansion 1 base address
			if val != EXPANSION_1.Start {
				return inter.storeError(addr, width, val, errorf(ErrExpansionBase, "expansion 1 at 0x%08x", val))
			}
		case 4: // expansion 2 base address
			if val != EXPANSION_2.Start {
				return inter.storeError(addr, width, val, errorf(ErrExpansionBase, "expansion 2 at 0x%08x", val))
			}
		default:
			inter.Log.Printf("interconnect: unhandled write to MEM_CONTROL register 0x%x: 0x%08x", offset, val)
		}
		return nil
	}

	if _, ok := RAM_SIZE.Contains(absAddr); ok {
		// writes at this address are ignored
		return nil
	}

	if offset, ok := EXPANSION_2.Contains(absAddr); ok {
		inter.Log.Printf("interconnect: unhandled write to expansion 2 register 0x%x", offset)
		return nil
	}

	return inter.storeError(addr, width, val, ErrUnmapped)
}

// DMA register write. Runs the transfer if the write activated a channel
func (inter *Interconnect) setDmaReg(offset uint32, width AccessWidth, val uint32) error {
	if width != ACCESS_WORD {
		return ErrAccessWidth
	}

	trigger, err := inter.dma.SetRegister(offset, val)
	if err != nil {
		return err
	}
	if trigger.Triggered {
		return inter.doDma(trigger.Port)
	}
	return nil
}

func (inter *Interconnect) loadError(addr uint32, width AccessWidth, err error) error {
	return &BusError{Op: "load", Addr: addr, Width: width, Err: err}
}

func (inter *Interconnect) storeError(addr uint32, width AccessWidth, val uint32, err error) error {
	return &BusError{Op: "store", Addr: addr, Width: width, Value: val, Err: err}
}
