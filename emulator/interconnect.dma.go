package emulator

// Summary of an executed DMA transfer
type DmaTransfer struct {
	Port      Port
	Sync      Sync
	Direction Direction
	Base      uint32 // Channel base address when the transfer started
	Words     uint32 // Number of words moved (headers excluded in linked list mode)
	Nodes     uint32 // Number of linked list nodes walked, 0 in block mode
}

// Execute DMA transfer for a port. The whole transfer is processed in one
// pass (no chopping or priority handling)
func (inter *Interconnect) doDma(port Port) error {
	channel := inter.dma.Channel(port)

	var transfer DmaTransfer
	var err error
	if channel.Sync == SYNC_LINKED_LIST {
		transfer, err = inter.doDmaLinkedList(port)
	} else {
		transfer, err = inter.doDmaBlock(port)
	}
	if err != nil {
		return err
	}

	if inter.Tracer != nil {
		inter.Tracer.TraceDma(transfer)
	}
	return nil
}

// Emulate DMA transfer for linked list synchronization mode
func (inter *Interconnect) doDmaLinkedList(port Port) (DmaTransfer, error) {
	channel := inter.dma.Channel(port)
	transfer := DmaTransfer{
		Port:      port,
		Sync:      channel.Sync,
		Direction: channel.Direction,
		Base:      channel.Base,
	}

	if channel.Direction == DIRECTION_TO_RAM {
		return transfer, errorf(ErrDmaDirection, "linked list DMA towards RAM on port %s", port)
	}

	// not sure if the DMA supports linked list mode for anything besides
	// the GPU
	if port != PORT_GPU {
		return transfer, errorf(ErrDmaPort, "linked list DMA on port %s", port)
	}

	addr := channel.Base & RAM_DMA_MASK

	for {
		// each entry starts with a "header" word. The high byte contains
		// the number of words in the "packet" (not counting the header)
		header := inter.ram.Load32(addr)
		transfer.Nodes++

		for remsz := header >> 24; remsz > 0; remsz-- {
			addr = (addr + 4) & RAM_DMA_MASK
			inter.gpu.GP0(inter.ram.Load32(addr))
			transfer.Words++
		}

		// the end-of-table marker is usually 0xffffff but only the MSB
		// is checked. That bit is not part of any valid RAM address
		if header&0x800000 != 0 {
			break
		}

		addr = header & RAM_DMA_MASK
	}

	channel.Done()
	return transfer, nil
}

// Emulate DMA transfer for Manual and Request synchronization modes
func (inter *Interconnect) doDmaBlock(port Port) (DmaTransfer, error) {
	channel := inter.dma.Channel(port)
	transfer := DmaTransfer{
		Port:      port,
		Sync:      channel.Sync,
		Direction: channel.Direction,
		Base:      channel.Base,
	}

	increment := uint32(4)
	if channel.Step == STEP_DECREMENT {
		increment = ^uint32(3) // -4
	}

	addr := channel.Base

	// transfer size in words
	valid, remsz := channel.TransferSize()
	if !valid {
		// can't happen outside of linked list mode
		return transfer, ErrDmaTransferSize
	}

	for ; remsz > 0; remsz-- {
		// the RAM address wraps and the two LSBs are ignored
		curAddr := addr & RAM_DMA_MASK

		switch channel.Direction {
		case DIRECTION_FROM_RAM:
			srcWord := inter.ram.Load32(curAddr)

			if port != PORT_GPU {
				return transfer, errorf(ErrDmaPort, "DMA destination port %s", port)
			}
			inter.gpu.GP0(srcWord)
		case DIRECTION_TO_RAM:
			if port != PORT_OTC {
				return transfer, errorf(ErrDmaPort, "DMA source port %s", port)
			}

			// clear ordering table: each entry points to the previous
			// one, the last entry contains the end of table marker
			srcWord := (addr - 4) & 0x1fffff
			if remsz == 1 {
				srcWord = 0xffffff
			}
			inter.ram.Store32(curAddr, srcWord)
		}

		addr += increment
		transfer.Words++
	}

	channel.Done()
	return transfer, nil
}
