// Package tracing records the DMA transfers executed by the interconnect.
package tracing

import "github.com/zeozeozeo/psxbus/emulator"

// MemoryWriter keeps every traced transfer in memory.
type MemoryWriter struct {
	Transfers []emulator.DmaTransfer
}

// TraceDma appends the transfer to the list.
func (w *MemoryWriter) TraceDma(transfer emulator.DmaTransfer) {
	w.Transfers = append(w.Transfers, transfer)
}

// Words returns the total number of words moved by the recorded transfers.
func (w *MemoryWriter) Words() uint64 {
	var n uint64
	for _, t := range w.Transfers {
		n += uint64(t.Words)
	}
	return n
}
