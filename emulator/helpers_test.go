package emulator

import (
	"io"
	"log"

	"github.com/stretchr/testify/mock"
)

// VideoDevice mock for register forwarding tests
type mockVideo struct {
	mock.Mock
}

func (m *mockVideo) Load(offset uint32, width AccessWidth) (uint32, error) {
	args := m.Called(offset, width)
	return args.Get(0).(uint32), args.Error(1)
}

func (m *mockVideo) Store(offset uint32, width AccessWidth, val uint32) error {
	args := m.Called(offset, width, val)
	return args.Error(0)
}

func (m *mockVideo) GP0(val uint32) {
	m.Called(val)
}

// VideoDevice that records the GP0 command stream
type gp0Recorder struct {
	words []uint32
}

func (r *gp0Recorder) Load(offset uint32, width AccessWidth) (uint32, error) {
	return 0, nil
}

func (r *gp0Recorder) Store(offset uint32, width AccessWidth, val uint32) error {
	return nil
}

func (r *gp0Recorder) GP0(val uint32) {
	r.words = append(r.words, val)
}

type dmaRecorder struct {
	transfers []DmaTransfer
}

func (r *dmaRecorder) TraceDma(transfer DmaTransfer) {
	r.transfers = append(r.transfers, transfer)
}

var discardLog = log.New(io.Discard, "", 0)

// BIOS whose bytes are the low 8 bits of their offset
func testBios() *BIOS {
	data := make([]byte, BIOS_SIZE)
	for i := range data {
		data[i] = byte(i)
	}
	return &BIOS{Data: data}
}

func newTestInterconnect(gpu VideoDevice) *Interconnect {
	inter := NewInterconnect(testBios(), gpu)
	inter.Log = discardLog
	return inter
}
