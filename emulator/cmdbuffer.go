package emulator

// Longest GP0 command handled by the GPU, in words (opcode included).
// GP0(0x3E) takes 12 words on real hardware
const GP0_COMMAND_MAX_WORDS = 12

// Words of the GP0 command being received
type CommandBuffer struct {
	Buffer [GP0_COMMAND_MAX_WORDS]uint32
	Len    uint8 // Number of words queued in the buffer
}

// Clears the command buffer
func (cmdbuf *CommandBuffer) Clear() {
	cmdbuf.Len = 0
}

// Queues a word. Words past the capacity of the buffer are dropped
func (cmdbuf *CommandBuffer) PushWord(word uint32) {
	if cmdbuf.Len >= GP0_COMMAND_MAX_WORDS {
		return
	}
	cmdbuf.Buffer[cmdbuf.Len] = word
	cmdbuf.Len++
}

// Returns the word at `index`, the opcode being at index 0
func (cmdbuf *CommandBuffer) Get(index uint8) uint32 {
	return cmdbuf.Buffer[index]
}

