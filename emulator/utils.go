package emulator

func oneIfTrue(val bool) uint32 {
	if val {
		return 1
	}
	return 0
}
