package emulator

// Value of the cache control register at 0xfffe0130
type CacheControl uint32

// Returns whether the instruction cache is enabled
func (cache CacheControl) ICacheEnabled() bool {
	return uint32(cache)&0x800 != 0
}

func (cache CacheControl) TagTestMode() bool {
	return uint32(cache)&4 != 0
}
