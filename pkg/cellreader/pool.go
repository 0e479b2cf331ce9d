package cellreader

import (
	"sync"
	"unsafe"
)

// scratchPool holds the byte buffers parsing contexts decode quoted cells into.
var scratchPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 64)
		return &b
	},
}

// getScratch gets a []byte buffer from the pool with length 0.
func getScratch() []byte {
	p := scratchPool.Get().(*[]byte)
	return (*p)[:0]
}

// putScratch returns a []byte buffer to the pool.
func putScratch(buf []byte) {
	// Keep huge cells from pinning memory in the pool.
	const maxCapacity = 4096
	if buf == nil || cap(buf) > maxCapacity {
		return
	}
	buf = buf[:0]
	scratchPool.Put(&buf)
}

// unsafeString converts a []byte to a string without allocation.
//
// The string shares memory with b, so it must not outlive the cell or the
// scratch buffer b points into. Readers only hand it to strconv, which does
// not retain its argument.
func unsafeString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
