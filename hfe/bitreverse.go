package hfe

// bitReverseTable maps each byte to its bit-reversed value
// (bit 7 <-> bit 0, bit 6 <-> bit 1, ...).
var bitReverseTable [256]byte

func init() {
	for i := range bitReverseTable {
		var r byte
		for j := 0; j < 8; j++ {
			if i&(1<<j) != 0 {
				r |= 1 << (7 - j)
			}
		}
		bitReverseTable[i] = byte(r)
	}
}

// bitReverse flips the bit order of every byte in buf, in place. The
// container stores data LSB-first; the in-memory representation is
// MSB-first. The transform is its own inverse and is applied once over
// the whole multi-block region of a cylinder on both read and write.
func bitReverse(buf []byte) {
	for i, b := range buf {
		buf[i] = bitReverseTable[b]
	}
}
