package hfe

import "libdisk/track"

// packBits serializes n bytes of MSB-first bit data from a raw
// bit-cell stream into dst, which is one interleaved half of a
// cylinder's block run: after every 256 output bytes the cursor skips
// the 256 bytes belonging to the other side. The caller passes
// dst offset 0 for side 0 and offset 256 for side 1.
//
// The stream is rotated so that a 128-bit margin before the live-data
// start lands at byte 0, keeping the inter-sector gap away from the
// packing boundary. When the read cursor runs off the end of the
// stream it wraps to 0 until the output has covered one full
// revolution, then pins to the last 16 bits of the stream, so the
// padding region repeats a short tail instead of looping content.
//
// Output is always exactly n bytes. An empty stream leaves dst as the
// caller provided it (zero-filled); a stream shorter than 16 bits pins
// to bit 0 and replays in full.
func packBits(raw *track.Raw, dst []byte, n int) {
	if raw.Bitlen <= 0 {
		return
	}

	// Rotate the track so the gap sits at the index.
	bit := raw.DataBitoff - 128
	if bit < 0 || bit >= raw.Bitlen {
		bit = 0
	}

	pin := raw.Bitlen - 16
	if pin < 0 {
		pin = 0
	}

	var x byte
	out := 0
	for i := 1; i <= n*8; i++ {
		// Consume a bit-cell.
		x <<= 1
		if raw.Bits[bit>>3]&(0x80>>(bit&7)) != 0 {
			x |= 1
		}
		if i&7 == 0 {
			dst[out] = x
			out++
			// Only half of each 512-byte block belongs to this side.
			if i&(256*8-1) == 0 {
				out += 256
			}
		}
		bit++
		if bit >= raw.Bitlen {
			if i < raw.Bitlen {
				bit = 0
			} else {
				bit = pin
			}
		}
	}
}
