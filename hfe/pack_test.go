package hfe

import (
	"bytes"
	"testing"

	"libdisk/track"
)

func TestBitReverseKnownValues(t *testing.T) {
	cases := []struct {
		in, want byte
	}{
		{0x00, 0x00},
		{0xFF, 0xFF},
		{0x80, 0x01},
		{0x01, 0x80},
		{0x0F, 0xF0},
		{0x12, 0x48},
	}
	for _, c := range cases {
		buf := []byte{c.in}
		bitReverse(buf)
		if buf[0] != c.want {
			t.Errorf("bitReverse(%#02x) = %#02x, want %#02x", c.in, buf[0], c.want)
		}
	}
}

func TestBitReverseInvolution(t *testing.T) {
	buf := make([]byte, 1024)
	for i := range buf {
		buf[i] = byte(i*7 + 13)
	}
	orig := append([]byte(nil), buf...)

	bitReverse(buf)
	bitReverse(buf)

	if len(buf) != len(orig) {
		t.Fatalf("bitReverse changed buffer length: %d != %d", len(buf), len(orig))
	}
	if !bytes.Equal(buf, orig) {
		t.Error("bitReverse applied twice did not restore the original buffer")
	}
}

func TestPackBitsCopiesStream(t *testing.T) {
	src := make([]byte, 64)
	for i := range src {
		src[i] = byte(i)
	}
	raw := &track.Raw{Bits: src, Bitlen: len(src) * 8}

	dst := make([]byte, 16)
	packBits(raw, dst, 16)

	if !bytes.Equal(dst, src[:16]) {
		t.Errorf("packed output = % x, want % x", dst, src[:16])
	}
}

func TestPackBitsRotatesToGap(t *testing.T) {
	src := make([]byte, 64)
	for i := range src {
		src[i] = byte(i)
	}
	// A data offset of 200 starts the output 128 bits earlier, at
	// bit 72 = byte 9.
	raw := &track.Raw{Bits: src, Bitlen: len(src) * 8, DataBitoff: 200}

	dst := make([]byte, 4)
	packBits(raw, dst, 4)

	want := []byte{9, 10, 11, 12}
	if !bytes.Equal(dst, want) {
		t.Errorf("packed output = % x, want % x", dst, want)
	}
}

func TestPackBitsWraparoundPinsToTail(t *testing.T) {
	// 32-bit stream, 64 bits of output: the last 32 output bits must
	// be the final 16 bits of the stream twice, not a full replay.
	src := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	raw := &track.Raw{Bits: src, Bitlen: 32}

	dst := make([]byte, 8)
	packBits(raw, dst, 8)

	want := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0xBE, 0xEF, 0xBE, 0xEF}
	if !bytes.Equal(dst, want) {
		t.Errorf("packed output = % x, want % x", dst, want)
	}
}

func TestPackBitsInterleaveSkip(t *testing.T) {
	src := make([]byte, 1024)
	for i := range src {
		src[i] = byte(i % 251)
	}
	raw := &track.Raw{Bits: src, Bitlen: len(src) * 8}

	// 512 bytes of output span two interleaved blocks: bytes 0..255
	// land at dst[0..255], bytes 256..511 at dst[512..767].
	dst := make([]byte, 1024)
	packBits(raw, dst, 512)

	if !bytes.Equal(dst[0:256], src[0:256]) {
		t.Error("first half-block does not match the source stream")
	}
	for i := 256; i < 512; i++ {
		if dst[i] != 0 {
			t.Fatalf("dst[%d] = %#02x, want untouched zero (other side's half)", i, dst[i])
		}
	}
	if !bytes.Equal(dst[512:768], src[256:512]) {
		t.Error("second half-block does not match the source stream")
	}
}

func TestPackBitsEmptyStream(t *testing.T) {
	raw := &track.Raw{}
	dst := make([]byte, 8)
	packBits(raw, dst, 8)

	for i, b := range dst {
		if b != 0 {
			t.Fatalf("dst[%d] = %#02x, want zero fill for empty stream", i, b)
		}
	}
}

func TestPackBitsShortStream(t *testing.T) {
	// Streams shorter than the 16-bit tail pin to bit 0 and replay in
	// full instead of underflowing.
	raw := &track.Raw{Bits: []byte{0xA7}, Bitlen: 8}
	dst := make([]byte, 4)
	packBits(raw, dst, 4)

	want := []byte{0xA7, 0xA7, 0xA7, 0xA7}
	if !bytes.Equal(dst, want) {
		t.Errorf("packed output = % x, want % x", dst, want)
	}
}
