package track

import "math/rand"

// SpeedUniform is the per-mille timing value of a nominal-density
// bit-cell. Uniform-density containers can only represent tracks
// where every cell carries this value.
const SpeedUniform = 1000

// Raw is the decoded bit-cell stream for one physical track, with a
// per-cell timing class. A Raw is acquired per track, consumed once by
// a container's write path, and released before the next cylinder.
type Raw struct {
	Bits       []byte   // bit-cells, MSB-first
	Speed      []uint16 // per-cell timing, per-mille of nominal
	Bitlen     int      // number of valid bit-cells
	DataBitoff int      // bit index where live data starts
}

// Release drops the stream's buffers. The Raw must not be used again.
func (r *Raw) Release() {
	r.Bits = nil
	r.Speed = nil
	r.Bitlen = 0
}

// ReadRaw produces the raw bit-cell stream for a track record.
// Formatted records hand back their own buffer at uniform density.
// Unformatted records synthesize random cells at random density,
// slightly longer than defaultBits so that a writer's truncation
// policy has something to trim.
func ReadRaw(rec *Record, defaultBits int) *Raw {
	if rec.Type == TypeUnformatted {
		return readRawUnformatted(defaultBits)
	}

	bitlen := rec.TotalBits
	if maxBits := len(rec.Dat) * 8; bitlen > maxBits {
		bitlen = maxBits
	}
	if bitlen <= 0 {
		// A formatted record with no data yields an empty stream;
		// consumers zero-fill rather than invent content.
		return &Raw{}
	}

	speed := make([]uint16, bitlen)
	for i := range speed {
		speed[i] = SpeedUniform
	}
	return &Raw{
		Bits:       rec.Dat,
		Speed:      speed,
		Bitlen:     bitlen,
		DataBitoff: rec.DataBitoff,
	}
}

func readRawUnformatted(defaultBits int) *Raw {
	bitlen := defaultBits + defaultBits/8
	bits := make([]byte, (bitlen+7)/8)
	for i := range bits {
		bits[i] = byte(rand.Uint32())
	}
	speed := make([]uint16, bitlen)
	for i := range speed {
		speed[i] = uint16(SpeedUniform - 100 + rand.Intn(200))
	}
	return &Raw{Bits: bits, Speed: speed, Bitlen: bitlen}
}
