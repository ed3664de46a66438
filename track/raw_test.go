package track

import "testing"

func TestReadRawFormattedTrack(t *testing.T) {
	rec := &Record{
		Type:       TypeRawDD,
		Dat:        []byte{0xAA, 0xBB, 0xCC, 0xDD},
		TotalBits:  28,
		DataBitoff: 3,
	}

	raw := ReadRaw(rec, 100000)
	if raw.Bitlen != 28 {
		t.Errorf("bitlen = %d, want 28", raw.Bitlen)
	}
	if raw.DataBitoff != 3 {
		t.Errorf("data bit offset = %d, want 3", raw.DataBitoff)
	}
	if len(raw.Speed) != 28 {
		t.Fatalf("speed slice length = %d, want 28", len(raw.Speed))
	}
	for i, s := range raw.Speed {
		if s != SpeedUniform {
			t.Fatalf("speed[%d] = %d, want uniform %d", i, s, SpeedUniform)
		}
	}
}

func TestReadRawClampsToBuffer(t *testing.T) {
	// A record claiming more bits than its buffer holds is clamped.
	rec := &Record{Type: TypeRawDD, Dat: []byte{0x00, 0x00}, TotalBits: 100}

	raw := ReadRaw(rec, 100000)
	if raw.Bitlen != 16 {
		t.Errorf("bitlen = %d, want clamp to 16", raw.Bitlen)
	}
}

func TestReadRawEmptyFormattedTrack(t *testing.T) {
	rec := &Record{Type: TypeRawDD}

	raw := ReadRaw(rec, 100000)
	if raw.Bitlen != 0 {
		t.Errorf("bitlen = %d, want 0 for empty record", raw.Bitlen)
	}
}

func TestReadRawUnformattedTrack(t *testing.T) {
	rec := &Record{Type: TypeUnformatted}
	const budget = 100000

	raw := ReadRaw(rec, budget)
	if raw.Bitlen <= budget {
		t.Errorf("bitlen = %d, want longer than the %d budget", raw.Bitlen, budget)
	}
	if len(raw.Bits) < (raw.Bitlen+7)/8 {
		t.Errorf("bit buffer too short: %d bytes for %d bits", len(raw.Bits), raw.Bitlen)
	}
	if len(raw.Speed) != raw.Bitlen {
		t.Errorf("speed slice length = %d, want %d", len(raw.Speed), raw.Bitlen)
	}
}

func TestRawRelease(t *testing.T) {
	raw := &Raw{Bits: []byte{1, 2}, Speed: []uint16{1000, 1000}, Bitlen: 16}
	raw.Release()

	if raw.Bits != nil || raw.Speed != nil || raw.Bitlen != 0 {
		t.Error("release did not drop the stream's buffers")
	}
}
