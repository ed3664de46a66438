package hfe

import (
	"encoding/binary"
	"fmt"
	"io"

	"libdisk/disk"
	"libdisk/track"
)

// Close serializes the aggregate into the HFE byte layout: header
// block, per-cylinder offset table, then each cylinder's interleaved
// track data. The destination is truncated first, so any I/O failure
// after that point is unrecoverable and surfaces as *disk.FatalIOError.
func (c *Container) Close(d *disk.Disk) error {
	nrTracks := len(d.Tracks)

	// The per-cylinder table lives in a single block of 4-byte
	// entries. Refuse larger geometries before touching the file.
	if nrTracks/2 > BlockSize/4 {
		return fmt.Errorf("too many cylinders for a single track-table block: %d > %d",
			nrTracks/2, BlockSize/4)
	}

	raws := make([]*track.Raw, nrTracks)

	for i := range d.Tracks {
		raws[i] = d.ReadRaw(i)

		// Unformatted tracks are random density, so the uniformity
		// check does not apply. They are also random length and do
		// not share a cylinder's buffer well with their neighbour,
		// so truncate them to the default bit budget.
		if d.Tracks[i].Type == track.TypeUnformatted {
			if budget := d.DefaultBitsPerTrack(); raws[i].Bitlen > budget {
				raws[i].Bitlen = budget
			}
			continue
		}

		// HFE tracks are uniform density. A non-uniform cell makes
		// the output imprecise but is not an error.
		for j := 0; j < raws[i].Bitlen; j++ {
			if raws[i].Speed[j] == track.SpeedUniform {
				continue
			}
			d.Log().Warn("variable-density track cannot be written to an HFE image exactly",
				"cylinder", i/2, "side", i&1)
			break
		}
	}

	if err := d.File.Truncate(0); err != nil {
		return &disk.FatalIOError{Op: "truncate", Err: err}
	}
	if _, err := d.File.Seek(0, io.SeekStart); err != nil {
		return &disk.FatalIOError{Op: "seek", Err: err}
	}

	// Block 0: disk header. The unused tail is 0xFF.
	block := make([]byte, BlockSize)
	fill(block, 0xFF)
	hdr := Header{
		FormatRevision:      0,
		NumberOfTrack:       uint8(nrTracks / 2),
		NumberOfSide:        2,
		TrackEncoding:       c.opts.TrackEncoding,
		BitRate:             c.opts.BitRateKbps,
		FloppyRPM:           0,
		FloppyInterfaceMode: c.opts.InterfaceMode,
		Reserved:            1,
		TrackListOffset:     1,
	}
	copy(hdr.HeaderSignature[:], Signature)
	hdr.encode(block)
	if _, err := d.File.Write(block); err != nil {
		return &disk.FatalIOError{Op: "write", Err: err}
	}

	// Block 1: per-cylinder offset table. Both sides share one entry:
	// the byte length covers the longer side rounded up to whole
	// bytes, doubled, so it is always even.
	fill(block, 0xFF)
	off := 2
	for i := 0; i < nrTracks/2; i++ {
		bitlen := maxBitlen(raws[i*2], raws[i*2+1])
		bytelen := (bitlen + 7) / 8 * 2
		binary.LittleEndian.PutUint16(block[i*4:], uint16(off))
		binary.LittleEndian.PutUint16(block[i*4+2:], uint16(bytelen))
		off += (bytelen + BlockSize - 1) / BlockSize
	}
	if _, err := d.File.Write(block); err != nil {
		return &disk.FatalIOError{Op: "write", Err: err}
	}

	// Track data: one zero-padded block-aligned buffer per cylinder,
	// both sides packed into its interleaved halves.
	for i := 0; i < nrTracks/2; i++ {
		raw0, raw1 := raws[i*2], raws[i*2+1]
		bitlen := maxBitlen(raw0, raw1)
		bytelen := (bitlen + 7) / 8 * 2
		padded := (bytelen + BlockSize - 1) &^ (BlockSize - 1)

		// A cylinder whose both sides are empty owns no blocks; its
		// table entry already records length zero.
		if padded > 0 {
			cbuf := make([]byte, padded)
			packBits(raw0, cbuf[0:], padded/2)
			packBits(raw1, cbuf[256:], padded/2)
			bitReverse(cbuf)

			if _, err := d.File.Write(cbuf); err != nil {
				return &disk.FatalIOError{Op: "write", Err: err}
			}
		}

		raw0.Release()
		raw1.Release()
	}
	return nil
}

func maxBitlen(a, b *track.Raw) int {
	if a.Bitlen > b.Bitlen {
		return a.Bitlen
	}
	return b.Bitlen
}

func fill(buf []byte, b byte) {
	for i := range buf {
		buf[i] = b
	}
}
