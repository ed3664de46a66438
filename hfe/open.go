package hfe

import (
	"fmt"
	"io"

	"libdisk/disk"
	"libdisk/track"
)

// Open parses an HFE image and fully populates the disk aggregate with
// two track records per cylinder. A wrong signature or a non-zero
// format revision returns disk.ErrFormatMismatch so the probe loop can
// try other containers; a matching header with unreadable track data
// is a real error.
func (c *Container) Open(d *disk.Disk) error {
	hbuf := make([]byte, headerLen)
	if _, err := io.ReadFull(d.File, hbuf); err != nil {
		// Too short to hold an HFE header: not this format.
		return disk.ErrFormatMismatch
	}

	hdr := decodeHeader(hbuf)
	if string(hdr.HeaderSignature[:]) != Signature || hdr.FormatRevision != 0 {
		return disk.ErrFormatMismatch
	}
	if hdr.NumberOfTrack == 0 {
		return fmt.Errorf("HFE header claims zero cylinders")
	}

	cyls := int(hdr.NumberOfTrack)
	d.Tracks = make([]track.Record, cyls*2)

	for i := 0; i < cyls; i++ {
		if err := c.readCylinder(d, &hdr, i); err != nil {
			return fmt.Errorf("cylinder %d: %w", i, err)
		}
	}
	return nil
}

// readCylinder demultiplexes one cylinder's interleaved block run into
// the two per-side track records.
func (c *Container) readCylinder(d *disk.Disk, hdr *Header, cyl int) error {
	lutPos := int64(hdr.TrackListOffset)*BlockSize + int64(cyl)*4
	if _, err := d.File.Seek(lutPos, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to track table: %w", err)
	}
	tbuf := make([]byte, 4)
	if _, err := io.ReadFull(d.File, tbuf); err != nil {
		return fmt.Errorf("failed to read track table entry: %w", err)
	}
	thdr := decodeTrackHeader(tbuf)

	// Read the cylinder's data padded up to a block boundary; the
	// buffer arrives in on-disk (LSB-first) bit order.
	padded := (int(thdr.TrackLen) + BlockSize - 1) &^ (BlockSize - 1)
	cbuf := make([]byte, padded)
	if _, err := d.File.Seek(int64(thdr.Offset)*BlockSize, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to track data: %w", err)
	}
	if _, err := io.ReadFull(d.File, cbuf); err != nil {
		return fmt.Errorf("failed to read track data: %w", err)
	}
	bitReverse(cbuf)

	// Each 512-byte block splits as [0,256) -> side 0, [256,512) ->
	// side 1; pack both halves contiguously.
	side0 := make([]byte, padded/2)
	side1 := make([]byte, padded/2)
	for j := 0; j < padded; j += BlockSize {
		copy(side0[j/2:], cbuf[j:j+256])
		copy(side1[j/2:], cbuf[j+256:j+BlockSize])
	}

	// At this stage each on-disk byte encodes 4 bit-cells of the
	// default raw double-density track type.
	rec := track.Record{
		Type:       track.TypeRawDD,
		TotalBits:  int(thdr.TrackLen) * 4,
		DataBitoff: 0,
	}
	d.Tracks[cyl*2] = rec
	d.Tracks[cyl*2].Dat = side0
	d.Tracks[cyl*2+1] = rec
	d.Tracks[cyl*2+1].Dat = side1
	return nil
}
