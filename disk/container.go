package disk

import (
	"errors"
	"fmt"

	"libdisk/track"
)

// ErrFormatMismatch signals that a container codec does not recognize
// the file it was asked to open. It is an expected, recoverable
// condition: the probe loop simply tries the next registered container.
var ErrFormatMismatch = errors.New("container format mismatch")

// FatalIOError reports an unrecoverable I/O failure on the write path.
// By the time a write fails the destination has already been truncated,
// so no partial-output recovery is attempted; the top-level caller is
// expected to terminate.
type FatalIOError struct {
	Op  string // operation that failed: "truncate", "write", "seek"
	Err error
}

func (e *FatalIOError) Error() string {
	return fmt.Sprintf("fatal I/O error during %s: %v", e.Op, e.Err)
}

func (e *FatalIOError) Unwrap() error { return e.Err }

// Container is implemented by each image-format codec. Open returns
// ErrFormatMismatch when the file is not in the container's format;
// any other error aborts the probe. Close serializes the aggregate
// back to the file and may return a *FatalIOError.
type Container interface {
	Name() string

	// Init sizes a freshly created image's track aggregate.
	Init(d *Disk)

	// Open parses the image file and fully populates the aggregate.
	Open(d *Disk) error

	// Close serializes the aggregate to the image file.
	Close(d *Disk) error

	// WriteRaw stores a raw bit-cell stream into one track record.
	WriteRaw(d *Disk, trk int, raw *track.Raw) error
}

var registered []Container

// Register adds a container codec to the probe list. Containers are
// probed in registration order.
func Register(c Container) {
	registered = append(registered, c)
}

// DefaultWriteRaw is the shared WriteRaw implementation: it copies the
// stream's bit-cells into the addressed track record, replacing any
// previous content.
func DefaultWriteRaw(d *Disk, trk int, raw *track.Raw) error {
	if trk < 0 || trk >= len(d.Tracks) {
		return fmt.Errorf("track %d out of range (0..%d)", trk, len(d.Tracks)-1)
	}
	nbytes := (raw.Bitlen + 7) / 8
	if nbytes > len(raw.Bits) {
		return fmt.Errorf("track %d: bitstream claims %d bits but carries %d bytes",
			trk, raw.Bitlen, len(raw.Bits))
	}

	rec := &d.Tracks[trk]
	rec.Type = track.TypeRawDD
	rec.Dat = append([]byte(nil), raw.Bits[:nbytes]...)
	rec.TotalBits = raw.Bitlen
	rec.DataBitoff = raw.DataBitoff
	return nil
}
