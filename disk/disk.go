package disk

import (
	"errors"
	"fmt"
	"io"
	"os"

	"libdisk/track"

	"github.com/zerodha/logf"
)

// Opts configures a disk-image session.
type Opts struct {
	Cylinders   int  // geometry for freshly created images
	BitRateKbps int  // nominal data rate, kB/s
	RPM         int  // nominal rotation speed
	Debug       bool // enable debug logging
}

func (o Opts) withDefaults() Opts {
	if o.Cylinders == 0 {
		o.Cylinders = 83
	}
	if o.BitRateKbps == 0 {
		o.BitRateKbps = 250
	}
	if o.RPM == 0 {
		o.RPM = 300
	}
	return o
}

// Disk is the whole-disk aggregate: one track record per physical
// track, indexed as cylinder*2 + side. A Disk owns its file handle and
// its track buffers; neither supports concurrent use, since read and
// write paths thread the file cursor through sequential seeks.
type Disk struct {
	Path   string
	File   *os.File
	Tracks []track.Record

	opts      Opts
	container Container
	readOnly  bool
	lo        logf.Logger
}

func initLogger(debug bool) logf.Logger {
	opts := logf.Opts{}
	if debug {
		opts.Level = logf.DebugLevel
	}
	return logf.New(opts)
}

// Open opens an existing image read-only and probes the registered
// containers until one claims it. Closing an image opened this way
// does not write anything back.
func Open(path string, opts Opts) (*Disk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	d := &Disk{
		Path:     path,
		File:     f,
		opts:     opts.withDefaults(),
		readOnly: true,
		lo:       initLogger(opts.Debug),
	}

	for _, c := range registered {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to rewind image: %w", err)
		}
		err := c.Open(d)
		if err == nil {
			d.container = c
			return d, nil
		}
		if !errors.Is(err, ErrFormatMismatch) {
			f.Close()
			return nil, fmt.Errorf("probing %s container: %w", c.Name(), err)
		}
		d.lo.Debug("container does not match", "container", c.Name(), "image", path)
	}

	f.Close()
	return nil, fmt.Errorf("no registered container recognizes %s", path)
}

// Create makes a new writable image handled by the given container.
// The aggregate starts out as unformatted tracks sized by the
// configured geometry; Close serializes whatever the caller has
// written into it.
func Create(path string, c Container, opts Opts) (*Disk, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}

	d := &Disk{
		Path:      path,
		File:      f,
		opts:      opts.withDefaults(),
		container: c,
		lo:        initLogger(opts.Debug),
	}
	c.Init(d)
	return d, nil
}

// Close finalizes the image. For writable images the container
// serializes the aggregate first; a *FatalIOError from that path is
// returned as-is, with the destination file left truncated by design.
func (d *Disk) Close() error {
	if d.readOnly || d.container == nil {
		return d.File.Close()
	}
	if err := d.container.Close(d); err != nil {
		d.File.Close()
		return err
	}
	if err := d.File.Close(); err != nil {
		return &FatalIOError{Op: "close", Err: err}
	}
	return nil
}

// WriteRaw stores a raw bit-cell stream into the addressed track via
// the image's container.
func (d *Disk) WriteRaw(trk int, raw *track.Raw) error {
	return d.container.WriteRaw(d, trk, raw)
}

// ReadRaw acquires the raw bit-cell stream for the addressed track.
// The caller must Release it before moving to the next cylinder.
func (d *Disk) ReadRaw(trk int) *track.Raw {
	return track.ReadRaw(&d.Tracks[trk], d.DefaultBitsPerTrack())
}

// Cylinders returns the number of physical cylinders in the aggregate.
func (d *Disk) Cylinders() int { return len(d.Tracks) / 2 }

// ContainerName names the container handling this image.
func (d *Disk) ContainerName() string {
	if d.container == nil {
		return "none"
	}
	return d.container.Name()
}

// DefaultBitsPerTrack is the per-track bit budget implied by the
// configured data rate and rotation speed. Unformatted tracks are
// truncated to this budget on write.
func (d *Disk) DefaultBitsPerTrack() int {
	return d.opts.BitRateKbps * 2000 * 60 / d.opts.RPM
}

// GeometryCylinders returns the configured cylinder count for freshly
// created images.
func (d *Disk) GeometryCylinders() int { return d.opts.Cylinders }

// Log exposes the session logger to container codecs.
func (d *Disk) Log() logf.Logger { return d.lo }
