// Package hfe reads and writes HxC Floppy Emulator (HFE v1) images.
//
// The container stores each cylinder as a run of 512-byte blocks where
// the first 256 bytes of every block belong to side 0 and the second
// 256 bytes to side 1, with data bytes in LSB-first bit order. The
// codec moves bit-cell data between that layout and the in-memory
// track records; it never interprets track contents.
package hfe

import (
	"encoding/binary"

	"libdisk/disk"
	"libdisk/track"
)

// Signature is the 8-byte magic at the start of every HFE v1 image.
const Signature = "HXCPICFE"

// BlockSize is the allocation unit of the container. Offsets in the
// header and track table are counted in blocks.
const BlockSize = 512

const headerLen = 20

// Track encoding types
const (
	ENC_ISOIBM_MFM = iota
	ENC_Amiga_MFM
	ENC_ISOIBM_FM
	ENC_Emu_FM
	ENC_Unknown = 0xff
)

// Interface mode types
const (
	IFM_IBMPC_DD = iota
	IFM_IBMPC_HD
	IFM_AtariST_DD
	IFM_AtariST_HD
	IFM_Amiga_DD
	IFM_Amiga_HD
	IFM_CPC_DD
	IFM_GenericShugart_DD
	IFM_IBMPC_ED
	IFM_MSX2_DD
	IFM_C64_DD
	IFM_EmuShugart_DD
)

// Header is the fixed preamble in block 0 of an HFE image.
// All multi-byte fields are little-endian.
type Header struct {
	HeaderSignature     [8]byte
	FormatRevision      uint8
	NumberOfTrack       uint8 // physical cylinders
	NumberOfSide        uint8
	TrackEncoding       uint8
	BitRate             uint16 // kB/s, informational
	FloppyRPM           uint16 // informational, may be zero
	FloppyInterfaceMode uint8
	Reserved            uint8
	TrackListOffset     uint16 // in 512-byte blocks
}

// encode serializes the header field by field into buf, which must be
// at least headerLen bytes.
func (h *Header) encode(buf []byte) {
	copy(buf[0:8], h.HeaderSignature[:])
	buf[8] = h.FormatRevision
	buf[9] = h.NumberOfTrack
	buf[10] = h.NumberOfSide
	buf[11] = h.TrackEncoding
	binary.LittleEndian.PutUint16(buf[12:14], h.BitRate)
	binary.LittleEndian.PutUint16(buf[14:16], h.FloppyRPM)
	buf[16] = h.FloppyInterfaceMode
	buf[17] = h.Reserved
	binary.LittleEndian.PutUint16(buf[18:20], h.TrackListOffset)
}

func decodeHeader(buf []byte) Header {
	var h Header
	copy(h.HeaderSignature[:], buf[0:8])
	h.FormatRevision = buf[8]
	h.NumberOfTrack = buf[9]
	h.NumberOfSide = buf[10]
	h.TrackEncoding = buf[11]
	h.BitRate = binary.LittleEndian.Uint16(buf[12:14])
	h.FloppyRPM = binary.LittleEndian.Uint16(buf[14:16])
	h.FloppyInterfaceMode = buf[16]
	h.Reserved = buf[17]
	h.TrackListOffset = binary.LittleEndian.Uint16(buf[18:20])
	return h
}

// trackHeader is one entry of the per-cylinder lookup table in block 1.
type trackHeader struct {
	Offset   uint16 // in 512-byte blocks
	TrackLen uint16 // bytes, both sides combined
}

func decodeTrackHeader(buf []byte) trackHeader {
	return trackHeader{
		Offset:   binary.LittleEndian.Uint16(buf[0:2]),
		TrackLen: binary.LittleEndian.Uint16(buf[2:4]),
	}
}

// Opts selects the informational header constants written into fresh
// images. The container payload does not depend on them.
type Opts struct {
	TrackEncoding uint8
	InterfaceMode uint8
	BitRateKbps   uint16
}

// DefaultOpts returns the write defaults: an Amiga DD profile at
// 250 kB/s.
func DefaultOpts() Opts {
	return Opts{
		TrackEncoding: ENC_Amiga_MFM,
		InterfaceMode: IFM_Amiga_DD,
		BitRateKbps:   250,
	}
}

// Container is the HFE codec. It satisfies disk.Container.
type Container struct {
	opts Opts
}

// New returns an HFE container with the given write defaults.
// A zero BitRateKbps falls back to 250.
func New(opts Opts) *Container {
	if opts.BitRateKbps == 0 {
		opts.BitRateKbps = 250
	}
	return &Container{opts: opts}
}

func init() {
	disk.Register(New(DefaultOpts()))
}

// Name returns the container's registry name.
func (c *Container) Name() string { return "hfe" }

// Init sizes a fresh image to the configured geometry: two unformatted
// track records per cylinder.
func (c *Container) Init(d *disk.Disk) {
	d.Tracks = make([]track.Record, 2*d.GeometryCylinders())
}

// WriteRaw delegates to the shared default implementation.
func (c *Container) WriteRaw(d *disk.Disk, trk int, raw *track.Raw) error {
	return disk.DefaultWriteRaw(d, trk, raw)
}
