package track

// Type identifies the logical encoding of a track record.
type Type uint8

const (
	// TypeUnformatted marks a track with no recoverable structure.
	// Its bit-cells are random noise at random density.
	TypeUnformatted Type = iota

	// TypeRawDD is a raw double-density bit-cell buffer, the default
	// for tracks demultiplexed from a uniform-density container.
	TypeRawDD

	// TypeRawSD and TypeRawHD are the single- and high-density variants.
	TypeRawSD
	TypeRawHD
)

// String returns the string representation of the track type.
func (t Type) String() string {
	switch t {
	case TypeUnformatted:
		return "unformatted"
	case TypeRawDD:
		return "raw-dd"
	case TypeRawSD:
		return "raw-sd"
	case TypeRawHD:
		return "raw-hd"
	default:
		return "unknown"
	}
}

// Record describes one physical track: a cylinder/side pair.
// Records are owned by the disk aggregate; index 2k is side 0 of
// cylinder k, index 2k+1 is side 1.
type Record struct {
	Type       Type
	Dat        []byte // decoded track bytes, MSB-first bit order
	TotalBits  int    // number of valid bit-cells in Dat
	DataBitoff int    // bit index where live data starts (gap seam)
}
