package png

// DecodeOptions controls Decode's behavior, per spec.md §3.
type DecodeOptions struct {
	// StrictMode promotes every warning to a fatal error at the moment it
	// would otherwise be emitted (spec.md §7).
	StrictMode bool
	// Force32 reduces a 16-bit source image to 8-bit output (x >> 8 per
	// channel) instead of producing an Image16.
	Force32 bool
	// ParseChunkTypes restricts which ancillary chunk types are dispatched
	// to their decoders. Nil (the zero value) means "all known types",
	// equivalent to spec.md's "*" sentinel.
	ParseChunkTypes []string
}

func (o DecodeOptions) enabledSet() map[string]bool {
	if o.ParseChunkTypes == nil {
		return nil
	}
	set := make(map[string]bool, len(o.ParseChunkTypes))
	for _, t := range o.ParseChunkTypes {
		if t == "*" {
			return nil
		}
		set[t] = true
	}
	return set
}

// EncodeChunk is a caller-supplied ancillary chunk to splice into an
// encoded stream verbatim (type + pre-serialized payload).
type EncodeChunk struct {
	Type string
	Data []byte
}

// EncodeOptions controls Encode's behavior, per spec.md §3/§6.
type EncodeOptions struct {
	BitDepth        uint8 // 8 or 16
	ColorType       uint8 // 0, 2, 3, 4, or 6
	AncillaryChunks []EncodeChunk
}

// DecodeResult is Decode's output, per spec.md §6.
type DecodeResult struct {
	Image8  *Image8  // set iff the output is 8-bit
	Image16 *Image16 // set iff the output is 16-bit (bitDepth 16, Force32 false)

	Details  Details
	Palette  Palette
	Metadata []Metadata
	RawChunks []RawChunk
	Warnings []Warning
	Info     []string
}

// Image returns the decoded image as the Image sum type, dispatching on
// which of Image8/Image16 is set.
func (r *DecodeResult) Image() Image {
	if r.Image16 != nil {
		return r.Image16
	}
	return r.Image8
}
