package png

import "github.com/AnturK/png-codec/internal/xdr"

// Metadata is the decode result of a single ancillary chunk, per the
// collaborator contract in spec.md §6.
type Metadata struct {
	Type  string
	Value any
}

// ancillaryDecoder is the collaborator contract from spec.md §6: a pure
// function that reads a framed, CRC-checked chunk and returns either a
// metadata record or an error to be folded into a warning by the caller.
type ancillaryDecoder func(h Header, chunk Chunk) (any, error)

// ancillaryTable is the static dispatch table described in spec.md §9
// ("model it as a static table mapping the 15 known chunk types to decoder
// functions... no runtime loading required"), grounded directly on the
// switch-by-type-string dispatch in the teacher's exr/attribute.go
// ReadAttribute.
var ancillaryTable = map[ChunkType]ancillaryDecoder{
	chunkType("gAMA"): decodeGAMA,
	chunkType("cHRM"): decodeCHRM,
	chunkType("sRGB"): decodeSRGB,
	chunkType("iCCP"): decodeICCP,
	chunkType("tEXt"): decodeTEXt,
	chunkType("zTXt"): decodeZTXt,
	chunkType("iTXt"): decodeITXt,
	chunkType("bKGD"): decodeBKGD,
	chunkType("hIST"): decodeHIST,
	chunkType("pHYs"): decodePHYs,
	chunkType("sPLT"): decodeSPLT,
	chunkType("tIME"): decodeTIME,
	chunkType("sBIT"): decodeSBIT,
	chunkType("eXIf"): decodeEXIf,
	chunkType("dSIG"): decodeDSIG,
}

// knownAncillaryDecoders mirrors ancillaryTable's key set for the ordering
// validator's "unknown ancillary chunk" check, without exposing the
// decoder functions themselves to that package-internal concern.
var knownAncillaryDecoders = func() map[ChunkType]bool {
	m := make(map[ChunkType]bool, len(ancillaryTable))
	for t := range ancillaryTable {
		m[t] = true
	}
	return m
}()

// dispatchAncillary looks up and invokes the decoder for chunk.Type if the
// type is enabled by enabled (nil means "all types enabled"). It never
// returns a fatal error: decode failures become warnings, per spec.md §6
// ("may emit warnings via the context... either returns a record or raises
// a decode warning").
func dispatchAncillary(h Header, chunk Chunk, enabled map[string]bool) (*Metadata, *Warning) {
	if enabled != nil && !enabled[chunk.Type.String()] {
		return nil, nil
	}
	dec, ok := ancillaryTable[chunk.Type]
	if !ok {
		return nil, nil
	}
	value, err := dec(h, chunk)
	if err != nil {
		return nil, &Warning{Code: WarnCodeAncillary, Message: chunk.Type.String() + ": " + err.Error(), Offset: chunk.Offset}
	}
	return &Metadata{Type: chunk.Type.String(), Value: value}, nil
}

// GAMA is the decoded gAMA record.
type GAMA struct {
	Gamma float64 // numerator/100000, per the PNG spec's fixed-point encoding
}

func decodeGAMA(_ Header, chunk Chunk) (any, error) {
	if len(chunk.Data) != 4 {
		return nil, errBadAncillarySize
	}
	v := xdr.ByteOrder.Uint32(chunk.Data)
	return GAMA{Gamma: float64(v) / 100000.0}, nil
}

// CHRM is the decoded cHRM record: CIE xy chromaticity coordinates.
type CHRM struct {
	WhiteX, WhiteY float64
	RedX, RedY     float64
	GreenX, GreenY float64
	BlueX, BlueY   float64
}

func decodeCHRM(_ Header, chunk Chunk) (any, error) {
	if len(chunk.Data) != 32 {
		return nil, errBadAncillarySize
	}
	vals := make([]float64, 8)
	for i := 0; i < 8; i++ {
		vals[i] = float64(xdr.ByteOrder.Uint32(chunk.Data[i*4:])) / 100000.0
	}
	return CHRM{
		WhiteX: vals[0], WhiteY: vals[1],
		RedX: vals[2], RedY: vals[3],
		GreenX: vals[4], GreenY: vals[5],
		BlueX: vals[6], BlueY: vals[7],
	}, nil
}

// SRGB is the decoded sRGB rendering intent.
type SRGB struct {
	Intent uint8
}

func decodeSRGB(_ Header, chunk Chunk) (any, error) {
	if len(chunk.Data) != 1 {
		return nil, errBadAncillarySize
	}
	return SRGB{Intent: chunk.Data[0]}, nil
}

// ICCP is the decoded iCCP record: a named, zlib-compressed ICC profile.
type ICCP struct {
	ProfileName string
	Profile     []byte
}

func decodeICCP(_ Header, chunk Chunk) (any, error) {
	name, rest, err := readNullTerminated(chunk.Data, 79)
	if err != nil {
		return nil, err
	}
	profile, err := inflateUnknownSize(rest)
	if err != nil {
		return nil, err
	}
	return ICCP{ProfileName: name, Profile: profile}, nil
}

// TextRecord is the decoded record shared by tEXt, zTXt, and iTXt.
type TextRecord struct {
	Keyword          string
	LanguageTag      string // iTXt only
	TranslatedKeyword string // iTXt only
	Text             string
	Compressed       bool
}

func decodeTEXt(_ Header, chunk Chunk) (any, error) {
	keyword, rest, err := readNullTerminated(chunk.Data, 79)
	if err != nil {
		return nil, err
	}
	return TextRecord{Keyword: keyword, Text: string(rest)}, nil
}

func decodeZTXt(_ Header, chunk Chunk) (any, error) {
	keyword, rest, err := readNullTerminated(chunk.Data, 79)
	if err != nil {
		return nil, err
	}
	if len(rest) < 1 {
		return nil, errBadAncillarySize
	}
	method, compressed := rest[0], rest[1:]
	if method != 0 {
		return nil, errUnknownCompressionMethod
	}
	text, err := inflateUnknownSize(compressed)
	if err != nil {
		return nil, err
	}
	return TextRecord{Keyword: keyword, Text: string(text), Compressed: true}, nil
}

func decodeITXt(_ Header, chunk Chunk) (any, error) {
	keyword, rest, err := readNullTerminated(chunk.Data, 79)
	if err != nil {
		return nil, err
	}
	if len(rest) < 2 {
		return nil, errBadAncillarySize
	}
	compFlag, method := rest[0], rest[1]
	rest = rest[2:]
	lang, rest, err := readNullTerminated(rest, len(rest))
	if err != nil {
		return nil, err
	}
	transKeyword, rest, err := readNullTerminatedUTF8(rest)
	if err != nil {
		return nil, err
	}

	var text []byte
	if compFlag != 0 {
		if method != 0 {
			return nil, errUnknownCompressionMethod
		}
		text, err = inflateUnknownSize(rest)
		if err != nil {
			return nil, err
		}
	} else {
		text = rest
	}
	return TextRecord{
		Keyword:           keyword,
		LanguageTag:       lang,
		TranslatedKeyword: transKeyword,
		Text:              string(text),
		Compressed:        compFlag != 0,
	}, nil
}

// BKGD is the decoded background color; its shape depends on color type.
type BKGD struct {
	PaletteIndex *uint8
	Gray         *uint16
	RGB          *RGB16
}

func decodeBKGD(h Header, chunk Chunk) (any, error) {
	switch h.ColorType {
	case ColorIndexed:
		if len(chunk.Data) != 1 {
			return nil, errBadAncillarySize
		}
		v := chunk.Data[0]
		return BKGD{PaletteIndex: &v}, nil
	case ColorGrayscale, ColorGrayscaleAlpha:
		if len(chunk.Data) != 2 {
			return nil, errBadAncillarySize
		}
		v := xdr.ByteOrder.Uint16(chunk.Data)
		return BKGD{Gray: &v}, nil
	default:
		if len(chunk.Data) != 6 {
			return nil, errBadAncillarySize
		}
		v := RGB16{
			R: xdr.ByteOrder.Uint16(chunk.Data[0:2]),
			G: xdr.ByteOrder.Uint16(chunk.Data[2:4]),
			B: xdr.ByteOrder.Uint16(chunk.Data[4:6]),
		}
		return BKGD{RGB: &v}, nil
	}
}

// HIST is the decoded palette-entry frequency histogram.
type HIST struct {
	Frequencies []uint16
}

func decodeHIST(_ Header, chunk Chunk) (any, error) {
	if len(chunk.Data)%2 != 0 {
		return nil, errBadAncillarySize
	}
	n := len(chunk.Data) / 2
	freqs := make([]uint16, n)
	for i := 0; i < n; i++ {
		freqs[i] = xdr.ByteOrder.Uint16(chunk.Data[i*2:])
	}
	return HIST{Frequencies: freqs}, nil
}

// PHYS is the decoded physical pixel dimensions.
type PHYS struct {
	PPUX, PPUY uint32
	Unit       uint8 // 0 = unknown, 1 = meter
}

func decodePHYs(_ Header, chunk Chunk) (any, error) {
	if len(chunk.Data) != 9 {
		return nil, errBadAncillarySize
	}
	return PHYS{
		PPUX: xdr.ByteOrder.Uint32(chunk.Data[0:4]),
		PPUY: xdr.ByteOrder.Uint32(chunk.Data[4:8]),
		Unit: chunk.Data[8],
	}, nil
}

// SPLTEntry is a single suggested-palette entry.
type SPLTEntry struct {
	R, G, B, A uint16
	Frequency  uint16
}

// SPLT is a named suggested palette.
type SPLT struct {
	Name       string
	SampleDepth uint8
	Entries    []SPLTEntry
}

func decodeSPLT(_ Header, chunk Chunk) (any, error) {
	name, rest, err := readNullTerminated(chunk.Data, 79)
	if err != nil {
		return nil, err
	}
	if len(rest) < 1 {
		return nil, errBadAncillarySize
	}
	depth, rest := rest[0], rest[1:]

	var entrySize int
	switch depth {
	case 8:
		entrySize = 6
	case 16:
		entrySize = 10
	default:
		return nil, errBadAncillarySize
	}
	if len(rest)%entrySize != 0 {
		return nil, errBadAncillarySize
	}
	n := len(rest) / entrySize
	entries := make([]SPLTEntry, n)
	for i := 0; i < n; i++ {
		e := rest[i*entrySize:]
		if depth == 8 {
			entries[i] = SPLTEntry{
				R: uint16(e[0]), G: uint16(e[1]), B: uint16(e[2]), A: uint16(e[3]),
				Frequency: xdr.ByteOrder.Uint16(e[4:6]),
			}
		} else {
			entries[i] = SPLTEntry{
				R: xdr.ByteOrder.Uint16(e[0:2]), G: xdr.ByteOrder.Uint16(e[2:4]),
				B: xdr.ByteOrder.Uint16(e[4:6]), A: xdr.ByteOrder.Uint16(e[6:8]),
				Frequency: xdr.ByteOrder.Uint16(e[8:10]),
			}
		}
	}
	return SPLT{Name: name, SampleDepth: depth, Entries: entries}, nil
}

// TIME is the decoded last-modification timestamp.
type TIME struct {
	Year                     uint16
	Month, Day               uint8
	Hour, Minute, Second     uint8
}

func decodeTIME(_ Header, chunk Chunk) (any, error) {
	if len(chunk.Data) != 7 {
		return nil, errBadAncillarySize
	}
	return TIME{
		Year:   xdr.ByteOrder.Uint16(chunk.Data[0:2]),
		Month:  chunk.Data[2],
		Day:    chunk.Data[3],
		Hour:   chunk.Data[4],
		Minute: chunk.Data[5],
		Second: chunk.Data[6],
	}, nil
}

// SBIT is the decoded significant-bits-per-channel record.
type SBIT struct {
	Bits []uint8
}

func decodeSBIT(h Header, chunk Chunk) (any, error) {
	want := h.Channels()
	if h.ColorType == ColorIndexed {
		want = 3
	}
	if len(chunk.Data) != want {
		return nil, errBadAncillarySize
	}
	bits := make([]uint8, len(chunk.Data))
	copy(bits, chunk.Data)
	return SBIT{Bits: bits}, nil
}

// EXIf is the raw, uninterpreted Exif TIFF payload.
type EXIf struct {
	Raw []byte
}

func decodeEXIf(_ Header, chunk Chunk) (any, error) {
	raw := make([]byte, len(chunk.Data))
	copy(raw, chunk.Data)
	return EXIf{Raw: raw}, nil
}

// DSIG is the raw, uninterpreted digital signature payload.
type DSIG struct {
	Raw []byte
}

func decodeDSIG(_ Header, chunk Chunk) (any, error) {
	raw := make([]byte, len(chunk.Data))
	copy(raw, chunk.Data)
	return DSIG{Raw: raw}, nil
}

// readNullTerminated splits data at the first NUL byte, enforcing maxLen on
// the portion before it (keywords are capped at 79 bytes per the PNG spec).
func readNullTerminated(data []byte, maxLen int) (string, []byte, error) {
	for i, b := range data {
		if b == 0 {
			if i > maxLen {
				return "", nil, errBadAncillarySize
			}
			return string(data[:i]), data[i+1:], nil
		}
	}
	return "", nil, errMissingNulTerminator
}

// readNullTerminatedUTF8 is readNullTerminated without the Latin-1 keyword
// length cap, for iTXt's UTF-8 translated-keyword field.
func readNullTerminatedUTF8(data []byte) (string, []byte, error) {
	for i, b := range data {
		if b == 0 {
			return string(data[:i]), data[i+1:], nil
		}
	}
	return "", nil, errMissingNulTerminator
}
