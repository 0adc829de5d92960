package png

import (
	"github.com/AnturK/png-codec/internal/xdr"
)

// Color type constants, per spec.md §3.
const (
	ColorGrayscale      = 0
	ColorRGB            = 2
	ColorIndexed        = 3
	ColorGrayscaleAlpha = 4
	ColorRGBA           = 6
)

// Header holds the parsed IHDR fields.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// legalDepths maps each color type to its set of legal bit depths, per the
// table in spec.md §3.
var legalDepths = map[uint8]map[uint8]bool{
	ColorGrayscale:      {1: true, 2: true, 4: true, 8: true, 16: true},
	ColorRGB:            {8: true, 16: true},
	ColorIndexed:        {1: true, 2: true, 4: true, 8: true},
	ColorGrayscaleAlpha: {8: true, 16: true},
	ColorRGBA:           {8: true, 16: true},
}

// Channels returns the number of samples per pixel for the header's color type.
func (h Header) Channels() int {
	switch h.ColorType {
	case ColorGrayscale:
		return 1
	case ColorRGB:
		return 3
	case ColorIndexed:
		return 1
	case ColorGrayscaleAlpha:
		return 2
	case ColorRGBA:
		return 4
	}
	return 0
}

// BitsPerPixel returns channels*bitDepth, the raw (unrounded) pixel width in bits.
func (h Header) BitsPerPixel() int {
	return h.Channels() * int(h.BitDepth)
}

// FilterUnit returns max(1, ceil(channels*bitDepth/8)), the stride used by
// the filter predictors (spec.md §4.4 / GLOSSARY "bpp").
func (h Header) FilterUnit() int {
	bits := h.BitsPerPixel()
	u := (bits + 7) / 8
	if u < 1 {
		return 1
	}
	return u
}

// BytesPerScanline returns ceil(width*bitsPerPixel/8), excluding the filter
// type byte.
func (h Header) BytesPerScanline() int {
	return (int(h.Width)*h.BitsPerPixel() + 7) / 8
}

// Validate checks the IHDR invariants from spec.md §3: nonzero dimensions,
// a legal (colorType, bitDepth) combination, and zero-valued compression/
// filter methods.
func (h Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return newDecodeError(ErrCodeBadIHDR, "width and height must be >= 1", 0, nil)
	}
	depths, ok := legalDepths[h.ColorType]
	if !ok {
		return newDecodeError(ErrCodeBadColorDepth, "unknown color type", 0, nil)
	}
	if !depths[h.BitDepth] {
		return newDecodeError(ErrCodeBadColorDepth, "illegal (colorType, bitDepth) combination", 0, nil)
	}
	if h.CompressionMethod != 0 {
		return newDecodeError(ErrCodeBadIHDR, "unsupported compression method", 0, nil)
	}
	if h.FilterMethod != 0 {
		return newDecodeError(ErrCodeBadIHDR, "unsupported filter method", 0, nil)
	}
	if h.InterlaceMethod != 0 && h.InterlaceMethod != 1 {
		return newDecodeError(ErrCodeBadIHDR, "unsupported interlace method", 0, nil)
	}
	return nil
}

// parseIHDR parses the 13-byte IHDR chunk payload.
func parseIHDR(data []byte, offset int) (Header, error) {
	if len(data) != 13 {
		return Header{}, newDecodeError(ErrCodeBadIHDR, "IHDR must be exactly 13 bytes", offset, nil)
	}
	r := xdr.NewReader(data)
	width, _ := r.ReadUint32()
	height, _ := r.ReadUint32()
	bitDepth, _ := r.ReadByte()
	colorType, _ := r.ReadByte()
	compression, _ := r.ReadByte()
	filter, _ := r.ReadByte()
	interlace, _ := r.ReadByte()

	h := Header{
		Width:             width,
		Height:            height,
		BitDepth:          bitDepth,
		ColorType:         colorType,
		CompressionMethod: compression,
		FilterMethod:      filter,
		InterlaceMethod:   interlace,
	}
	if err := h.Validate(); err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.Offset = offset
		}
		return Header{}, err
	}
	return h, nil
}

// RGB is a single palette entry or tRNS color-key triple.
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered sequence of RGB entries, per spec.md §3.
type Palette []RGB

// parsePLTE parses a PLTE chunk payload. Length must be a positive multiple
// of 3, and at most 256 entries.
func parsePLTE(data []byte, offset int) (Palette, error) {
	if len(data) == 0 || len(data)%3 != 0 {
		return nil, newDecodeError(ErrCodeBadPalette, "PLTE length must be a positive multiple of 3", offset, nil)
	}
	n := len(data) / 3
	if n > 256 {
		return nil, newDecodeError(ErrCodeBadPalette, "PLTE has more than 256 entries", offset, nil)
	}
	pal := make(Palette, n)
	for i := 0; i < n; i++ {
		pal[i] = RGB{R: data[i*3], G: data[i*3+1], B: data[i*3+2]}
	}
	return pal, nil
}

// Transparency holds the tRNS chunk's decoded transparency key, whose shape
// depends on the image's color type (spec.md §3).
type Transparency struct {
	// GrayKey is set for colorType 0: samples equal to this value are fully transparent.
	GrayKey   *uint16
	// RGBKey is set for colorType 2: pixels equal to this RGB triple are fully transparent.
	RGBKey    *RGB16
	// IndexAlpha is set for colorType 3: per-palette-entry alpha, missing
	// entries default to 255.
	IndexAlpha []uint8
}

// RGB16 is a 16-bit RGB triple, used for the colorType-2 tRNS key.
type RGB16 struct {
	R, G, B uint16
}

// parseTRNS parses a tRNS chunk payload according to the header's color type.
func parseTRNS(data []byte, h Header, paletteLen int, offset int) (*Transparency, error) {
	switch h.ColorType {
	case ColorGrayscale:
		if len(data) != 2 {
			return nil, newDecodeError(ErrCodeBadIHDR, "tRNS for grayscale must be 2 bytes", offset, nil)
		}
		v := xdr.ByteOrder.Uint16(data)
		return &Transparency{GrayKey: &v}, nil
	case ColorRGB:
		if len(data) != 6 {
			return nil, newDecodeError(ErrCodeBadIHDR, "tRNS for RGB must be 6 bytes", offset, nil)
		}
		key := RGB16{
			R: xdr.ByteOrder.Uint16(data[0:2]),
			G: xdr.ByteOrder.Uint16(data[2:4]),
			B: xdr.ByteOrder.Uint16(data[4:6]),
		}
		return &Transparency{RGBKey: &key}, nil
	case ColorIndexed:
		if len(data) > paletteLen {
			return nil, newDecodeError(ErrCodeBadIHDR, "tRNS has more entries than PLTE", offset, nil)
		}
		alpha := make([]uint8, paletteLen)
		for i := range alpha {
			alpha[i] = 255
		}
		copy(alpha, data)
		return &Transparency{IndexAlpha: alpha}, nil
	default:
		// colorType 4 and 6 already carry alpha; tRNS is forbidden there and
		// the ordering validator raises that as a fatal error.
		return nil, nil
	}
}
