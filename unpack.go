package png

import "github.com/AnturK/png-codec/internal/xdr"

// bitScanner reads fixed-width, MSB-first bit-packed samples from a byte
// slice, the layout used for bit depths 1, 2, 4, and 8 (spec.md §4.6:
// "Bit-packed rows... are unpacked MSB-first within each byte").
type bitScanner struct {
	data   []byte
	bitPos int
}

func newBitScanner(data []byte) *bitScanner {
	return &bitScanner{data: data}
}

// next16 reads a 16-bit big-endian sample; only used when depth == 16, where
// samples are always byte-aligned.
func (s *bitScanner) next16() uint32 {
	byteOff := s.bitPos / 8
	v := xdr.ByteOrder.Uint16(s.data[byteOff : byteOff+2])
	s.bitPos += 16
	return uint32(v)
}

// next reads a depth-bit sample (depth in {1,2,4,8,16}).
func (s *bitScanner) next(depth int) uint32 {
	if depth == 16 {
		return s.next16()
	}
	if depth == 8 {
		v := uint32(s.data[s.bitPos/8])
		s.bitPos += 8
		return v
	}
	byteOff := s.bitPos / 8
	bitOff := s.bitPos % 8
	b := s.data[byteOff]
	shift := 8 - depth - bitOff
	mask := byte(1<<depth - 1)
	v := uint32((b >> shift) & mask)
	s.bitPos += depth
	return v
}

// expand8 scales a depth-bit sample up to the 8-bit range, per spec.md §4.6:
// x * 255 / (2^d - 1).
func expand8(sample uint32, depth uint8) uint8 {
	if depth == 8 {
		return uint8(sample)
	}
	maxVal := uint32(1<<depth) - 1
	return uint8(sample * 255 / maxVal)
}

// pixelSink receives one unpacked pixel's channel values, in the sample's
// native domain: 0..255 for every bit depth below 16, 0..65535 for depth 16.
// col is the pixel's position within the row being unpacked; the caller
// (direct scanline iteration, or an Adam7 pass) maps col to a final (x, y).
type pixelSink func(col int, r, g, b, a uint16)

// unpackRow decodes one scanline's worth (width pixels) of already
// filter-reversed, bit-packed sample data and feeds each pixel to sink, per
// the per-color-type rules in spec.md §4.6.
func unpackRow(h Header, pal Palette, trns *Transparency, rowData []byte, width int, sink pixelSink) error {
	s := newBitScanner(rowData)
	depth := h.BitDepth

	switch h.ColorType {
	case ColorGrayscale:
		for col := 0; col < width; col++ {
			sample := s.next(int(depth))
			var v uint16
			transparent := false
			if depth == 16 {
				v = uint16(sample)
				if trns != nil && trns.GrayKey != nil && v == *trns.GrayKey {
					transparent = true
				}
			} else {
				v = uint16(expand8(sample, depth))
				if trns != nil && trns.GrayKey != nil && uint32(*trns.GrayKey) == sample {
					transparent = true
				}
			}
			a := maxChannel(depth)
			if transparent {
				a = 0
			}
			sink(col, v, v, v, a)
		}

	case ColorRGB:
		for col := 0; col < width; col++ {
			r := s.next(int(depth))
			g := s.next(int(depth))
			b := s.next(int(depth))
			transparent := trns != nil && trns.RGBKey != nil &&
				uint32(trns.RGBKey.R) == r && uint32(trns.RGBKey.G) == g && uint32(trns.RGBKey.B) == b
			var rv, gv, bv uint16
			if depth == 16 {
				rv, gv, bv = uint16(r), uint16(g), uint16(b)
			} else {
				rv, gv, bv = uint16(expand8(r, depth)), uint16(expand8(g, depth)), uint16(expand8(b, depth))
			}
			a := maxChannel(depth)
			if transparent {
				a = 0
			}
			sink(col, rv, gv, bv, a)
		}

	case ColorIndexed:
		for col := 0; col < width; col++ {
			idx := s.next(int(depth))
			if int(idx) >= len(pal) {
				return newDecodeError(ErrCodePaletteIndexOOR, "palette index out of range", 0, nil)
			}
			c := pal[idx]
			a := uint16(255)
			if trns != nil && trns.IndexAlpha != nil && int(idx) < len(trns.IndexAlpha) {
				a = uint16(trns.IndexAlpha[idx])
			}
			sink(col, uint16(c.R), uint16(c.G), uint16(c.B), a)
		}

	case ColorGrayscaleAlpha:
		for col := 0; col < width; col++ {
			gray := s.next(int(depth))
			alpha := s.next(int(depth))
			var v, a uint16
			if depth == 16 {
				v, a = uint16(gray), uint16(alpha)
			} else {
				v, a = uint16(expand8(gray, depth)), uint16(expand8(alpha, depth))
			}
			sink(col, v, v, v, a)
		}

	case ColorRGBA:
		for col := 0; col < width; col++ {
			r := s.next(int(depth))
			g := s.next(int(depth))
			b := s.next(int(depth))
			a := s.next(int(depth))
			if depth == 16 {
				sink(col, uint16(r), uint16(g), uint16(b), uint16(a))
			} else {
				sink(col, uint16(expand8(r, depth)), uint16(expand8(g, depth)), uint16(expand8(b, depth)), uint16(expand8(a, depth)))
			}
		}
	}
	return nil
}

func maxChannel(depth uint8) uint16 {
	if depth == 16 {
		return 65535
	}
	return 255
}
