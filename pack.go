package png

import "github.com/AnturK/png-codec/internal/xdr"

// bitWriter packs fixed-width, MSB-first samples into a byte slice, the
// encode-side mirror of unpack.go's bitScanner.
type bitWriter struct {
	data   []byte
	bitPos int
}

func newBitWriter(rowBytes int) *bitWriter {
	return &bitWriter{data: make([]byte, rowBytes)}
}

func (w *bitWriter) write16(v uint16) {
	byteOff := w.bitPos / 8
	xdr.ByteOrder.PutUint16(w.data[byteOff:byteOff+2], v)
	w.bitPos += 16
}

func (w *bitWriter) write(v uint32, depth int) {
	if depth == 16 {
		w.write16(uint16(v))
		return
	}
	if depth == 8 {
		w.data[w.bitPos/8] = byte(v)
		w.bitPos += 8
		return
	}
	byteOff := w.bitPos / 8
	bitOff := w.bitPos % 8
	shift := 8 - depth - bitOff
	w.data[byteOff] |= byte(v) << shift
	w.bitPos += depth
}

// reduceSample maps an 8-or-16-bit native pixel channel down to a depth-bit
// PNG sample, the inverse of unpack.go's expand8 (x*255/(2^d-1)). Rounds to
// nearest instead of truncating, so a round trip through the same depth is
// lossless.
func reduceSample(value uint16, srcIs16 bool, depth uint8) uint32 {
	if depth == 16 {
		if srcIs16 {
			return uint32(value)
		}
		v8 := uint32(value)
		return v8<<8 | v8
	}
	var v8 uint32
	if srcIs16 {
		v8 = uint32(value >> 8)
	} else {
		v8 = uint32(value)
	}
	if depth == 8 {
		return v8
	}
	maxVal := uint32(1<<depth) - 1
	return (v8*maxVal + 127) / 255
}

// pixelAt extracts one pixel's channels from img in the same native domain
// unpack.go's pixelSink produces: 0..255 for Image8, 0..65535 for Image16.
func pixelAt(img Image, x, y int) (r, g, b, a uint16, srcIs16 bool) {
	switch im := img.(type) {
	case *Image8:
		rr, gg, bb, aa := im.At(x, y)
		return uint16(rr), uint16(gg), uint16(bb), uint16(aa), false
	case *Image16:
		rr, gg, bb, aa := im.At(x, y)
		return rr, gg, bb, aa, true
	}
	return 0, 0, 0, 0, false
}

// packRow writes one scanline's worth of pixels (row y of img) into dst,
// which must be rowBytes long, per the per-color-type layouts in spec.md
// §4.6 run in reverse. idx is non-nil only for colorType 3, mapping each
// pixel's RGB to its palette index.
func packRow(h Header, img Image, y int, idx map[[3]uint8]int, dst []byte) {
	w := newBitWriter(len(dst))
	width, _ := img.Bounds()
	depth := int(h.BitDepth)

	for x := 0; x < width; x++ {
		r, g, b, a, is16 := pixelAt(img, x, y)
		switch h.ColorType {
		case ColorGrayscale:
			w.write(reduceSample(r, is16, h.BitDepth), depth)
		case ColorRGB:
			w.write(reduceSample(r, is16, h.BitDepth), depth)
			w.write(reduceSample(g, is16, h.BitDepth), depth)
			w.write(reduceSample(b, is16, h.BitDepth), depth)
		case ColorIndexed:
			r8, g8, b8 := to8(r, is16), to8(g, is16), to8(b, is16)
			w.write(uint32(idx[[3]uint8{r8, g8, b8}]), depth)
		case ColorGrayscaleAlpha:
			w.write(reduceSample(r, is16, h.BitDepth), depth)
			w.write(reduceSample(a, is16, h.BitDepth), depth)
		case ColorRGBA:
			w.write(reduceSample(r, is16, h.BitDepth), depth)
			w.write(reduceSample(g, is16, h.BitDepth), depth)
			w.write(reduceSample(b, is16, h.BitDepth), depth)
			w.write(reduceSample(a, is16, h.BitDepth), depth)
		}
	}
	copy(dst, w.data)
}

func to8(v uint16, is16 bool) uint8 {
	if is16 {
		return byte(v >> 8)
	}
	return byte(v)
}

// buildPalette collects the distinct RGB colors used across img, assigning
// each its palette index in first-seen order. Alpha is recorded per index
// from the color's first occurrence; a later pixel re-using the same RGB
// with different alpha keeps the first value, which is the PNG palette
// model's inherent limitation (palette entries carry one alpha apiece).
// Returns ErrCodePaletteOverflow if more than 256 distinct colors appear.
func buildPalette(img Image) (Palette, map[[3]uint8]int, []uint8, error) {
	width, height := img.Bounds()
	idx := make(map[[3]uint8]int)
	var pal Palette
	var alpha []uint8

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a, is16 := pixelAt(img, x, y)
			key := [3]uint8{to8(r, is16), to8(g, is16), to8(b, is16)}
			if _, ok := idx[key]; ok {
				continue
			}
			if len(pal) >= 256 {
				return nil, nil, nil, newEncodeError(ErrCodePaletteOverflow, "image uses more than 256 distinct colors")
			}
			idx[key] = len(pal)
			pal = append(pal, RGB{R: key[0], G: key[1], B: key[2]})
			alpha = append(alpha, to8(a, is16))
		}
	}
	return pal, idx, alpha, nil
}
