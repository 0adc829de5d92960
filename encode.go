package png

import "github.com/AnturK/png-codec/internal/xdr"

// Encode serializes img into a complete PNG byte stream, the mirror of
// Decode: pack pixels into the chosen (colorType, bitDepth) layout, select
// a per-scanline filter, deflate, and frame the result as chunks. It never
// interlaces its output; Adam7 is a decode-side concession to progressive
// display, not something an encoder is obliged to produce.
func Encode(img Image, opts EncodeOptions) ([]byte, error) {
	width, height := img.Bounds()
	h := Header{
		Width:     uint32(width),
		Height:    uint32(height),
		BitDepth:  opts.BitDepth,
		ColorType: opts.ColorType,
	}
	if err := h.Validate(); err != nil {
		de := err.(*DecodeError)
		return nil, newEncodeError(ErrCodeBadOptions, de.Message)
	}

	var pal Palette
	var idx map[[3]uint8]int
	var alpha []uint8
	if h.ColorType == ColorIndexed {
		var err error
		pal, idx, alpha, err = buildPalette(img)
		if err != nil {
			return nil, err
		}
	}

	idat := packAndFilter(h, img, idx)
	compressed, err := deflateDefault(idat)
	if err != nil {
		return nil, newEncodeError(ErrCodeDeflate, err.Error())
	}

	w := xdr.NewWriter(len(compressed) + 256)
	w.WriteBytes(Signature[:])

	ihdr := make([]byte, 13)
	xdr.ByteOrder.PutUint32(ihdr[0:4], h.Width)
	xdr.ByteOrder.PutUint32(ihdr[4:8], h.Height)
	ihdr[8] = h.BitDepth
	ihdr[9] = h.ColorType
	ihdr[10] = 0 // compression method
	ihdr[11] = 0 // filter method
	ihdr[12] = 0 // interlace method
	writeChunk(w, "IHDR", ihdr)

	if h.ColorType == ColorIndexed {
		plteData := make([]byte, len(pal)*3)
		for i, c := range pal {
			plteData[i*3] = c.R
			plteData[i*3+1] = c.G
			plteData[i*3+2] = c.B
		}
		writeChunk(w, "PLTE", plteData)

		if hasTransparency(alpha) {
			writeChunk(w, "tRNS", trimTrailingOpaque(alpha))
		}
	}

	for _, ac := range opts.AncillaryChunks {
		if ac.Type == "IHDR" || ac.Type == "PLTE" || ac.Type == "IDAT" || ac.Type == "IEND" {
			continue
		}
		writeChunk(w, ac.Type, ac.Data)
	}

	writeChunk(w, "IDAT", compressed)
	writeChunk(w, "IEND", nil)

	return w.Bytes(), nil
}

// packAndFilter packs every scanline of img into h's pixel layout and picks
// a filter per row via the MAD heuristic in filter.go. Each row is packed
// into a freshly allocated buffer, which then serves as the previous row for
// the next one.
func packAndFilter(h Header, img Image, idx map[[3]uint8]int) []byte {
	rowBytes := h.BytesPerScanline()
	bpp := h.FilterUnit()
	height := int(h.Height)

	out := make([]byte, 0, height*(rowBytes+1))
	prev := make([]byte, rowBytes)

	for y := 0; y < height; y++ {
		cur := make([]byte, rowBytes)
		packRow(h, img, y, idx, cur)

		rowDst := make([]byte, rowBytes+1)
		filterRow(rowDst, cur, prev, bpp)
		out = append(out, rowDst...)

		prev = cur
	}
	return out
}

// hasTransparency reports whether any palette entry is non-opaque, the
// condition under which a tRNS chunk is worth emitting for an indexed image.
func hasTransparency(alpha []uint8) bool {
	for _, a := range alpha {
		if a != 255 {
			return true
		}
	}
	return false
}

// trimTrailingOpaque drops the trailing run of fully-opaque entries from a
// tRNS alpha table; the PNG spec lets tRNS be shorter than PLTE, with
// missing entries defaulting to opaque (parseTRNS mirrors this on decode).
func trimTrailingOpaque(alpha []uint8) []byte {
	n := len(alpha)
	for n > 0 && alpha[n-1] == 255 {
		n--
	}
	return alpha[:n]
}
