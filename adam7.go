package png

// adam7Pass describes one of Adam7's seven interlacing passes, per spec.md
// §4.5.
type adam7Pass struct {
	xStart, yStart, xStride, yStride int
}

var adam7Passes = [7]adam7Pass{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// passDims returns the pixel dimensions of one Adam7 pass over a
// width x height image.
func (p adam7Pass) passDims(width, height int) (int, int) {
	w := ceilDiv(width-p.xStart, p.xStride)
	h := ceilDiv(height-p.yStart, p.yStride)
	return w, h
}

// expectedInflatedLen computes the exact byte length the inflated IDAT
// stream must have for the given header, per spec.md §4.3.
func expectedInflatedLen(h Header) int {
	bpp := h.BitsPerPixel()
	if h.InterlaceMethod == 0 {
		rowBytes := (int(h.Width)*bpp + 7) / 8
		return int(h.Height) * (1 + rowBytes)
	}
	total := 0
	for _, p := range adam7Passes {
		pw, ph := p.passDims(int(h.Width), int(h.Height))
		if pw == 0 || ph == 0 {
			continue
		}
		rowBytes := (pw*bpp + 7) / 8
		total += ph * (1 + rowBytes)
	}
	return total
}

// unpackInterlaced walks the seven Adam7 passes within raw (the fully
// inflated IDAT stream), independently filter-reverses each pass (spec.md
// §4.5: "the 'previous row' resets per pass"), and scatters each pass's
// pixels into the final grid via sink.
func unpackInterlaced(raw []byte, h Header, pal Palette, trns *Transparency, sink func(x, y int, r, g, b, a uint16)) error {
	bpp := h.FilterUnit()
	offset := 0

	for _, p := range adam7Passes {
		pw, ph := p.passDims(int(h.Width), int(h.Height))
		if pw == 0 || ph == 0 {
			continue
		}
		rowBytes := (pw*h.BitsPerPixel() + 7) / 8
		passLen := (rowBytes + 1) * ph
		if offset+passLen > len(raw) {
			return newDecodeError(ErrCodeTruncatedIDAT, "inflated stream too short for Adam7 pass", offset, nil)
		}
		passData := raw[offset : offset+passLen]
		offset += passLen

		unfiltered, err := unfilterRows(passData, rowBytes, ph, bpp)
		if err != nil {
			return err
		}

		for row := 0; row < ph; row++ {
			rowData := unfiltered[row*rowBytes : (row+1)*rowBytes]
			y := p.yStart + row*p.yStride
			err := unpackRow(h, pal, trns, rowData, pw, func(col int, r, g, b, a uint16) {
				x := p.xStart + col*p.xStride
				sink(x, y, r, g, b, a)
			})
			if err != nil {
				return err
			}
		}
	}

	if offset != len(raw) {
		return newDecodeError(ErrCodeExcessIDAT, "inflated stream longer than Adam7 passes account for", offset, nil)
	}
	return nil
}
