package png

// Filter type bytes prefixing each scanline, per spec.md §4.4.
const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// paeth implements the three-neighbor Paeth predictor from spec.md §4.4:
// p = a+b-c, pick whichever of a, b, c is closest to p, breaking ties in
// the order a, b, c.
func paeth(a, b, c int) int {
	p := a + b - c
	pa := abs(p - a)
	pb := abs(p - b)
	pc := abs(p - c)
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// unfilterRows reverses the per-scanline PNG filters in raw, which holds
// numRows scanlines each prefixed by a filter-type byte and rowBytes bytes
// of filtered data. It reuses a single pair of scanline-sized buffers across
// rows (spec.md §9, "Filter buffer reuse") instead of reallocating per row.
// The "previous row" resets to all-zero at the start of each call, which is
// exactly what's needed both for the non-interlaced case and for each Adam7
// pass (spec.md §4.5: "Each pass is independently filter-reversed").
func unfilterRows(raw []byte, rowBytes, numRows, bpp int) ([]byte, error) {
	stride := rowBytes + 1
	if len(raw) != stride*numRows {
		return nil, newDecodeError(ErrCodeTruncatedIDAT, "inflated stream has wrong length for declared dimensions", 0, nil)
	}

	out := make([]byte, rowBytes*numRows)
	prev := make([]byte, rowBytes)
	cur := make([]byte, rowBytes)

	for row := 0; row < numRows; row++ {
		rowStart := row * stride
		ft := raw[rowStart]
		copy(cur, raw[rowStart+1:rowStart+stride])

		switch ft {
		case filterNone:
			// no-op, cur already holds x[i]
		case filterSub:
			for i := 0; i < rowBytes; i++ {
				a := byte(0)
				if i >= bpp {
					a = cur[i-bpp]
				}
				cur[i] = cur[i] + a
			}
		case filterUp:
			for i := 0; i < rowBytes; i++ {
				cur[i] = cur[i] + prev[i]
			}
		case filterAverage:
			for i := 0; i < rowBytes; i++ {
				var a, b int
				if i >= bpp {
					a = int(cur[i-bpp])
				}
				b = int(prev[i])
				cur[i] = cur[i] + byte((a+b)/2)
			}
		case filterPaeth:
			for i := 0; i < rowBytes; i++ {
				var a, b, c int
				if i >= bpp {
					a = int(cur[i-bpp])
					c = int(prev[i-bpp])
				}
				b = int(prev[i])
				cur[i] = cur[i] + byte(paeth(a, b, c))
			}
		default:
			return nil, newDecodeError(ErrCodeInvalidFilter, "invalid filter type byte", rowStart, nil)
		}

		copy(out[row*rowBytes:(row+1)*rowBytes], cur)
		prev, cur = cur, prev
	}

	return out, nil
}

// filterRow computes all five filtered candidates for a scanline and
// selects the one minimizing the sum of absolute signed byte values, the
// MAD heuristic from spec.md §4.7 / the PNG spec itself. dst must be
// rowBytes+1 long; it receives the filter type byte followed by the
// filtered row.
func filterRow(dst, cur, prev []byte, bpp int) {
	rowBytes := len(cur)
	candidates := [5][]byte{
		make([]byte, rowBytes), // none
		make([]byte, rowBytes), // sub
		make([]byte, rowBytes), // up
		make([]byte, rowBytes), // average
		make([]byte, rowBytes), // paeth
	}
	copy(candidates[filterNone], cur)

	for i := 0; i < rowBytes; i++ {
		var a, b, c int
		if i >= bpp {
			a = int(cur[i-bpp])
			c = int(prev[i-bpp])
		}
		b = int(prev[i])

		candidates[filterSub][i] = cur[i] - byte(a)
		candidates[filterUp][i] = cur[i] - byte(b)
		candidates[filterAverage][i] = cur[i] - byte((a+b)/2)
		candidates[filterPaeth][i] = cur[i] - byte(paeth(a, b, c))
	}

	best := 0
	bestScore := madScore(candidates[0])
	for ft := 1; ft < 5; ft++ {
		score := madScore(candidates[ft])
		if score < bestScore {
			bestScore = score
			best = ft
		}
	}

	dst[0] = byte(best)
	copy(dst[1:], candidates[best])
}

// madScore sums the absolute value of each filtered byte interpreted as a
// signed int8, the heuristic spec.md §4.7 names explicitly.
func madScore(row []byte) int {
	sum := 0
	for _, b := range row {
		sum += abs(int(int8(b)))
	}
	return sum
}
