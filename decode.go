package png

// Decode reads a complete PNG byte stream and returns its decoded image
// plus every piece of metadata spec.md §6 names: the parsed chunk list,
// dispatched ancillary records, and accumulated warnings/info. It is the
// single public entry point for the decode direction; everything else in
// this package exists to be driven by it.
func Decode(data []byte, opts DecodeOptions) (*DecodeResult, error) {
	if !hasSignature(data) {
		return nil, newDecodeError(ErrCodeBadSignature, "missing or malformed PNG signature", 0, nil)
	}

	chunks, warnings, err := frameChunks(data[len(Signature):])
	if err != nil {
		return nil, offsetBy(err, len(Signature))
	}
	for i := range chunks {
		chunks[i].Offset += len(Signature)
	}
	for i := range warnings {
		warnings[i].Offset += len(Signature)
	}
	if opts.StrictMode && len(warnings) > 0 {
		return nil, newDecodeError(ErrCodeStrictWarning, warnings[0].Message, warnings[0].Offset, nil)
	}

	header, err := parseIHDR(chunks[0].Data, chunks[0].Offset)
	if err != nil {
		return nil, attachWarnings(err, warnings)
	}

	var orderWarnings []Warning
	var info []string
	if opts.StrictMode {
		orderWarnings, info, err = validateOrderStrict(chunks, header)
	} else {
		orderWarnings, info, err = validateOrder(chunks, header)
	}
	if err != nil {
		return nil, attachWarnings(err, append(warnings, orderWarnings...))
	}
	warnings = append(warnings, orderWarnings...)

	var (
		palette Palette
		trns    *Transparency
		idat    [][]byte
		idatLen int
	)
	var metadata []Metadata
	enabled := opts.enabledSet()

	for _, c := range chunks {
		switch c.Type {
		case chunkType("IHDR"), chunkType("IEND"):
			// already handled
		case chunkType("PLTE"):
			if palette == nil {
				palette, err = parsePLTE(c.Data, c.Offset)
				if err != nil {
					return nil, attachWarnings(err, warnings)
				}
			}
		case chunkType("tRNS"):
			if trns == nil {
				trns, err = parseTRNS(c.Data, header, len(palette), c.Offset)
				if err != nil {
					return nil, attachWarnings(err, warnings)
				}
			}
		case chunkType("IDAT"):
			idat = append(idat, c.Data)
			idatLen += len(c.Data)
		default:
			meta, warn := dispatchAncillary(header, c, enabled)
			if warn != nil {
				if opts.StrictMode {
					return nil, newDecodeError(ErrCodeStrictWarning, warn.Message, warn.Offset, warnings)
				}
				warnings = append(warnings, *warn)
			}
			if meta != nil {
				metadata = append(metadata, *meta)
			}
		}
	}

	if header.ColorType == ColorIndexed && palette == nil {
		return nil, attachWarnings(newDecodeError(ErrCodeBadPalette, "indexed image has no PLTE chunk", chunks[0].Offset, nil), warnings)
	}

	compressed := make([]byte, 0, idatLen)
	for _, d := range idat {
		compressed = append(compressed, d...)
	}

	inflated, err := inflateExact(compressed, expectedInflatedLen(header))
	if err != nil {
		return nil, attachWarnings(newDecodeError(ErrCodeInflate, err.Error(), 0, nil), warnings)
	}

	img8, img16, decErr := assembleImage(header, palette, trns, inflated, opts.Force32)
	if decErr != nil {
		return nil, attachWarnings(decErr, warnings)
	}

	return &DecodeResult{
		Image8:  img8,
		Image16: img16,
		Details: Details{
			BitDepth:        header.BitDepth,
			ColorType:       header.ColorType,
			InterlaceMethod: header.InterlaceMethod,
		},
		Palette:   palette,
		Metadata:  metadata,
		RawChunks: toRawChunks(chunks),
		Warnings:  warnings,
		Info:      info,
	}, nil
}

// assembleImage filter-reverses and unpacks the inflated IDAT stream,
// dispatching on interlace method, and lands pixels directly in either an
// Image8 or an Image16 depending on the header's bit depth and force32.
func assembleImage(h Header, pal Palette, trns *Transparency, inflated []byte, force32 bool) (*Image8, *Image16, error) {
	width, height := int(h.Width), int(h.Height)

	if h.BitDepth == 16 && !force32 {
		img := NewImage16(width, height)
		sink16 := func(x, y int, r, g, b, a uint16) { img.Set(x, y, r, g, b, a) }
		if err := runPipeline(h, pal, trns, inflated, sink16); err != nil {
			return nil, nil, err
		}
		return nil, img, nil
	}

	img := NewImage8(width, height)
	shift := h.BitDepth == 16 // force32: reduce 16-bit samples to 8-bit
	sink8 := func(x, y int, r, g, b, a uint16) {
		if shift {
			img.Set(x, y, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		} else {
			img.Set(x, y, byte(r), byte(g), byte(b), byte(a))
		}
	}
	if err := runPipeline(h, pal, trns, inflated, sink8); err != nil {
		return nil, nil, err
	}
	return img, nil, nil
}

// runPipeline reverses filtering (and, for interlaced images, Adam7
// deinterlacing) and unpacks every pixel of the inflated IDAT stream into
// sink, per spec.md §4.3-§4.6.
func runPipeline(h Header, pal Palette, trns *Transparency, inflated []byte, sink func(x, y int, r, g, b, a uint16)) error {
	if h.InterlaceMethod == 1 {
		return unpackInterlaced(inflated, h, pal, trns, sink)
	}

	rowBytes := h.BytesPerScanline()
	bpp := h.FilterUnit()
	unfiltered, err := unfilterRows(inflated, rowBytes, int(h.Height), bpp)
	if err != nil {
		return err
	}
	for y := 0; y < int(h.Height); y++ {
		row := unfiltered[y*rowBytes : (y+1)*rowBytes]
		err := unpackRow(h, pal, trns, row, int(h.Width), func(col int, r, g, b, a uint16) {
			sink(col, y, r, g, b, a)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func toRawChunks(chunks []Chunk) []RawChunk {
	out := make([]RawChunk, len(chunks))
	for i, c := range chunks {
		out[i] = RawChunk{
			Offset:   c.Offset,
			Type:     c.Type.String(),
			Length:   uint32(len(c.Data)),
			CRC:      c.CRC,
			CRCValid: c.CRCValid,
		}
	}
	return out
}

// offsetBy shifts a *DecodeError's offset by delta, leaving any other error
// type untouched. frameChunks reports offsets relative to the start of the
// chunk stream (just past the signature); callers outside it see absolute
// file offsets.
func offsetBy(err error, delta int) error {
	if de, ok := err.(*DecodeError); ok {
		de.Offset += delta
		for i := range de.Warnings {
			de.Warnings[i].Offset += delta
		}
	}
	return err
}

// attachWarnings folds warnings accumulated before a fatal error into that
// error's Warnings field, so a caller always sees the full diagnostic
// picture even from a failed decode.
func attachWarnings(err error, warnings []Warning) error {
	if de, ok := err.(*DecodeError); ok {
		de.Warnings = append(warnings, de.Warnings...)
	}
	return err
}
