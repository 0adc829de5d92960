package png

// knownCriticalTypes are the four critical (uppercase-first-letter) chunk
// types this codec understands. Any other chunk whose type has an
// uppercase first letter is an unrecognized critical chunk and is fatal
// per spec.md §4.2.
var knownCriticalTypes = map[ChunkType]bool{
	chunkType("IHDR"): true,
	chunkType("PLTE"): true,
	chunkType("IDAT"): true,
	chunkType("IEND"): true,
}

// singularAncillary lists ancillary chunk types that the PNG spec allows at
// most once per stream.
var singularAncillary = map[ChunkType]bool{
	chunkType("gAMA"): true,
	chunkType("cHRM"): true,
	chunkType("sRGB"): true,
	chunkType("iCCP"): true,
	chunkType("pHYs"): true,
	chunkType("tIME"): true,
	chunkType("sBIT"): true,
	chunkType("hIST"): true,
	chunkType("bKGD"): true,
	chunkType("tRNS"): true,
	chunkType("eXIf"): true,
	chunkType("dSIG"): true,
}

// orderState accumulates the ordering validator's running checks across the
// chunk list.
type orderState struct {
	strict bool

	plteIndex int // index of PLTE, or -1
	trnsIndex int
	iendIndex int
	idatIndexes []int
	seenTypeCount map[ChunkType]int
	pastIEND     bool

	warnings []Warning
	info     []string
}

func newOrderState(strict bool) *orderState {
	return &orderState{
		strict:        strict,
		plteIndex:     -1,
		trnsIndex:     -1,
		iendIndex:     -1,
		seenTypeCount: make(map[ChunkType]int),
	}
}

// flag records a violation as a warning, or escalates to an error in strict
// mode, matching spec.md §7 ("Strict mode promotes every warning to an error
// at the moment it is emitted").
func (s *orderState) flag(code, message string, offset int) error {
	if s.strict {
		return newDecodeError(ErrCodeStrictWarning, message, offset, s.warnings)
	}
	s.warnings = append(s.warnings, Warning{Code: code, Message: message, Offset: offset})
	return nil
}

// validateOrder enforces spec.md §4.2 across the full chunk list, given the
// parsed header. It returns accumulated warnings/info, or a fatal error for
// the first condition spec.md §7 classifies as an Error.
func validateOrder(chunks []Chunk, h Header) ([]Warning, []string, error) {
	s := newOrderState(false)
	return runOrderValidation(s, chunks, h)
}

func validateOrderStrict(chunks []Chunk, h Header) ([]Warning, []string, error) {
	s := newOrderState(true)
	return runOrderValidation(s, chunks, h)
}

func runOrderValidation(s *orderState, chunks []Chunk, h Header) ([]Warning, []string, error) {
	lastIDATIndex := -1

	for i, c := range chunks {
		s.seenTypeCount[c.Type]++

		if s.pastIEND {
			if err := s.flag(WarnCodeChunkAfterIEND, "chunk after IEND: "+c.Type.String(), c.Offset); err != nil {
				return s.warnings, s.info, err
			}
			continue
		}

		switch {
		case c.Type == chunkType("IHDR"):
			if i != 0 {
				if err := s.flag(WarnCodeDupChunk, "duplicate IHDR", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}

		case c.Type == chunkType("IEND"):
			if len(c.Data) != 0 {
				if err := s.flag(WarnCodeBadChunkSize, "IEND must be empty", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			if s.iendIndex >= 0 {
				if err := s.flag(WarnCodeDupChunk, "duplicate IEND", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			s.iendIndex = i
			s.pastIEND = true

		case c.Type == chunkType("PLTE"):
			if s.plteIndex >= 0 {
				if err := s.flag(WarnCodeDupChunk, "duplicate PLTE", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			if len(s.idatIndexes) > 0 {
				if err := s.flag(WarnCodeOrderViolation, "PLTE after IDAT", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			if s.trnsIndex >= 0 {
				if err := s.flag(WarnCodeOrderViolation, "PLTE after tRNS", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			if h.ColorType == ColorGrayscale || h.ColorType == ColorGrayscaleAlpha {
				if err := s.flag(WarnCodeOrderViolation, "PLTE forbidden for this color type", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			s.plteIndex = i

		case c.Type == chunkType("tRNS"):
			if s.trnsIndex >= 0 {
				if err := s.flag(WarnCodeDupChunk, "duplicate tRNS", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			if len(s.idatIndexes) > 0 {
				if err := s.flag(WarnCodeOrderViolation, "tRNS after IDAT", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			if h.ColorType == ColorGrayscaleAlpha || h.ColorType == ColorRGBA {
				return s.warnings, s.info, newDecodeError(ErrCodeBadIHDR, "tRNS forbidden for this color type", c.Offset, s.warnings)
			}
			if h.ColorType == ColorIndexed && s.plteIndex < 0 {
				if err := s.flag(WarnCodeOrderViolation, "tRNS before PLTE for indexed image", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			s.trnsIndex = i

		case c.Type == chunkType("IDAT"):
			if lastIDATIndex >= 0 && i != lastIDATIndex+1 {
				return s.warnings, s.info, newDecodeError(ErrCodeNonConsecutiveID, "IDAT chunks are not consecutive", c.Offset, s.warnings)
			}
			s.idatIndexes = append(s.idatIndexes, i)
			lastIDATIndex = i

		case singularAncillary[c.Type] && s.seenTypeCount[c.Type] > 1:
			if err := s.flag(WarnCodeDupChunk, "duplicate "+c.Type.String()+" chunk", c.Offset); err != nil {
				return s.warnings, s.info, err
			}
			fallthrough

		default:
			if !c.Type.IsAncillary() {
				if !knownCriticalTypes[c.Type] {
					return s.warnings, s.info, newDecodeError(ErrCodeUnknownCritical, "unrecognized critical chunk: "+c.Type.String(), c.Offset, s.warnings)
				}
			} else if !knownAncillaryDecoders[c.Type] && c.Type != chunkType("tRNS") {
				s.info = append(s.info, "unknown ancillary chunk: "+c.Type.String())
			}

			if (c.Type == chunkType("bKGD") || c.Type == chunkType("hIST") || c.Type == chunkType("sPLT")) &&
				h.ColorType == ColorIndexed && s.plteIndex < 0 {
				if err := s.flag(WarnCodeOrderViolation, c.Type.String()+" before PLTE for indexed image", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
			if len(s.idatIndexes) > 0 && isPreIDATOnly(c.Type) {
				if err := s.flag(WarnCodeOrderViolation, c.Type.String()+" after IDAT", c.Offset); err != nil {
					return s.warnings, s.info, err
				}
			}
		}
	}

	return s.warnings, s.info, nil
}

// isPreIDATOnly reports whether a chunk type must precede the first IDAT.
func isPreIDATOnly(t ChunkType) bool {
	switch t {
	case chunkType("bKGD"), chunkType("hIST"), chunkType("sPLT"), chunkType("gAMA"),
		chunkType("cHRM"), chunkType("sRGB"), chunkType("iCCP"), chunkType("sBIT"),
		chunkType("pHYs"):
		return true
	}
	return false
}
