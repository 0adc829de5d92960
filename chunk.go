package png

import (
	"github.com/AnturK/png-codec/internal/xdr"
)

// chunkTypeFlagBit is bit 5 (0x20) of an ASCII letter: set means lowercase.
const chunkTypeFlagBit = 0x20

// ChunkType is the 4-byte ASCII type tag of a chunk (e.g. "IHDR", "tEXt").
type ChunkType [4]byte

// String returns the type as a 4-character string.
func (t ChunkType) String() string {
	return string(t[:])
}

// IsAncillary reports whether the chunk is non-critical (bit 5 of byte 0 set).
func (t ChunkType) IsAncillary() bool {
	return t[0]&chunkTypeFlagBit != 0
}

// IsPrivate reports whether the chunk is a private, non-standard type
// (bit 5 of byte 1 set).
func (t ChunkType) IsPrivate() bool {
	return t[1]&chunkTypeFlagBit != 0
}

// IsReservedValid reports whether byte 2's reserved bit is clear, as required
// by the PNG spec for every conforming chunk type.
func (t ChunkType) IsReservedValid() bool {
	return t[2]&chunkTypeFlagBit == 0
}

// IsSafeToCopy reports whether editors that don't understand this chunk type
// may copy it unmodified (bit 5 of byte 3 set).
func (t ChunkType) IsSafeToCopy() bool {
	return t[3]&chunkTypeFlagBit != 0
}

func chunkType(s string) ChunkType {
	var t ChunkType
	copy(t[:], s)
	return t
}

// Chunk is a single framed record read from a PNG chunk stream.
type Chunk struct {
	Offset     int       // byte offset of the length field within the input
	Type       ChunkType
	Data       []byte // aliases the input buffer, not copied
	CRC        uint32
	CRCValid   bool
}

// RawChunk is the caller-facing projection of a framed chunk returned in
// DecodeResult.RawChunks.
type RawChunk struct {
	Offset   int
	Type     string
	Length   uint32
	CRC      uint32
	CRCValid bool
}

// frameChunks walks the byte stream immediately following the 8-byte
// signature and produces an ordered list of chunks. It enforces the three
// framing-level invariants from spec.md §4.1: IHDR must be the first chunk,
// at least one IDAT chunk must be present, and the stream should (but need
// not) end in IEND. CRC mismatches are recorded per-chunk and reported as
// warnings by the caller; they never abort framing.
func frameChunks(data []byte) ([]Chunk, []Warning, error) {
	r := xdr.NewReader(data)
	var chunks []Chunk
	var warnings []Warning

	for r.Len() > 0 {
		offset := r.Pos()
		length, err := r.ReadUint32()
		if err != nil {
			return nil, warnings, newDecodeError(ErrCodeTruncated, "truncated chunk length", offset, warnings)
		}
		if length > 1<<31-1 {
			return nil, warnings, newDecodeError(ErrCodeTruncated, "chunk length exceeds 2^31-1", offset, warnings)
		}
		typeBytes, err := r.ReadBytes(4)
		if err != nil {
			return nil, warnings, newDecodeError(ErrCodeTruncated, "truncated chunk type", offset, warnings)
		}
		var typ ChunkType
		copy(typ[:], typeBytes)

		chunkData, err := r.ReadBytes(int(length))
		if err != nil {
			return nil, warnings, newDecodeError(ErrCodeTruncated, "truncated chunk data for "+typ.String(), offset, warnings)
		}
		crc, err := r.ReadUint32()
		if err != nil {
			return nil, warnings, newDecodeError(ErrCodeTruncated, "truncated chunk CRC for "+typ.String(), offset, warnings)
		}

		want := crcOf(typ, chunkData)
		crcValid := want == crc
		if !crcValid {
			warnings = append(warnings, Warning{Code: WarnCodeCRCMismatch, Message: "CRC mismatch in " + typ.String() + " chunk", Offset: offset})
		}

		chunks = append(chunks, Chunk{
			Offset:   offset,
			Type:     typ,
			Data:     chunkData,
			CRC:      crc,
			CRCValid: crcValid,
		})
	}

	if len(chunks) == 0 || chunks[0].Type != chunkType("IHDR") {
		return nil, warnings, newDecodeError(ErrCodeMissingIHDR, "first chunk is not IHDR", 0, warnings)
	}
	if chunks[len(chunks)-1].Type != chunkType("IEND") {
		warnings = append(warnings, Warning{Code: WarnCodeNoIEND, Message: "stream does not end in IEND", Offset: chunks[len(chunks)-1].Offset})
	}

	hasIDAT := false
	for _, c := range chunks {
		if c.Type == chunkType("IDAT") {
			hasIDAT = true
			break
		}
	}
	if !hasIDAT {
		return nil, warnings, newDecodeError(ErrCodeMissingIDAT, "no IDAT chunk present", 0, warnings)
	}

	return chunks, warnings, nil
}

// writeChunk appends one framed chunk (length, type, data, CRC) to w, the
// encode-side mirror of the per-chunk portion of frameChunks.
func writeChunk(w *xdr.Writer, typ string, data []byte) {
	t := chunkType(typ)
	w.WriteUint32(uint32(len(data)))
	w.WriteBytes(t[:])
	w.WriteBytes(data)
	w.WriteUint32(crcOf(t, data))
}
