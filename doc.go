// Package png decodes and encodes the PNG image format (ISO/IEC 15948):
// chunk framing, scanline filter reversal, Adam7 deinterlacing, and pixel
// unpacking on the decode side, with a symmetric assembler on the encode
// side.
//
// Decode is strict about the chunk stream's structural invariants (IHDR
// first, at least one IDAT, exact inflated-stream length) but lenient about
// everything else by default: CRC mismatches, out-of-order ancillary
// chunks, and similar recoverable problems are collected as warnings
// rather than aborting the decode. Set DecodeOptions.StrictMode to treat
// every warning as fatal instead.
package png
