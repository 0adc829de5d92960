package png

import "testing"

func encodeSampleFull(t *testing.T, w, h int) []byte {
	img := NewImage8(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, byte(x*17), byte(y*17), byte((x^y)*11), 255)
		}
	}
	data, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorRGBA})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	return data
}

func TestDecodeRejectsMissingSignature(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3}, DecodeOptions{})
	if err == nil {
		t.Fatal("expected error for missing signature")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Code != ErrCodeBadSignature {
		t.Errorf("got %v, want ErrCodeBadSignature", err)
	}
}

func TestDecodeRejectsIllegalColorDepth(t *testing.T) {
	var w testWriter
	w.buf = append(w.buf, Signature[:]...)
	ihdr := make([]byte, 13)
	ihdr[0], ihdr[1], ihdr[2], ihdr[3] = 0, 0, 0, 1 // width 1
	ihdr[4], ihdr[5], ihdr[6], ihdr[7] = 0, 0, 0, 1 // height 1
	ihdr[8] = 3                                     // bitDepth 3, illegal for any color type
	ihdr[9] = ColorRGB
	w.writeChunk("IHDR", ihdr)
	w.writeChunk("IDAT", []byte{0})
	w.writeChunk("IEND", nil)

	_, err := Decode(w.bytes(), DecodeOptions{})
	if err == nil {
		t.Fatal("expected fatal error for illegal (colorType, bitDepth) combination")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Code != ErrCodeBadColorDepth {
		t.Errorf("got %v, want ErrCodeBadColorDepth", err)
	}
}

func TestDecodeRejectsNonConsecutiveIDAT(t *testing.T) {
	var w testWriter
	w.buf = append(w.buf, Signature[:]...)
	ihdr := make([]byte, 13)
	ihdr[3] = 1 // width 1
	ihdr[7] = 1 // height 1
	ihdr[8] = 8
	ihdr[9] = ColorGrayscale
	w.writeChunk("IHDR", ihdr)
	w.writeChunk("IDAT", []byte{0, 0})
	w.writeChunk("tIME", make([]byte, 7))
	w.writeChunk("IDAT", []byte{0, 0})
	w.writeChunk("IEND", nil)

	_, err := Decode(w.bytes(), DecodeOptions{})
	if err == nil {
		t.Fatal("expected fatal error for non-consecutive IDAT")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Code != ErrCodeNonConsecutiveID {
		t.Errorf("got %v, want ErrCodeNonConsecutiveID", err)
	}
}

func TestDecodeStrictModePromotesWarnings(t *testing.T) {
	data := encodeSampleFull(t, 2, 2)
	// Corrupt the last byte of the IDAT chunk's stored CRC, leaving its
	// payload (and so the zlib stream) intact, to provoke a CRC_MISMATCH
	// warning.
	for i := range data {
		if i+8 < len(data) && data[i] == 'I' && data[i+1] == 'D' && data[i+2] == 'A' && data[i+3] == 'T' {
			n := int(data[i-4])<<24 | int(data[i-3])<<16 | int(data[i-2])<<8 | int(data[i-1])
			data[i+4+n+3] ^= 0xff
			break
		}
	}

	if _, err := Decode(data, DecodeOptions{}); err != nil {
		t.Fatalf("lenient decode should have warned, not failed: %v", err)
	}

	_, err := Decode(data, DecodeOptions{StrictMode: true})
	if err == nil {
		t.Fatal("expected strict mode to promote the CRC warning to an error")
	}
}

func TestDecodeEncodedImageBounds(t *testing.T) {
	data := encodeSampleFull(t, 4, 4)
	result, err := Decode(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	width, height := result.Image().Bounds()
	if width != 4 || height != 4 {
		t.Errorf("got %dx%d, want 4x4", width, height)
	}
}

func TestDecodeAncillaryFiltering(t *testing.T) {
	img := NewImage8(1, 1)
	img.Set(0, 0, 10, 20, 30, 255)
	data, err := Encode(img, EncodeOptions{
		BitDepth:  8,
		ColorType: ColorRGBA,
		AncillaryChunks: []EncodeChunk{
			{Type: "gAMA", Data: []byte{0, 0, 0x9a, 0x5c}},
			{Type: "tIME", Data: make([]byte, 7)},
		},
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	result, err := Decode(data, DecodeOptions{ParseChunkTypes: []string{"gAMA"}})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(result.Metadata) != 1 || result.Metadata[0].Type != "gAMA" {
		t.Errorf("got metadata %+v, want exactly one gAMA record", result.Metadata)
	}
}
