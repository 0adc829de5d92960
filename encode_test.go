package png

import "testing"

func TestEncodeDecodeRoundTripRGBA8(t *testing.T) {
	img := NewImage8(1, 1)
	img.Set(0, 0, 255, 0, 0, 255)

	data, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorRGBA})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	result, err := Decode(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Image8 == nil {
		t.Fatal("expected Image8 result")
	}
	r, g, b, a := result.Image8.At(0, 0)
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("got (%d,%d,%d,%d), want (255,0,0,255)", r, g, b, a)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", result.Warnings)
	}
}

func TestEncodeDecodeRoundTripGrayscale(t *testing.T) {
	img := NewImage8(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			v := byte((x + y*3) * 40)
			img.Set(x, y, v, v, v, 255)
		}
	}

	data, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorGrayscale})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	result, err := Decode(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			want := byte((x + y*3) * 40)
			r, g, b, _ := result.Image8.At(x, y)
			if r != want || g != want || b != want {
				t.Errorf("(%d,%d): got (%d,%d,%d), want gray %d", x, y, r, g, b, want)
			}
		}
	}
}

func TestEncodeIndexedPaletteOverflow(t *testing.T) {
	img := NewImage8(17, 17) // 289 pixels, each a distinct color
	for y := 0; y < 17; y++ {
		for x := 0; x < 17; x++ {
			img.Set(x, y, byte(x*15), byte(y*15), byte((x+y)*7), 255)
		}
	}

	_, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorIndexed})
	if err == nil {
		t.Fatal("expected palette overflow error")
	}
	ee, ok := err.(*EncodeError)
	if !ok || ee.Code != ErrCodePaletteOverflow {
		t.Errorf("got %v, want ErrCodePaletteOverflow", err)
	}
}

func TestEncodeBadOptions(t *testing.T) {
	img := NewImage8(1, 1)
	_, err := Encode(img, EncodeOptions{BitDepth: 3, ColorType: ColorRGB})
	if err == nil {
		t.Fatal("expected error for illegal bit depth")
	}
	ee, ok := err.(*EncodeError)
	if !ok || ee.Code != ErrCodeBadOptions {
		t.Errorf("got %v, want ErrCodeBadOptions", err)
	}
}

func TestEncodeIndexedRoundTrip(t *testing.T) {
	img := NewImage8(2, 2)
	img.Set(0, 0, 255, 0, 0, 255)
	img.Set(1, 0, 0, 255, 0, 255)
	img.Set(0, 1, 0, 0, 255, 255)
	img.Set(1, 1, 255, 0, 0, 255) // repeats top-left's color

	data, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorIndexed})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	result, err := Decode(data, DecodeOptions{})
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(result.Palette) != 3 {
		t.Fatalf("got %d palette entries, want 3", len(result.Palette))
	}
	r, g, b, _ := result.Image8.At(1, 1)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("got (%d,%d,%d), want (255,0,0)", r, g, b)
	}
}
