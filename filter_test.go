package png

import "testing"

func TestPaethTieBreak(t *testing.T) {
	tests := []struct {
		a, b, c, want int
	}{
		{0, 0, 0, 0},
		{10, 10, 10, 10}, // p == a == b == c, ties break to a
		{5, 5, 0, 5},     // p = 10, pa=5, pb=5 -> tie a/b, a wins
		{0, 10, 0, 10},   // p = 10, pa=10, pb=0, pc=10 -> b wins
		{255, 0, 0, 255}, // p = 255, pa=0 -> a wins
	}
	for i, tt := range tests {
		if got := paeth(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("test %d: paeth(%d,%d,%d) = %d, want %d", i, tt.a, tt.b, tt.c, got, tt.want)
		}
	}
}

func TestUnfilterRowsNone(t *testing.T) {
	// Two 3-byte rows, both filter type 0 (None).
	raw := []byte{
		filterNone, 10, 20, 30,
		filterNone, 40, 50, 60,
	}
	out, err := unfilterRows(raw, 3, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{10, 20, 30, 40, 50, 60}
	if string(out) != string(want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestUnfilterRowsSub(t *testing.T) {
	raw := []byte{
		filterSub, 10, 5, 5, // decodes to 10, 15, 20 with bpp=1
	}
	out, err := unfilterRows(raw, 3, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{10, 15, 20}
	if string(out) != string(want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestUnfilterRowsInvalidFilterType(t *testing.T) {
	raw := []byte{5, 1, 2, 3}
	_, err := unfilterRows(raw, 3, 1, 1)
	if err == nil {
		t.Fatal("expected error for invalid filter type byte")
	}
	de, ok := err.(*DecodeError)
	if !ok || de.Code != ErrCodeInvalidFilter {
		t.Errorf("got %v, want ErrCodeInvalidFilter", err)
	}
}

func TestUnfilterRowsWrongLength(t *testing.T) {
	raw := []byte{filterNone, 1, 2, 3}
	_, err := unfilterRows(raw, 4, 1, 1)
	if err == nil {
		t.Fatal("expected error for mismatched length")
	}
}

func TestFilterRowPicksUpForRowEqualToPrev(t *testing.T) {
	cur := []byte{5, 5, 5, 5}
	prev := []byte{5, 5, 5, 5}
	dst := make([]byte, 5)
	filterRow(dst, cur, prev, 1)
	// Up-filtering a row identical to prev yields all zeros, MAD score 0,
	// which should win over None (score 20).
	if dst[0] != filterUp {
		t.Errorf("expected filterUp to win, got filter type %d", dst[0])
	}
}

func TestFilterUnfilterRoundTrip(t *testing.T) {
	rowBytes := 12
	numRows := 4
	bpp := 3

	pixels := make([]byte, rowBytes*numRows)
	for i := range pixels {
		pixels[i] = byte(i * 7 % 256)
	}

	filtered := make([]byte, 0, (rowBytes+1)*numRows)
	prev := make([]byte, rowBytes)
	for y := 0; y < numRows; y++ {
		cur := pixels[y*rowBytes : (y+1)*rowBytes]
		dst := make([]byte, rowBytes+1)
		filterRow(dst, cur, prev, bpp)
		filtered = append(filtered, dst...)
		prev = cur
	}

	out, err := unfilterRows(filtered, rowBytes, numRows, bpp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != string(pixels) {
		t.Errorf("round trip mismatch:\ngot  %v\nwant %v", out, pixels)
	}
}
