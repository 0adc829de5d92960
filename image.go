package png

// Image is the sum type over the two pixel-buffer shapes this codec
// produces, per spec.md §3/§9 ("Tagged image variants... Model as a sum
// type with two arms sharing {width, height}"). Callers that need to
// handle either arm do so with a type switch on Image8/Image16.
type Image interface {
	Bounds() (width, height int)
}

// Image8 is an 8-bit-per-channel RGBA pixel buffer. Pix is laid out
// row-major, 4 bytes per pixel (R, G, B, A).
type Image8 struct {
	Width, Height int
	Pix           []byte
}

// NewImage8 allocates a zeroed Image8 of the given dimensions.
func NewImage8(width, height int) *Image8 {
	return &Image8{Width: width, Height: height, Pix: make([]byte, 4*width*height)}
}

// Bounds returns the image's dimensions.
func (img *Image8) Bounds() (int, int) { return img.Width, img.Height }

// Set stores the pixel at (x, y).
func (img *Image8) Set(x, y int, r, g, b, a uint8) {
	i := (y*img.Width + x) * 4
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
	img.Pix[i+3] = a
}

// At returns the pixel at (x, y).
func (img *Image8) At(x, y int) (r, g, b, a uint8) {
	i := (y*img.Width + x) * 4
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
}

// Image16 is a 16-bit-per-channel RGBA pixel buffer, produced only when the
// source PNG has bitDepth 16 and Force32 is not set.
type Image16 struct {
	Width, Height int
	Pix           []uint16
}

// NewImage16 allocates a zeroed Image16 of the given dimensions.
func NewImage16(width, height int) *Image16 {
	return &Image16{Width: width, Height: height, Pix: make([]uint16, 4*width*height)}
}

// Bounds returns the image's dimensions.
func (img *Image16) Bounds() (int, int) { return img.Width, img.Height }

// Set stores the pixel at (x, y).
func (img *Image16) Set(x, y int, r, g, b, a uint16) {
	i := (y*img.Width + x) * 4
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
	img.Pix[i+3] = a
}

// At returns the pixel at (x, y).
func (img *Image16) At(x, y int) (r, g, b, a uint16) {
	i := (y*img.Width + x) * 4
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
}

// Details mirrors the decoded IHDR fields a caller cares about without
// exposing the internal Header type's validation-only methods.
type Details struct {
	BitDepth        uint8
	ColorType       uint8
	InterlaceMethod uint8
}
