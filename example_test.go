package png_test

import (
	"fmt"

	png "github.com/AnturK/png-codec"
)

// Example_basicRead demonstrates decoding a PNG file into an Image8.
func Example_basicRead() {
	data := encodeSample()

	result, err := png.Decode(data, png.DecodeOptions{})
	if err != nil {
		fmt.Println("Error decoding:", err)
		return
	}

	width, height := result.Image().Bounds()
	fmt.Printf("Image size: %dx%d\n", width, height)
	fmt.Printf("Color type: %d\n", result.Details.ColorType)
	// Output:
	// Image size: 2x2
	// Color type: 6
}

// Example_basicWrite demonstrates encoding an Image8 to a PNG byte stream.
func Example_basicWrite() {
	img := png.NewImage8(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, byte(x*64), byte(y*64), 128, 255)
		}
	}

	data, err := png.Encode(img, png.EncodeOptions{BitDepth: 8, ColorType: png.ColorRGBA})
	if err != nil {
		fmt.Println("Error encoding:", err)
		return
	}

	fmt.Printf("Encoded %dx%d image to %d bytes\n", 4, 4, len(data))
}

// Example_strictMode demonstrates promoting every warning to a fatal error.
func Example_strictMode() {
	data := encodeSample()
	// Corrupt a byte inside the IDAT payload to trigger a CRC mismatch.
	data[len(data)-20] ^= 0xff

	_, err := png.Decode(data, png.DecodeOptions{StrictMode: true})
	if err != nil {
		fmt.Println("decode failed under strict mode")
	}
}

// Example_ancillaryChunks demonstrates restricting which ancillary chunk
// types get decoded.
func Example_ancillaryChunks() {
	data := encodeSample()

	result, err := png.Decode(data, png.DecodeOptions{ParseChunkTypes: []string{"gAMA"}})
	if err != nil {
		fmt.Println("Error decoding:", err)
		return
	}
	fmt.Printf("Decoded %d metadata records\n", len(result.Metadata))
	// Output:
	// Decoded 0 metadata records
}

func encodeSample() []byte {
	img := png.NewImage8(2, 2)
	img.Set(0, 0, 255, 0, 0, 255)
	img.Set(1, 0, 0, 255, 0, 255)
	img.Set(0, 1, 0, 0, 255, 255)
	img.Set(1, 1, 255, 255, 255, 255)

	data, err := png.Encode(img, png.EncodeOptions{BitDepth: 8, ColorType: png.ColorRGBA})
	if err != nil {
		panic(err)
	}
	return data
}
