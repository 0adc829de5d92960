package png

// Signature is the fixed 8-byte prefix every PNG file begins with.
var Signature = [8]byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// hasSignature reports whether data begins with the PNG signature.
func hasSignature(data []byte) bool {
	if len(data) < len(Signature) {
		return false
	}
	for i, b := range Signature {
		if data[i] != b {
			return false
		}
	}
	return true
}
