package png

import "hash/crc32"

// crcOf computes the CRC-32/IEEE checksum PNG stores for a chunk: the
// checksum covers the chunk's type bytes followed by its data, never the
// length field. This is the same checksum used by every PNG-chunk-checksum
// site in this codebase's reference material (hash/crc32, IEEE polynomial,
// initial/final XOR 0xFFFFFFFF) — see DESIGN.md for why this module reaches
// for the standard library here instead of a third-party CRC package.
func crcOf(typ [4]byte, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(typ[:])
	h.Write(data)
	return h.Sum32()
}
