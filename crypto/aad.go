package crypto

import "encoding/binary"

// AADPrefix is the domain-separation tag every chunk's associated data
// starts with.
const AADPrefix = "FURRYAAD"

// AADLen is the fixed length of the associated data bound to every
// ciphertext in a .furry file: "FURRYAAD" (8B) || header_version (2B) ||
// header_flags (4B) || file_id (16B) || chunk_header_bytes (40B).
const AADLen = 8 + 2 + 4 + 16 + 40

// ChunkHeaderBytesLen is the length of the serialized chunk record header
// bound into the AAD.
const ChunkHeaderBytesLen = 40

// BuildAAD assembles the fixed 70-byte associated data for a chunk.
// Tampering with any bound field (file ID, header version, header flags,
// or the chunk header bytes themselves) causes AEAD verification to fail
// on the next decrypt attempt.
func BuildAAD(fileID [FileIDLen]byte, headerVersion uint16, headerFlags uint32, chunkHeaderBytes [ChunkHeaderBytesLen]byte) [AADLen]byte {
	var aad [AADLen]byte

	offset := copy(aad[:], AADPrefix)
	binary.LittleEndian.PutUint16(aad[offset:], headerVersion)
	offset += 2
	binary.LittleEndian.PutUint32(aad[offset:], headerFlags)
	offset += 4
	offset += copy(aad[offset:], fileID[:])
	copy(aad[offset:], chunkHeaderBytes[:])

	return aad
}
