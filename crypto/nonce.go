package crypto

import "encoding/binary"

// NonceLen is the AES-256-GCM nonce length.
const NonceLen = 12

// BuildNonce constructs the 12-byte chunk nonce: the 4-byte per-file
// nonce prefix followed by the 8-byte little-endian chunk sequence.
// Because chunk_seq is unique within a file and the prefix is derived from
// a random per-file salt, the pair is never reused across the lifetime of
// the master key.
func BuildNonce(noncePrefix [NoncePrefixLen]byte, chunkSeq uint64) [NonceLen]byte {
	var nonce [NonceLen]byte
	copy(nonce[:NoncePrefixLen], noncePrefix[:])
	binary.LittleEndian.PutUint64(nonce[NoncePrefixLen:], chunkSeq)
	return nonce
}
