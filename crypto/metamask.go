package crypto

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/weifurryovo/furry/ferrors"
)

// MetaXORContext is the domain-separation label absorbed by the keyed
// BLAKE3 hasher before the chunk sequence, so the mask stream for a given
// (key, chunk_seq) pair can never collide with a mask derived for another
// purpose under the same key.
const MetaXORContext = "furry/v1/meta_xor"

// ApplyMetaMask XORs data in place with a keyed-BLAKE3 XOF stream derived
// from metaXORKey, MetaXORContext, and chunkSeq. Applying it twice with the
// same inputs restores the original content, so the same function call
// masks on write and unmasks on read.
func ApplyMetaMask(metaXORKey []byte, chunkSeq uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	h, err := blake3.NewKeyed(metaXORKey)
	if err != nil {
		return ferrors.Wrap(ferrors.AeadFailure, "unable to initialize keyed BLAKE3 mask", err)
	}

	h.Write([]byte(MetaXORContext))

	var seqBuf [8]byte
	binary.LittleEndian.PutUint64(seqBuf[:], chunkSeq)
	h.Write(seqBuf[:])

	mask := make([]byte, len(data))
	if _, err := h.Digest().Read(mask); err != nil {
		return ferrors.Wrap(ferrors.AeadFailure, "unable to read BLAKE3 mask stream", err)
	}

	for i := range data {
		data[i] ^= mask[i]
	}

	return nil
}
