package format

import (
	"encoding/binary"
	"fmt"

	"github.com/weifurryovo/furry/ferrors"
)

// ChunkType identifies what a chunk record carries.
type ChunkType uint8

// Chunk types.
const (
	ChunkTypeAudio   ChunkType = 0x01
	ChunkTypeIndex   ChunkType = 0x02
	ChunkTypeMeta    ChunkType = 0x03
	ChunkTypePadding ChunkType = 0x04
)

// Valid reports whether v is a recognized chunk type byte.
func (t ChunkType) Valid() bool {
	switch t {
	case ChunkTypeAudio, ChunkTypeIndex, ChunkTypeMeta, ChunkTypePadding:
		return true
	default:
		return false
	}
}

// Chunk flag bits.
const (
	// FlagMetaXOR marks a Meta chunk whose payload was XOR-masked with the
	// keyed BLAKE3 stream before AEAD encryption.
	FlagMetaXOR uint8 = 0x01
)

// ChunkMagic is the fixed 4-byte identifier at the start of every chunk
// record header.
const ChunkMagic = "FRCK"

// ChunkHeaderVersion is the only chunk record header version this codec
// knows how to read or write.
const ChunkHeaderVersion uint16 = 1

// ChunkHeaderLen is the fixed, on-disk size of a chunk record header.
const ChunkHeaderLen = 40

// ChunkRecordHeader is the 40-byte fixed header prefixing every chunk's
// ciphertext and tag.
type ChunkRecordHeader struct {
	ChunkType     ChunkType
	ChunkFlags    uint8
	ChunkSeq      uint64
	VirtualOffset uint64
	PlainLen      uint32
}

// NewChunkRecordHeader builds a header for a fresh chunk about to be
// written.
func NewChunkRecordHeader(chunkType ChunkType, chunkSeq, virtualOffset uint64, plainLen uint32) *ChunkRecordHeader {
	return &ChunkRecordHeader{
		ChunkType:     chunkType,
		ChunkSeq:      chunkSeq,
		VirtualOffset: virtualOffset,
		PlainLen:      plainLen,
	}
}

// Encode serializes the chunk record header to its fixed 40-byte wire form.
// The result is also what gets bound into the chunk's AAD.
func (h *ChunkRecordHeader) Encode() [ChunkHeaderLen]byte {
	var b [ChunkHeaderLen]byte

	copy(b[0:4], ChunkMagic)
	binary.LittleEndian.PutUint16(b[4:6], ChunkHeaderLen)
	binary.LittleEndian.PutUint16(b[6:8], ChunkHeaderVersion)
	b[8] = byte(h.ChunkType)
	b[9] = h.ChunkFlags
	// b[10:12] reserved0 = 0
	binary.LittleEndian.PutUint64(b[12:20], h.ChunkSeq)
	binary.LittleEndian.PutUint64(b[20:28], h.VirtualOffset)
	binary.LittleEndian.PutUint32(b[28:32], h.PlainLen)
	// b[32:36] reserved1, b[36:40] reserved2 = 0

	return b
}

// DecodeChunkRecordHeader parses and validates a 40-byte chunk record
// header.
func DecodeChunkRecordHeader(b []byte) (*ChunkRecordHeader, error) {
	if len(b) < ChunkHeaderLen {
		return nil, ferrors.New(ferrors.InvalidHeaderSize, fmt.Sprintf("chunk header too short: %d bytes", len(b)))
	}

	if string(b[0:4]) != ChunkMagic {
		return nil, ferrors.New(ferrors.InvalidChunkMagic, "chunk record magic mismatch")
	}

	headerLen := binary.LittleEndian.Uint16(b[4:6])
	if headerLen != ChunkHeaderLen {
		return nil, ferrors.New(ferrors.InvalidHeaderSize, fmt.Sprintf("unexpected chunk header_len %d", headerLen))
	}

	headerVersion := binary.LittleEndian.Uint16(b[6:8])
	if headerVersion != ChunkHeaderVersion {
		return nil, ferrors.New(ferrors.UnsupportedChunkHeaderVersion, fmt.Sprintf("unsupported chunk header version %d", headerVersion))
	}

	chunkType := ChunkType(b[8])
	if !chunkType.Valid() {
		return nil, ferrors.New(ferrors.CorruptIndex, fmt.Sprintf("unknown chunk_type byte 0x%02x", b[8]))
	}

	h := &ChunkRecordHeader{
		ChunkType:  chunkType,
		ChunkFlags: b[9],
	}
	h.ChunkSeq = binary.LittleEndian.Uint64(b[12:20])
	h.VirtualOffset = binary.LittleEndian.Uint64(b[20:28])
	h.PlainLen = binary.LittleEndian.Uint32(b[28:32])

	return h, nil
}

// RecordLen returns the total on-disk length of the chunk record this
// header describes: header + ciphertext + detached tag.
func (h *ChunkRecordHeader) RecordLen() uint32 {
	return ChunkHeaderLen + h.PlainLen + TagLen
}

// TagLen is the on-disk length of a chunk's detached AEAD tag.
const TagLen = 16
