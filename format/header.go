package format

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/weifurryovo/furry/ferrors"
)

// HeaderMagic is the fixed 8-byte identifier at the start of every .furry
// file.
const HeaderMagic = "FURRYFMT"

// HeaderVersion is the only file format version this codec knows how to
// read or write.
const HeaderVersion uint16 = 1

// HeaderSize is the fixed, on-disk size of the file header.
const HeaderSize uint16 = 96

// KDF and AEAD suite identifiers recorded in the header for future
// cipher-agility; this codec only implements suite 1 of each.
const (
	KDFHKDFSHA256  uint16 = 1
	AEADAES256GCM  uint16 = 1
)

// FileHeader is the 96-byte fixed file header described in the wire
// format.
type FileHeader struct {
	Version            uint16
	HeaderSize         uint16
	Flags              uint32
	FakeHeaderLen       uint32
	FileID             [16]byte
	Salt               [16]byte
	KDFID              uint16
	AEADID             uint16
	ChunkHeaderVersion uint16
	IndexOffset        uint64
	IndexTotalLen      uint32
	// HeaderCRC32 is CRC-32(IEEE) of bytes [0, 76) of the encoded header,
	// computed on write. Per the wire contract's reserved-field policy,
	// Decode does not verify it; a future format revision may start
	// enforcing it without changing the layout.
	HeaderCRC32 uint32
}

// NewFileHeader builds a fresh v1 header for a newly created file, with
// index_offset and index_total_len left at zero until Writer.Finish
// patches them in.
func NewFileHeader(fileID, salt [16]byte) *FileHeader {
	return &FileHeader{
		Version:            HeaderVersion,
		HeaderSize:         HeaderSize,
		FakeHeaderLen:       0,
		FileID:             fileID,
		Salt:               salt,
		KDFID:              KDFHKDFSHA256,
		AEADID:             AEADAES256GCM,
		ChunkHeaderVersion: 1,
	}
}

// DataStartOffset returns the byte offset of the region following the
// optional cleartext decoy ("fake header"). Chunks are always located
// through the index; this offset is preserved on roundtrip but not
// otherwise consulted.
func (h *FileHeader) DataStartOffset() uint64 {
	return uint64(HeaderSize) + uint64(h.FakeHeaderLen)
}

// Encode serializes the header to its fixed 96-byte wire form, computing
// HeaderCRC32 over the preceding 76 bytes.
func (h *FileHeader) Encode() [96]byte {
	var b [96]byte

	copy(b[0:8], HeaderMagic)
	binary.LittleEndian.PutUint16(b[8:10], h.Version)
	binary.LittleEndian.PutUint16(b[10:12], h.HeaderSize)
	binary.LittleEndian.PutUint32(b[12:16], h.Flags)
	binary.LittleEndian.PutUint32(b[16:20], h.FakeHeaderLen)
	// b[20:24] reserved0 = 0
	copy(b[24:40], h.FileID[:])
	copy(b[40:56], h.Salt[:])
	binary.LittleEndian.PutUint16(b[56:58], h.KDFID)
	binary.LittleEndian.PutUint16(b[58:60], h.AEADID)
	binary.LittleEndian.PutUint16(b[60:62], h.ChunkHeaderVersion)
	// b[62:64] reserved1 = 0
	binary.LittleEndian.PutUint64(b[64:72], h.IndexOffset)
	binary.LittleEndian.PutUint32(b[72:76], h.IndexTotalLen)

	h.HeaderCRC32 = crc32.ChecksumIEEE(b[:76])
	binary.LittleEndian.PutUint32(b[76:80], h.HeaderCRC32)
	// b[80:96] reserved2 = zeros

	return b
}

// DecodeFileHeader parses and validates a 96-byte file header. It rejects
// wrong magic, wrong version, and a header_size field that doesn't match
// the fixed wire constant; it does not verify HeaderCRC32 (see the field's
// doc comment).
func DecodeFileHeader(b []byte) (*FileHeader, error) {
	if len(b) < int(HeaderSize) {
		return nil, ferrors.New(ferrors.InvalidHeaderSize, fmt.Sprintf("file header too short: %d bytes", len(b)))
	}

	if string(b[0:8]) != HeaderMagic {
		return nil, ferrors.New(ferrors.InvalidMagic, "file header magic mismatch")
	}

	h := &FileHeader{}
	h.Version = binary.LittleEndian.Uint16(b[8:10])
	if h.Version != HeaderVersion {
		return nil, ferrors.New(ferrors.UnsupportedVersion, fmt.Sprintf("unsupported file header version %d", h.Version))
	}

	h.HeaderSize = binary.LittleEndian.Uint16(b[10:12])
	if h.HeaderSize != HeaderSize {
		return nil, ferrors.New(ferrors.InvalidHeaderSize, fmt.Sprintf("unexpected header_size %d", h.HeaderSize))
	}

	h.Flags = binary.LittleEndian.Uint32(b[12:16])
	h.FakeHeaderLen = binary.LittleEndian.Uint32(b[16:20])
	copy(h.FileID[:], b[24:40])
	copy(h.Salt[:], b[40:56])
	h.KDFID = binary.LittleEndian.Uint16(b[56:58])
	h.AEADID = binary.LittleEndian.Uint16(b[58:60])
	h.ChunkHeaderVersion = binary.LittleEndian.Uint16(b[60:62])
	h.IndexOffset = binary.LittleEndian.Uint64(b[64:72])
	h.IndexTotalLen = binary.LittleEndian.Uint32(b[72:76])
	h.HeaderCRC32 = binary.LittleEndian.Uint32(b[76:80])

	return h, nil
}
