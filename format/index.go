package format

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/weifurryovo/furry/ferrors"
)

// OriginalFormat hints the downstream decoder which container the
// reassembled audio stream was originally encoded as.
type OriginalFormat uint8

// Recognized original formats.
const (
	OriginalFormatUnknown OriginalFormat = 0
	OriginalFormatWav     OriginalFormat = 1
	OriginalFormatMp3     OriginalFormat = 2
	OriginalFormatOgg     OriginalFormat = 3
	OriginalFormatFlac    OriginalFormat = 4
)

// OriginalFormatFromExtension maps a filename extension (with or without a
// leading dot) to the corresponding OriginalFormat, returning
// OriginalFormatUnknown for anything not recognized. Pack does not call
// this automatically; callers pick the format they pass in explicitly.
func OriginalFormatFromExtension(ext string) OriginalFormat {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "wav":
		return OriginalFormatWav
	case "mp3":
		return OriginalFormatMp3
	case "ogg", "opus":
		return OriginalFormatOgg
	case "flac":
		return OriginalFormatFlac
	default:
		return OriginalFormatUnknown
	}
}

// MetaKind identifies what an out-of-band Meta chunk carries.
type MetaKind uint16

// Recognized meta kinds.
const (
	MetaKindUnknown   MetaKind = 0
	MetaKindCoverArt  MetaKind = 1
	MetaKindLyrics    MetaKind = 2
	MetaKindTags      MetaKind = 3
)

// IndexMagic is the fixed 8-byte identifier at the start of the serialized
// index.
const IndexMagic = "FURRYIDX"

// IndexVersion is the only index version this codec knows how to read or
// write.
const IndexVersion uint16 = 1

// IndexHeaderLen and IndexEntryLen are the fixed, on-disk sizes of the
// index header and of a single index entry.
const (
	IndexHeaderLen = 32
	IndexEntryLen  = 48
)

// IndexHeader is the 32-byte fixed header of the serialized index.
type IndexHeader struct {
	Version        uint16
	Flags          uint16
	EntryCount     uint32
	AudioStreamLen uint64
	OriginalFormat OriginalFormat
}

// IndexEntry is the 48-byte fixed descriptor for one on-disk chunk.
type IndexEntry struct {
	ChunkSeq      uint64
	FileOffset    uint64
	RecordLen     uint32
	PlainLen      uint32
	VirtualOffset uint64
	ChunkType     ChunkType
	ChunkFlags    uint8
	MetaKind      MetaKind
}

// Index is the full, decrypted index: a header plus every non-index
// chunk's descriptor, in write order.
type Index struct {
	Header  IndexHeader
	Entries []IndexEntry
}

// NewIndex creates an empty index for a file carrying the given original
// audio format.
func NewIndex(originalFormat OriginalFormat) *Index {
	return &Index{
		Header: IndexHeader{
			Version:        IndexVersion,
			OriginalFormat: originalFormat,
		},
	}
}

// AddAudioEntry appends a descriptor for a newly written Audio chunk and
// folds its length into the running audio_stream_len.
func (idx *Index) AddAudioEntry(chunkSeq, fileOffset uint64, recordLen, plainLen uint32, virtualOffset uint64) {
	idx.Entries = append(idx.Entries, IndexEntry{
		ChunkSeq:      chunkSeq,
		FileOffset:    fileOffset,
		RecordLen:     recordLen,
		PlainLen:      plainLen,
		VirtualOffset: virtualOffset,
		ChunkType:     ChunkTypeAudio,
	})
	idx.Header.EntryCount = uint32(len(idx.Entries))
	idx.Header.AudioStreamLen += uint64(plainLen)
}

// AddMetaEntry appends a descriptor for a newly written Meta chunk.
func (idx *Index) AddMetaEntry(chunkSeq, fileOffset uint64, recordLen, plainLen uint32, kind MetaKind, chunkFlags uint8) {
	idx.Entries = append(idx.Entries, IndexEntry{
		ChunkSeq:   chunkSeq,
		FileOffset: fileOffset,
		RecordLen:  recordLen,
		PlainLen:   plainLen,
		ChunkType:  ChunkTypeMeta,
		ChunkFlags: chunkFlags,
		MetaKind:   kind,
	})
	idx.Header.EntryCount = uint32(len(idx.Entries))
}

// AddPaddingEntry appends a descriptor for a newly written Padding chunk.
func (idx *Index) AddPaddingEntry(chunkSeq, fileOffset uint64, recordLen, plainLen uint32) {
	idx.Entries = append(idx.Entries, IndexEntry{
		ChunkSeq:   chunkSeq,
		FileOffset: fileOffset,
		RecordLen:  recordLen,
		PlainLen:   plainLen,
		ChunkType:  ChunkTypePadding,
	})
	idx.Header.EntryCount = uint32(len(idx.Entries))
}

// Encode serializes the index header and every entry to its on-disk form,
// ready for AEAD encryption as the Index chunk's plaintext.
func (idx *Index) Encode() []byte {
	buf := make([]byte, IndexHeaderLen+len(idx.Entries)*IndexEntryLen)

	copy(buf[0:8], IndexMagic)
	binary.LittleEndian.PutUint16(buf[8:10], idx.Header.Version)
	binary.LittleEndian.PutUint16(buf[10:12], idx.Header.Flags)
	binary.LittleEndian.PutUint32(buf[12:16], idx.Header.EntryCount)
	binary.LittleEndian.PutUint64(buf[16:24], idx.Header.AudioStreamLen)
	buf[24] = byte(idx.Header.OriginalFormat)
	// buf[25:32] reserved = 0

	off := IndexHeaderLen
	for _, e := range idx.Entries {
		binary.LittleEndian.PutUint64(buf[off:off+8], e.ChunkSeq)
		binary.LittleEndian.PutUint64(buf[off+8:off+16], e.FileOffset)
		binary.LittleEndian.PutUint32(buf[off+16:off+20], e.RecordLen)
		binary.LittleEndian.PutUint32(buf[off+20:off+24], e.PlainLen)
		binary.LittleEndian.PutUint64(buf[off+24:off+32], e.VirtualOffset)
		buf[off+32] = byte(e.ChunkType)
		buf[off+33] = e.ChunkFlags
		// buf[off+34:off+36] reserved0 = 0
		binary.LittleEndian.PutUint16(buf[off+36:off+38], uint16(e.MetaKind))
		// buf[off+38:off+48] reserved1..3 = 0
		off += IndexEntryLen
	}

	return buf
}

// ParseIndex decodes a serialized index, validating its magic, version,
// and the length equation header + 48*entry_count.
func ParseIndex(b []byte) (*Index, error) {
	if len(b) < IndexHeaderLen {
		return nil, ferrors.New(ferrors.CorruptIndex, "index header too short")
	}

	if string(b[0:8]) != IndexMagic {
		return nil, ferrors.New(ferrors.InvalidIndexMagic, "index magic mismatch")
	}

	version := binary.LittleEndian.Uint16(b[8:10])
	if version != IndexVersion {
		return nil, ferrors.New(ferrors.UnsupportedIndexVersion, fmt.Sprintf("unsupported index version %d", version))
	}

	header := IndexHeader{
		Version:        version,
		Flags:          binary.LittleEndian.Uint16(b[10:12]),
		EntryCount:     binary.LittleEndian.Uint32(b[12:16]),
		AudioStreamLen: binary.LittleEndian.Uint64(b[16:24]),
		OriginalFormat: OriginalFormat(b[24]),
	}

	expectedLen := IndexHeaderLen + int(header.EntryCount)*IndexEntryLen
	if len(b) != expectedLen {
		return nil, ferrors.New(ferrors.CorruptIndex, fmt.Sprintf("index length mismatch: got %d bytes, expected %d for %d entries", len(b), expectedLen, header.EntryCount))
	}

	entries := make([]IndexEntry, 0, header.EntryCount)
	off := IndexHeaderLen
	for i := uint32(0); i < header.EntryCount; i++ {
		chunkType := ChunkType(b[off+32])
		if !chunkType.Valid() {
			return nil, ferrors.New(ferrors.CorruptIndex, fmt.Sprintf("unknown chunk_type byte 0x%02x in index entry %d", b[off+32], i))
		}

		entries = append(entries, IndexEntry{
			ChunkSeq:      binary.LittleEndian.Uint64(b[off : off+8]),
			FileOffset:    binary.LittleEndian.Uint64(b[off+8 : off+16]),
			RecordLen:     binary.LittleEndian.Uint32(b[off+16 : off+20]),
			PlainLen:      binary.LittleEndian.Uint32(b[off+20 : off+24]),
			VirtualOffset: binary.LittleEndian.Uint64(b[off+24 : off+32]),
			ChunkType:     chunkType,
			ChunkFlags:    b[off+33],
			MetaKind:      MetaKind(binary.LittleEndian.Uint16(b[off+36 : off+38])),
		})
		off += IndexEntryLen
	}

	return &Index{Header: header, Entries: entries}, nil
}

// AudioEntries returns every Audio-typed entry sorted by virtual_offset.
// By invariant these intervals tile [0, audio_stream_len) without gaps or
// overlap.
func (idx *Index) AudioEntries() []IndexEntry {
	out := make([]IndexEntry, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		if e.ChunkType == ChunkTypeAudio {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VirtualOffset < out[j].VirtualOffset })
	return out
}

// MetaEntriesByKind returns every Meta-typed entry matching kind, in write
// order.
func (idx *Index) MetaEntriesByKind(kind MetaKind) []IndexEntry {
	var out []IndexEntry
	for _, e := range idx.Entries {
		if e.ChunkType == ChunkTypeMeta && e.MetaKind == kind {
			out = append(out, e)
		}
	}
	return out
}

// LatestMetaEntry returns the Meta entry of the given kind with the
// highest chunk_seq, and whether one exists at all.
func (idx *Index) LatestMetaEntry(kind MetaKind) (IndexEntry, bool) {
	matches := idx.MetaEntriesByKind(kind)
	if len(matches) == 0 {
		return IndexEntry{}, false
	}

	latest := matches[0]
	for _, e := range matches[1:] {
		if e.ChunkSeq > latest.ChunkSeq {
			latest = e
		}
	}
	return latest, true
}
